package models

import (
	"time"
)

// User represents a user profile document. Connection fields are mutated only
// through per-field union/remove merges, never by rewriting the whole
// document.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	DisplayName  string     `json:"display_name" bson:"display_name"`
	Bio          *string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Tags         []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	AvatarRef    *string    `json:"avatar_ref,omitempty" bson:"avatar_ref,omitempty"`
	Requests     []string   `json:"requests,omitempty" bson:"requests,omitempty"`
	Connections  []string   `json:"connections,omitempty" bson:"connections,omitempty"`
	Blocked      []string   `json:"blocked,omitempty" bson:"blocked,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty" bson:"last_seen_at,omitempty"`
}

func (u *User) HasConnection(userID string) bool {
	for _, id := range u.Connections {
		if id == userID {
			return true
		}
	}
	return false
}

func (u *User) HasRequestFrom(userID string) bool {
	for _, id := range u.Requests {
		if id == userID {
			return true
		}
	}
	return false
}

func (u *User) HasBlocked(userID string) bool {
	for _, id := range u.Blocked {
		if id == userID {
			return true
		}
	}
	return false
}

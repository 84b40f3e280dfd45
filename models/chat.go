package models

import (
	"sort"
	"strings"
	"time"
)

// Room is a private conversation between two users. The room id is the sorted
// pair of participant ids so that either side derives the same room.
type Room struct {
	ID            string     `json:"id" bson:"_id"`
	Participants  []string   `json:"participants" bson:"participants"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" bson:"last_message_at,omitempty"`
}

// RoomID derives the canonical room id for a pair of users.
func RoomID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// Message is a single chat message within a room.
type Message struct {
	ID         string    `json:"id" bson:"_id"`
	RoomID     string    `json:"room_id" bson:"room_id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

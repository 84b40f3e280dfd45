package models

import (
	"time"
)

// CheckInPost is a single feed entry produced by a successful check-in.
// Region, author and timestamp are immutable after creation; LikedBy and
// Likes are mutated independently by like/unlike merges.
type CheckInPost struct {
	ID           string    `json:"id" bson:"_id"`
	Region       string    `json:"region" bson:"region"`
	AuthorID     string    `json:"author_id" bson:"author_id"`
	AuthorName   string    `json:"author_name" bson:"author_name"`
	AuthorAvatar *string   `json:"author_avatar,omitempty" bson:"author_avatar,omitempty"`
	Caption      *string   `json:"caption,omitempty" bson:"caption,omitempty"`
	PhotoRef     *string   `json:"photo_ref,omitempty" bson:"photo_ref,omitempty"`
	Likes        int       `json:"likes" bson:"likes"`
	LikedBy      []string  `json:"liked_by,omitempty" bson:"liked_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (p *CheckInPost) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is an append-only reply attached to a post.
type Comment struct {
	ID         string    `json:"id" bson:"_id"`
	PostID     string    `json:"post_id" bson:"post_id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

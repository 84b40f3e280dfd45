package testutils

import (
	"time"

	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/google/uuid"
)

func CreateTestUser(email string) *models.User {
	now := time.Now()

	return &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		DisplayName:  "Test Traveller",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func CreateTestPost(authorID, region string) *models.CheckInPost {
	caption := "Test check-in"

	return &models.CheckInPost{
		ID:         uuid.New().String(),
		Region:     region,
		AuthorID:   authorID,
		AuthorName: "Test Traveller",
		Caption:    &caption,
		CreatedAt:  time.Now(),
	}
}

func CreateTestMessage(roomID, authorID, text string) *models.Message {
	return &models.Message{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		AuthorID:   authorID,
		AuthorName: "Test Traveller",
		Text:       text,
		CreatedAt:  time.Now(),
	}
}

// Fixes inside the built-in region rectangles, usable as known test positions.
var (
	DelhiFix      = models.GeoFix{Latitude: 28.6139, Longitude: 77.2090}
	MumbaiFix     = models.GeoFix{Latitude: 19.0760, Longitude: 72.8777}
	BengaluruFix  = models.GeoFix{Latitude: 12.9716, Longitude: 77.5946}
	JaipurFix     = models.GeoFix{Latitude: 26.9124, Longitude: 75.7873}
	PanajiFix     = models.GeoFix{Latitude: 15.4909, Longitude: 73.8278}
	MidOceanFix   = models.GeoFix{Latitude: 0.0, Longitude: -160.0}
	OutOfRangeFix = models.GeoFix{Latitude: 95.0, Longitude: 200.0}
)

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/models"
)

var ErrEmptyMessage = errors.New("message text is empty")

// ChatService manages private rooms between connected users. A room is
// upserted on first use with an id derived from the sorted participant pair,
// so both sides converge on the same document without coordination.
type ChatService struct {
	repo     db.RoomRepository
	userRepo db.UserRepository
}

// NewChatService creates a new ChatService
func NewChatService(repo db.RoomRepository, userRepo db.UserRepository) *ChatService {
	return &ChatService{repo: repo, userRepo: userRepo}
}

// OpenRoom ensures the room for the session user and the peer exists and
// returns it.
func (s *ChatService) OpenRoom(ctx context.Context, session models.Session, peerID string) (*models.Room, error) {
	room := &models.Room{
		ID:           models.RoomID(session.UserID, peerID),
		Participants: []string{session.UserID, peerID},
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Upsert(ctx, room); err != nil {
		return nil, fmt.Errorf("upserting room: %w: %w", db.ErrPersistence, err)
	}

	stored, err := s.repo.FindByID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("finding room: %w: %w", db.ErrPersistence, err)
	}
	return stored, nil
}

// Rooms lists every room the session user participates in.
func (s *ChatService) Rooms(ctx context.Context, session models.Session) ([]*models.Room, error) {
	rooms, err := s.repo.FindAllByParticipant(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w: %w", db.ErrPersistence, err)
	}
	return rooms, nil
}

// SendMessage appends a message to the room shared with peerID, creating the
// room if it does not exist yet. The author's display name is denormalized
// onto the message at write time.
func (s *ChatService) SendMessage(ctx context.Context, session models.Session, peerID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	author, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finding author: %w: %w", db.ErrPersistence, err)
	}

	room, err := s.OpenRoom(ctx, session, peerID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ID:         db.GenerateID(),
		RoomID:     room.ID,
		AuthorID:   author.ID,
		AuthorName: author.DisplayName,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.AddMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("adding message: %w: %w", db.ErrPersistence, err)
	}
	return message, nil
}

// Messages returns the most recent messages in the room shared with peerID,
// newest first.
func (s *ChatService) Messages(ctx context.Context, session models.Session, peerID string, limit int) ([]*models.Message, error) {
	roomID := models.RoomID(session.UserID, peerID)
	messages, err := s.repo.FindMessages(ctx, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding messages: %w: %w", db.ErrPersistence, err)
	}
	return messages, nil
}

// Subscribe streams new messages appearing in the room shared with peerID.
func (s *ChatService) Subscribe(ctx context.Context, session models.Session, peerID string) (db.Subscription, error) {
	roomID := models.RoomID(session.UserID, peerID)
	sub, err := s.repo.SubscribeRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("subscribing to room: %w: %w", db.ErrPersistence, err)
	}
	return sub, nil
}

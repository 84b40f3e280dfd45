package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/models"
)

var (
	ErrSelfConnection = errors.New("cannot connect to yourself")
	ErrBlocked        = errors.New("connection not allowed")
	ErrNoRequest      = errors.New("no pending request from that user")
)

// SocialService runs the connection-request state machine. Every transition
// is a per-field union/remove merge on one or two user documents, applied
// sequentially without a transaction: an accept that fails halfway leaves one
// side connected, which the next accept attempt repairs because all merges
// are idempotent.
type SocialService struct {
	repo db.UserRepository
}

// NewSocialService creates a new SocialService
func NewSocialService(repo db.UserRepository) *SocialService {
	return &SocialService{repo: repo}
}

func (s *SocialService) load(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finding user: %w: %w", db.ErrPersistence, err)
	}
	return user, nil
}

// Request records a pending connection request on the target's document.
// Blocked pairs cannot re-request; requesting an existing connection is a
// no-op.
func (s *SocialService) Request(ctx context.Context, session models.Session, targetID string) error {
	if targetID == session.UserID {
		return ErrSelfConnection
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return err
	}
	requester, err := s.load(ctx, session.UserID)
	if err != nil {
		return err
	}

	if target.HasBlocked(session.UserID) || requester.HasBlocked(targetID) {
		return ErrBlocked
	}
	if target.HasConnection(session.UserID) {
		return nil
	}

	if err := s.repo.AddRequest(ctx, targetID, session.UserID); err != nil {
		return fmt.Errorf("adding request: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// Accept turns a pending request into a mutual connection: the request is
// removed from the acceptor, then both users gain a connection edge. A block
// on either side wins over any request that is still lying around.
func (s *SocialService) Accept(ctx context.Context, session models.Session, fromID string) error {
	acceptor, err := s.load(ctx, session.UserID)
	if err != nil {
		return err
	}
	requester, err := s.load(ctx, fromID)
	if err != nil {
		return err
	}

	if acceptor.HasBlocked(fromID) || requester.HasBlocked(session.UserID) {
		return ErrBlocked
	}
	if !acceptor.HasRequestFrom(fromID) {
		return ErrNoRequest
	}

	if err := s.repo.RemoveRequest(ctx, session.UserID, fromID); err != nil {
		return fmt.Errorf("removing request: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.AddConnection(ctx, session.UserID, fromID); err != nil {
		return fmt.Errorf("adding connection: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.AddConnection(ctx, fromID, session.UserID); err != nil {
		return fmt.Errorf("adding reverse connection: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// Decline drops a pending request without touching either connection set.
func (s *SocialService) Decline(ctx context.Context, session models.Session, fromID string) error {
	acceptor, err := s.load(ctx, session.UserID)
	if err != nil {
		return err
	}
	if !acceptor.HasRequestFrom(fromID) {
		return ErrNoRequest
	}

	if err := s.repo.RemoveRequest(ctx, session.UserID, fromID); err != nil {
		return fmt.Errorf("removing request: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// Block severs any existing relationship and prevents future requests from
// the blocked user.
func (s *SocialService) Block(ctx context.Context, session models.Session, otherID string) error {
	if otherID == session.UserID {
		return ErrSelfConnection
	}
	if _, err := s.load(ctx, otherID); err != nil {
		return err
	}

	// Requests are dropped on both documents: the one the other user sent
	// here, and any outbound one still pending on their side.
	if err := s.repo.RemoveRequest(ctx, session.UserID, otherID); err != nil {
		return fmt.Errorf("removing request: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.RemoveRequest(ctx, otherID, session.UserID); err != nil {
		return fmt.Errorf("removing reverse request: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.RemoveConnection(ctx, session.UserID, otherID); err != nil {
		return fmt.Errorf("removing connection: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.RemoveConnection(ctx, otherID, session.UserID); err != nil {
		return fmt.Errorf("removing reverse connection: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.AddBlocked(ctx, session.UserID, otherID); err != nil {
		return fmt.Errorf("blocking user: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// Overview describes the session user's current connection state.
type Overview struct {
	Requests    []string `json:"requests"`
	Connections []string `json:"connections"`
	Blocked     []string `json:"blocked"`
}

// GetOverview returns the session user's pending requests, connections and
// blocked users.
func (s *SocialService) GetOverview(ctx context.Context, session models.Session) (*Overview, error) {
	user, err := s.load(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Requests:    user.Requests,
		Connections: user.Connections,
		Blocked:     user.Blocked,
	}, nil
}

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService manages user profiles and credentials.
type UserService struct {
	repo      db.UserRepository
	dbManager *db.DBManager
}

// NewUserService creates a new UserService
func NewUserService(repo db.UserRepository, dbManager *db.DBManager) *UserService {
	return &UserService{repo: repo, dbManager: dbManager}
}

// Register creates a new user account. The display name defaults to the
// local part of the email address.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w: %w", db.ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           db.GenerateID(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.SplitN(email, "@", 2)[0],
	}

	if err := s.dbManager.CreateUser(s.repo, ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w: %w", db.ErrPersistence, err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w: %w", db.ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindByID returns a user profile by id.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finding user: %w: %w", db.ErrPersistence, err)
	}
	return user, nil
}

// UpdateProfile merges optional profile fields; nil fields stay untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, bio *string, tags []string, avatarRef *string) error {
	if err := s.repo.UpdateProfile(ctx, userID, bio, tags, avatarRef); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return err
		}
		return fmt.Errorf("updating profile: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

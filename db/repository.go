package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrPersistence classifies any store read/write failure surfaced to the
	// caller of a multi-step flow. Steps are sequential and never rolled
	// back; the flow halts at whichever step failed.
	ErrPersistence = errors.New("persistence failure")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// TravelStateRepository defines the interface for travel record operations.
// All mutations are set-union merges: re-applying an already present value is
// a no-op, and concurrent writers never lose each other's updates.
type TravelStateRepository interface {
	Repository
	// FindByUserID returns the user's travel state. A user with no record yet
	// gets an empty state, not ErrNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.TravelState, error)
	FindAll(ctx context.Context) ([]*models.TravelState, error)
	AddVisitedRegion(ctx context.Context, userID, region string) error
	AddBadges(ctx context.Context, userID string, badges []string) error
}

// PostRepository defines the interface for feed post operations
type PostRepository interface {
	Repository
	Create(ctx context.Context, post *models.CheckInPost) (*models.CheckInPost, error)
	FindByID(ctx context.Context, id string) (*models.CheckInPost, error)
	FindLatest(ctx context.Context, limit int) ([]*models.CheckInPost, error)
	FindAllByAuthorID(ctx context.Context, authorID string) ([]*models.CheckInPost, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, comment *models.Comment) error
	FindComments(ctx context.Context, postID string) ([]*models.Comment, error)
	Subscribe(ctx context.Context) (Subscription, error)
}

// UserRepository defines the interface for user profile operations
type UserRepository interface {
	Repository
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, bio *string, tags []string, avatarRef *string) error
	AddRequest(ctx context.Context, targetID, fromID string) error
	RemoveRequest(ctx context.Context, targetID, fromID string) error
	AddConnection(ctx context.Context, userID, otherID string) error
	RemoveConnection(ctx context.Context, userID, otherID string) error
	AddBlocked(ctx context.Context, userID, otherID string) error
}

// RoomRepository defines the interface for chat room and message operations
type RoomRepository interface {
	Repository
	Upsert(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindAllByParticipant(ctx context.Context, userID string) ([]*models.Room, error)
	AddMessage(ctx context.Context, message *models.Message) error
	FindMessages(ctx context.Context, roomID string, limit int) ([]*models.Message, error)
	SubscribeRoom(ctx context.Context, roomID string) (Subscription, error)
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLiteDB    *sql.DB
	MongoClient *mongo.Client
	DBName      string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, mongoClient *mongo.Client, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB:    sqliteDB,
		MongoClient: mongoClient,
		DBName:      dbName,
	}
}

// NewTravelStateRepository creates a new travel state repository
func (f *RepositoryFactory) NewTravelStateRepository() TravelStateRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteTravelStateRepository(f.SQLiteDB)
	}
	return NewMongoTravelStateRepository(f.MongoClient, f.DBName, "travel_states")
}

// NewPostRepository creates a new post repository
func (f *RepositoryFactory) NewPostRepository() PostRepository {
	if f.SQLiteDB != nil {
		return NewSQLitePostRepository(f.SQLiteDB)
	}
	return NewMongoPostRepository(f.MongoClient, f.DBName, "posts")
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteUserRepository(f.SQLiteDB)
	}
	return NewMongoUserRepository(f.MongoClient, f.DBName, "users")
}

// NewRoomRepository creates a new room repository
func (f *RepositoryFactory) NewRoomRepository() RoomRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteRoomRepository(f.SQLiteDB)
	}
	return NewMongoRoomRepository(f.MongoClient, f.DBName, "rooms")
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}

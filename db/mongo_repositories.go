package db

import (
	"context"
	"fmt"
	"time"

	"github.com/aayushkhanna09/rahi-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTravelStateRepository implements the TravelStateRepository interface
// for MongoDB. All set mutations go through $addToSet so that concurrent
// check-ins from multiple sessions of the same user are safe without any
// client-side locking.
type MongoTravelStateRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoTravelStateRepository creates a new MongoTravelStateRepository
func NewMongoTravelStateRepository(client *mongo.Client, database, collection string) *MongoTravelStateRepository {
	return &MongoTravelStateRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoTravelStateRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// FindByUserID finds a user's travel state; absent records come back as an
// empty state.
func (r *MongoTravelStateRepository) FindByUserID(ctx context.Context, userID string) (*models.TravelState, error) {
	var state models.TravelState
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": userID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.TravelState{UserID: userID}, nil
		}
		return nil, fmt.Errorf("error finding travel state: %w", err)
	}

	return &state, nil
}

// FindAll finds all travel states
func (r *MongoTravelStateRepository) FindAll(ctx context.Context) ([]*models.TravelState, error) {
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error finding travel states: %w", err)
	}
	defer cursor.Close(ctx)

	var states []*models.TravelState
	if err = cursor.All(ctx, &states); err != nil {
		return nil, fmt.Errorf("error decoding travel states: %w", err)
	}

	return states, nil
}

// AddVisitedRegion unions a region into the user's visited set, creating the
// record on first check-in.
func (r *MongoTravelStateRepository) AddVisitedRegion(ctx context.Context, userID, region string) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": userID}
	update := bson.M{"$addToSet": bson.M{"visited_regions": region}}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error adding visited region: %w", err)
	}

	return nil
}

// AddBadges unions badges into the user's badge set. Badges are never
// removed.
func (r *MongoTravelStateRepository) AddBadges(ctx context.Context, userID string, badges []string) error {
	if len(badges) == 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": userID}
	update := bson.M{"$addToSet": bson.M{"badges": bson.M{"$each": badges}}}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error adding badges: %w", err)
	}

	return nil
}

// MongoPostRepository implements the PostRepository interface for MongoDB
type MongoPostRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(client *mongo.Client, database, collection string) *MongoPostRepository {
	return &MongoPostRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoPostRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Create inserts a new post with a server-assigned timestamp
func (r *MongoPostRepository) Create(ctx context.Context, post *models.CheckInPost) (*models.CheckInPost, error) {
	if post.ID == "" {
		post.ID = GenerateID()
	}
	post.CreatedAt = time.Now().UTC()

	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// FindByID finds a post by ID
func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*models.CheckInPost, error) {
	var post models.CheckInPost
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding post: %w", err)
	}

	return &post, nil
}

// FindLatest finds the latest posts, newest first
func (r *MongoPostRepository) FindLatest(ctx context.Context, limit int) ([]*models.CheckInPost, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))

	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.CheckInPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}

	return posts, nil
}

// FindAllByAuthorID finds all posts by an author, newest first
func (r *MongoPostRepository) FindAllByAuthorID(ctx context.Context, authorID string) ([]*models.CheckInPost, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding author posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.CheckInPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding author posts: %w", err)
	}

	return posts, nil
}

// AddLike unions the liker into the post's liked_by set. The filter excludes
// posts already liked by the user so the counter increments exactly once.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	filter := bson.M{"_id": postID, "liked_by": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"liked_by": userID},
		"$inc":      bson.M{"likes": 1},
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error liking post: %w", err)
	}

	return nil
}

// RemoveLike removes the liker from the post's liked_by set
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	filter := bson.M{"_id": postID, "liked_by": userID}
	update := bson.M{
		"$pull": bson.M{"liked_by": userID},
		"$inc":  bson.M{"likes": -1},
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error unliking post: %w", err)
	}

	return nil
}

// AddComment appends a comment to the post's comment collection
func (r *MongoPostRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = GenerateID()
	}
	comment.CreatedAt = time.Now().UTC()

	_, err := r.client.Database(r.database).Collection("comments").
		InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// FindComments finds all comments for a post, oldest first
func (r *MongoPostRepository) FindComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.client.Database(r.database).Collection("comments").
		Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("error decoding comments: %w", err)
	}

	return comments, nil
}

// Subscribe opens a change stream on the posts collection
func (r *MongoPostRepository) Subscribe(ctx context.Context) (Subscription, error) {
	coll := r.client.Database(r.database).Collection(r.collection)
	sub, err := newMongoSubscription(ctx, coll, insertOnlyPipeline(nil))
	if err != nil {
		return nil, fmt.Errorf("error subscribing to posts: %w", err)
	}
	return sub, nil
}

// MongoUserRepository implements the UserRepository interface for MongoDB
type MongoUserRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(client *mongo.Client, database, collection string) *MongoUserRepository {
	return &MongoUserRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoUserRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Create inserts a new user profile
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// FindByID finds a user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	return &user, nil
}

// FindByEmail finds a user by email address
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	return &user, nil
}

// UpdateProfile merges the provided optional profile fields; fields left nil
// are not touched.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, bio *string, tags []string, avatarRef *string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if bio != nil {
		set["bio"] = *bio
	}
	if tags != nil {
		set["tags"] = tags
	}
	if avatarRef != nil {
		set["avatar_ref"] = *avatarRef
	}

	result, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *MongoUserRepository) addToSet(ctx context.Context, id, field, value string) error {
	result, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) pull(ctx context.Context, id, field, value string) error {
	result, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddRequest unions a pending connection request into the target's requests
func (r *MongoUserRepository) AddRequest(ctx context.Context, targetID, fromID string) error {
	return r.addToSet(ctx, targetID, "requests", fromID)
}

// RemoveRequest removes a pending connection request
func (r *MongoUserRepository) RemoveRequest(ctx context.Context, targetID, fromID string) error {
	return r.pull(ctx, targetID, "requests", fromID)
}

// AddConnection unions a connection into a user's connection set
func (r *MongoUserRepository) AddConnection(ctx context.Context, userID, otherID string) error {
	return r.addToSet(ctx, userID, "connections", otherID)
}

// RemoveConnection removes a connection from a user's connection set
func (r *MongoUserRepository) RemoveConnection(ctx context.Context, userID, otherID string) error {
	return r.pull(ctx, userID, "connections", otherID)
}

// AddBlocked unions a user into the blocker's blocked set
func (r *MongoUserRepository) AddBlocked(ctx context.Context, userID, otherID string) error {
	return r.addToSet(ctx, userID, "blocked", otherID)
}

// MongoRoomRepository implements the RoomRepository interface for MongoDB
type MongoRoomRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoRoomRepository creates a new MongoRoomRepository
func NewMongoRoomRepository(client *mongo.Client, database, collection string) *MongoRoomRepository {
	return &MongoRoomRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoRoomRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Upsert creates the room if it does not exist yet
func (r *MongoRoomRepository) Upsert(ctx context.Context, room *models.Room) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": room.ID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"participants": room.Participants,
			"created_at":   time.Now().UTC(),
		},
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error upserting room: %w", err)
	}

	return nil
}

// FindByID finds a room by ID
func (r *MongoRoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding room: %w", err)
	}

	return &room, nil
}

// FindAllByParticipant finds all rooms a user participates in
func (r *MongoRoomRepository) FindAllByParticipant(ctx context.Context, userID string) ([]*models.Room, error) {
	opts := options.Find().SetSort(bson.M{"last_message_at": -1})
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*models.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}

	return rooms, nil
}

// AddMessage appends a message and bumps the room's last activity
func (r *MongoRoomRepository) AddMessage(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = GenerateID()
	}
	message.CreatedAt = time.Now().UTC()

	_, err := r.client.Database(r.database).Collection("messages").
		InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	_, err = r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, bson.M{"_id": message.RoomID},
			bson.M{"$set": bson.M{"last_message_at": message.CreatedAt}})
	if err != nil {
		return fmt.Errorf("error updating room activity: %w", err)
	}

	return nil
}

// FindMessages finds the latest messages in a room, newest first
func (r *MongoRoomRepository) FindMessages(ctx context.Context, roomID string, limit int) ([]*models.Message, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))

	cursor, err := r.client.Database(r.database).Collection("messages").
		Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}

	return messages, nil
}

// SubscribeRoom opens a change stream on a single room's messages
func (r *MongoRoomRepository) SubscribeRoom(ctx context.Context, roomID string) (Subscription, error) {
	coll := r.client.Database(r.database).Collection("messages")
	filter := bson.D{{Key: "fullDocument.room_id", Value: roomID}}
	sub, err := newMongoSubscription(ctx, coll, insertOnlyPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("error subscribing to room: %w", err)
	}
	return sub, nil
}

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aayushkhanna09/rahi-app/internal/util"
	"github.com/aayushkhanna09/rahi-app/models"
)

const (
	linkKindRequest    = "request"
	linkKindConnection = "connection"
	linkKindBlocked    = "blocked"
)

// SQLiteTravelStateRepository implements the TravelStateRepository interface
// for SQLite. Membership tables plus INSERT OR IGNORE mirror the document
// store's array-union semantics.
type SQLiteTravelStateRepository struct {
	db *sql.DB
}

// NewSQLiteTravelStateRepository creates a new SQLiteTravelStateRepository
func NewSQLiteTravelStateRepository(db *sql.DB) *SQLiteTravelStateRepository {
	return &SQLiteTravelStateRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteTravelStateRepository) Close() error {
	return r.db.Close()
}

// FindByUserID finds a user's travel state; absent records come back as an
// empty state.
func (r *SQLiteTravelStateRepository) FindByUserID(ctx context.Context, userID string) (*models.TravelState, error) {
	state := &models.TravelState{UserID: userID}

	rows, err := r.db.QueryContext(ctx,
		`SELECT region FROM travel_regions WHERE user_id = ? ORDER BY region`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying visited regions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, fmt.Errorf("error scanning region: %w", err)
		}
		state.VisitedRegions = append(state.VisitedRegions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading regions: %w", err)
	}

	badgeRows, err := r.db.QueryContext(ctx,
		`SELECT badge FROM travel_badges WHERE user_id = ? ORDER BY badge`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying badges: %w", err)
	}
	defer badgeRows.Close()

	for badgeRows.Next() {
		var badge string
		if err := badgeRows.Scan(&badge); err != nil {
			return nil, fmt.Errorf("error scanning badge: %w", err)
		}
		state.Badges = append(state.Badges, badge)
	}
	if err := badgeRows.Err(); err != nil {
		return nil, fmt.Errorf("error reading badges: %w", err)
	}

	return state, nil
}

// FindAll finds all travel states
func (r *SQLiteTravelStateRepository) FindAll(ctx context.Context) ([]*models.TravelState, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM travel_regions
		UNION
		SELECT user_id FROM travel_badges`)
	if err != nil {
		return nil, fmt.Errorf("error querying travel states: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading user ids: %w", err)
	}

	states := make([]*models.TravelState, 0, len(userIDs))
	for _, id := range userIDs {
		state, err := r.FindByUserID(ctx, id)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}

	return states, nil
}

// AddVisitedRegion unions a region into the user's visited set
func (r *SQLiteTravelStateRepository) AddVisitedRegion(ctx context.Context, userID, region string) error {
	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO travel_regions (user_id, region) VALUES (?, ?)`,
			userID, region)
		if err != nil {
			return fmt.Errorf("error adding visited region: %w", err)
		}
		return nil
	})
}

// AddBadges unions badges into the user's badge set
func (r *SQLiteTravelStateRepository) AddBadges(ctx context.Context, userID string, badges []string) error {
	if len(badges) == 0 {
		return nil
	}

	return util.RetryOnLock(func() error {
		for _, badge := range badges {
			_, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO travel_badges (user_id, badge) VALUES (?, ?)`,
				userID, badge)
			if err != nil {
				return fmt.Errorf("error adding badge: %w", err)
			}
		}
		return nil
	})
}

// SQLitePostRepository implements the PostRepository interface for SQLite
type SQLitePostRepository struct {
	db *sql.DB
}

// NewSQLitePostRepository creates a new SQLitePostRepository
func NewSQLitePostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

// Close closes the database connection
func (r *SQLitePostRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new post with a server-assigned timestamp
func (r *SQLitePostRepository) Create(ctx context.Context, post *models.CheckInPost) (*models.CheckInPost, error) {
	if post.ID == "" {
		post.ID = GenerateID()
	}
	post.CreatedAt = time.Now().UTC()

	err := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO posts (id, region, author_id, author_name, author_avatar, caption, photo_ref, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			post.ID, post.Region, post.AuthorID, post.AuthorName,
			post.AuthorAvatar, post.Caption, post.PhotoRef, post.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

func (r *SQLitePostRepository) scanPost(ctx context.Context, row *sql.Row) (*models.CheckInPost, error) {
	var post models.CheckInPost
	var avatar, caption, photoRef sql.NullString

	err := row.Scan(&post.ID, &post.Region, &post.AuthorID, &post.AuthorName,
		&avatar, &caption, &photoRef, &post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}

	if avatar.Valid {
		post.AuthorAvatar = &avatar.String
	}
	if caption.Valid {
		post.Caption = &caption.String
	}
	if photoRef.Valid {
		post.PhotoRef = &photoRef.String
	}

	if err := r.loadLikes(ctx, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *SQLitePostRepository) loadLikes(ctx context.Context, post *models.CheckInPost) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM post_likes WHERE post_id = ?`, post.ID)
	if err != nil {
		return fmt.Errorf("error querying likes: %w", err)
	}
	defer rows.Close()

	post.LikedBy = nil
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("error scanning like: %w", err)
		}
		post.LikedBy = append(post.LikedBy, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading likes: %w", err)
	}
	post.Likes = len(post.LikedBy)

	return nil
}

// FindByID finds a post by ID
func (r *SQLitePostRepository) FindByID(ctx context.Context, id string) (*models.CheckInPost, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, region, author_id, author_name, author_avatar, caption, photo_ref, created_at
		FROM posts WHERE id = ?`, id)
	return r.scanPost(ctx, row)
}

func (r *SQLitePostRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]*models.CheckInPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.CheckInPost
	for rows.Next() {
		var post models.CheckInPost
		var avatar, caption, photoRef sql.NullString

		err := rows.Scan(&post.ID, &post.Region, &post.AuthorID, &post.AuthorName,
			&avatar, &caption, &photoRef, &post.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}

		if avatar.Valid {
			post.AuthorAvatar = &avatar.String
		}
		if caption.Valid {
			post.Caption = &caption.String
		}
		if photoRef.Valid {
			post.PhotoRef = &photoRef.String
		}

		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading posts: %w", err)
	}

	for _, post := range posts {
		if err := r.loadLikes(ctx, post); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// FindLatest finds the latest posts, newest first
func (r *SQLitePostRepository) FindLatest(ctx context.Context, limit int) ([]*models.CheckInPost, error) {
	return r.findMany(ctx, `
		SELECT id, region, author_id, author_name, author_avatar, caption, photo_ref, created_at
		FROM posts ORDER BY created_at DESC LIMIT ?`, limit)
}

// FindAllByAuthorID finds all posts by an author, newest first
func (r *SQLitePostRepository) FindAllByAuthorID(ctx context.Context, authorID string) ([]*models.CheckInPost, error) {
	return r.findMany(ctx, `
		SELECT id, region, author_id, author_name, author_avatar, caption, photo_ref, created_at
		FROM posts WHERE author_id = ? ORDER BY created_at DESC`, authorID)
}

// AddLike unions the liker into the post's like set
func (r *SQLitePostRepository) AddLike(ctx context.Context, postID, userID string) error {
	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO post_likes (post_id, user_id) VALUES (?, ?)`,
			postID, userID)
		if err != nil {
			return fmt.Errorf("error liking post: %w", err)
		}
		return nil
	})
}

// RemoveLike removes the liker from the post's like set
func (r *SQLitePostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`,
			postID, userID)
		if err != nil {
			return fmt.Errorf("error unliking post: %w", err)
		}
		return nil
	})
}

// AddComment appends a comment to a post
func (r *SQLitePostRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = GenerateID()
	}
	comment.CreatedAt = time.Now().UTC()

	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO comments (id, post_id, author_id, author_name, text, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			comment.ID, comment.PostID, comment.AuthorID, comment.AuthorName,
			comment.Text, comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating comment: %w", err)
		}
		return nil
	})
}

// FindComments finds all comments for a post, oldest first
func (r *SQLitePostRepository) FindComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, author_name, text, created_at
		FROM comments WHERE post_id = ? ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.AuthorName, &comment.Text, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading comments: %w", err)
	}

	return comments, nil
}

// Subscribe emulates a change stream by polling the posts table
func (r *SQLitePostRepository) Subscribe(ctx context.Context) (Subscription, error) {
	return newPollSubscription("posts", func(ctx context.Context) (int, error) {
		var count int
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
		return count, err
	}), nil
}

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new user profile
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	var tags []byte
	if user.Tags != nil {
		var err error
		tags, err = json.Marshal(user.Tags)
		if err != nil {
			return fmt.Errorf("error encoding tags: %w", err)
		}
	}

	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO users (id, email, password_hash, display_name, bio, tags, avatar_ref, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Email, user.PasswordHash, user.DisplayName,
			user.Bio, nullableBytes(tags), user.AvatarRef, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
}

func nullableBytes(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

func (r *SQLiteUserRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var user models.User
	var bio, tags, avatar sql.NullString
	var lastSeen sql.NullTime

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&bio, &tags, &avatar, &user.CreatedAt, &user.UpdatedAt, &lastSeen)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if bio.Valid {
		user.Bio = &bio.String
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &user.Tags); err != nil {
			return nil, fmt.Errorf("error decoding tags: %w", err)
		}
	}
	if avatar.Valid {
		user.AvatarRef = &avatar.String
	}
	if lastSeen.Valid {
		user.LastSeenAt = &lastSeen.Time
	}

	if err := r.loadLinks(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLiteUserRepository) loadLinks(ctx context.Context, user *models.User) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT other_id, kind FROM user_links WHERE user_id = ? ORDER BY other_id`, user.ID)
	if err != nil {
		return fmt.Errorf("error querying user links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var otherID, kind string
		if err := rows.Scan(&otherID, &kind); err != nil {
			return fmt.Errorf("error scanning user link: %w", err)
		}
		switch kind {
		case linkKindRequest:
			user.Requests = append(user.Requests, otherID)
		case linkKindConnection:
			user.Connections = append(user.Connections, otherID)
		case linkKindBlocked:
			user.Blocked = append(user.Blocked, otherID)
		}
	}
	return rows.Err()
}

// FindByID finds a user by ID
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, display_name, bio, tags, avatar_ref, created_at, updated_at, last_seen_at
		FROM users WHERE id = ?`, id)
}

// FindByEmail finds a user by email address
func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, display_name, bio, tags, avatar_ref, created_at, updated_at, last_seen_at
		FROM users WHERE email = ?`, email)
}

// UpdateProfile merges the provided optional profile fields
func (r *SQLiteUserRepository) UpdateProfile(ctx context.Context, id string, bio *string, tags []string, avatarRef *string) error {
	return util.RetryOnLock(func() error {
		if bio != nil {
			if _, err := r.db.ExecContext(ctx,
				`UPDATE users SET bio = ?, updated_at = ? WHERE id = ?`,
				*bio, time.Now().UTC(), id); err != nil {
				return fmt.Errorf("error updating bio: %w", err)
			}
		}
		if tags != nil {
			encoded, err := json.Marshal(tags)
			if err != nil {
				return fmt.Errorf("error encoding tags: %w", err)
			}
			if _, err := r.db.ExecContext(ctx,
				`UPDATE users SET tags = ?, updated_at = ? WHERE id = ?`,
				string(encoded), time.Now().UTC(), id); err != nil {
				return fmt.Errorf("error updating tags: %w", err)
			}
		}
		if avatarRef != nil {
			if _, err := r.db.ExecContext(ctx,
				`UPDATE users SET avatar_ref = ?, updated_at = ? WHERE id = ?`,
				*avatarRef, time.Now().UTC(), id); err != nil {
				return fmt.Errorf("error updating avatar: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteUserRepository) addLink(ctx context.Context, userID, otherID, kind string) error {
	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_links (user_id, other_id, kind) VALUES (?, ?, ?)`,
			userID, otherID, kind)
		if err != nil {
			return fmt.Errorf("error adding user link: %w", err)
		}
		return nil
	})
}

func (r *SQLiteUserRepository) removeLink(ctx context.Context, userID, otherID, kind string) error {
	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM user_links WHERE user_id = ? AND other_id = ? AND kind = ?`,
			userID, otherID, kind)
		if err != nil {
			return fmt.Errorf("error removing user link: %w", err)
		}
		return nil
	})
}

// AddRequest unions a pending connection request into the target's requests
func (r *SQLiteUserRepository) AddRequest(ctx context.Context, targetID, fromID string) error {
	return r.addLink(ctx, targetID, fromID, linkKindRequest)
}

// RemoveRequest removes a pending connection request
func (r *SQLiteUserRepository) RemoveRequest(ctx context.Context, targetID, fromID string) error {
	return r.removeLink(ctx, targetID, fromID, linkKindRequest)
}

// AddConnection unions a connection into a user's connection set
func (r *SQLiteUserRepository) AddConnection(ctx context.Context, userID, otherID string) error {
	return r.addLink(ctx, userID, otherID, linkKindConnection)
}

// RemoveConnection removes a connection from a user's connection set
func (r *SQLiteUserRepository) RemoveConnection(ctx context.Context, userID, otherID string) error {
	return r.removeLink(ctx, userID, otherID, linkKindConnection)
}

// AddBlocked unions a user into the blocker's blocked set
func (r *SQLiteUserRepository) AddBlocked(ctx context.Context, userID, otherID string) error {
	return r.addLink(ctx, userID, otherID, linkKindBlocked)
}

// SQLiteRoomRepository implements the RoomRepository interface for SQLite
type SQLiteRoomRepository struct {
	db *sql.DB
}

// NewSQLiteRoomRepository creates a new SQLiteRoomRepository
func NewSQLiteRoomRepository(db *sql.DB) *SQLiteRoomRepository {
	return &SQLiteRoomRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteRoomRepository) Close() error {
	return r.db.Close()
}

// Upsert creates the room if it does not exist yet
func (r *SQLiteRoomRepository) Upsert(ctx context.Context, room *models.Room) error {
	if len(room.Participants) != 2 {
		return fmt.Errorf("room %s must have exactly two participants", room.ID)
	}

	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO rooms (id, participant_a, participant_b, created_at)
			VALUES (?, ?, ?, ?)`,
			room.ID, room.Participants[0], room.Participants[1], time.Now().UTC())
		if err != nil {
			return fmt.Errorf("error upserting room: %w", err)
		}
		return nil
	})
}

func scanRoom(rows interface {
	Scan(dest ...interface{}) error
}) (*models.Room, error) {
	var room models.Room
	var a, b string
	var lastMessageAt sql.NullTime

	err := rows.Scan(&room.ID, &a, &b, &room.CreatedAt, &lastMessageAt)
	if err != nil {
		return nil, err
	}

	room.Participants = []string{a, b}
	if lastMessageAt.Valid {
		room.LastMessageAt = &lastMessageAt.Time
	}
	return &room, nil
}

// FindByID finds a room by ID
func (r *SQLiteRoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, participant_a, participant_b, created_at, last_message_at
		FROM rooms WHERE id = ?`, id)

	room, err := scanRoom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning room: %w", err)
	}
	return room, nil
}

// FindAllByParticipant finds all rooms a user participates in
func (r *SQLiteRoomRepository) FindAllByParticipant(ctx context.Context, userID string) ([]*models.Room, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, participant_a, participant_b, created_at, last_message_at
		FROM rooms WHERE participant_a = ? OR participant_b = ?
		ORDER BY last_message_at DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rooms: %w", err)
	}

	return rooms, nil
}

// AddMessage appends a message and bumps the room's last activity
func (r *SQLiteRoomRepository) AddMessage(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = GenerateID()
	}
	message.CreatedAt = time.Now().UTC()

	return util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO messages (id, room_id, author_id, author_name, text, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			message.ID, message.RoomID, message.AuthorID, message.AuthorName,
			message.Text, message.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating message: %w", err)
		}

		_, err = r.db.ExecContext(ctx,
			`UPDATE rooms SET last_message_at = ? WHERE id = ?`,
			message.CreatedAt, message.RoomID)
		if err != nil {
			return fmt.Errorf("error updating room activity: %w", err)
		}
		return nil
	})
}

// FindMessages finds the latest messages in a room, newest first
func (r *SQLiteRoomRepository) FindMessages(ctx context.Context, roomID string, limit int) ([]*models.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, room_id, author_id, author_name, text, created_at
		FROM messages WHERE room_id = ? ORDER BY created_at DESC LIMIT ?`, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(&message.ID, &message.RoomID, &message.AuthorID,
			&message.AuthorName, &message.Text, &message.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading messages: %w", err)
	}

	return messages, nil
}

// SubscribeRoom emulates a change stream by polling a room's message count
func (r *SQLiteRoomRepository) SubscribeRoom(ctx context.Context, roomID string) (Subscription, error) {
	return newPollSubscription("messages", func(ctx context.Context) (int, error) {
		var count int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM messages WHERE room_id = ?`, roomID).Scan(&count)
		return count, err
	}), nil
}

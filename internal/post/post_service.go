package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/models"
)

// PostService serves the feed and mutates post reactions. Likes are set
// merges on the post document, independent of the immutable check-in fields.
type PostService struct {
	repo     db.PostRepository
	userRepo db.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(repo db.PostRepository, userRepo db.UserRepository) *PostService {
	return &PostService{repo: repo, userRepo: userRepo}
}

// Feed returns the latest posts, newest first.
func (s *PostService) Feed(ctx context.Context, limit int) ([]*models.CheckInPost, error) {
	posts, err := s.repo.FindLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w: %w", db.ErrPersistence, err)
	}
	return posts, nil
}

// FindByAuthor returns one user's posts, newest first.
func (s *PostService) FindByAuthor(ctx context.Context, authorID string) ([]*models.CheckInPost, error) {
	posts, err := s.repo.FindAllByAuthorID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("reading author posts: %w: %w", db.ErrPersistence, err)
	}
	return posts, nil
}

// Like adds the user to the post's like set; liking twice is a no-op.
func (s *PostService) Like(ctx context.Context, postID, userID string) error {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return err
		}
		return fmt.Errorf("finding post: %w: %w", db.ErrPersistence, err)
	}
	if err := s.repo.AddLike(ctx, postID, userID); err != nil {
		return fmt.Errorf("liking post: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// Unlike removes the user from the post's like set.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) error {
	if err := s.repo.RemoveLike(ctx, postID, userID); err != nil {
		return fmt.Errorf("unliking post: %w: %w", db.ErrPersistence, err)
	}
	return nil
}

// AddComment appends a comment with the author's current display name.
func (s *PostService) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finding post: %w: %w", db.ErrPersistence, err)
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("reading author profile: %w: %w", db.ErrPersistence, err)
	}

	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   author.ID,
		AuthorName: author.DisplayName,
		Text:       text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w: %w", db.ErrPersistence, err)
	}

	return comment, nil
}

// Comments returns a post's comments, oldest first.
func (s *PostService) Comments(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments, err := s.repo.FindComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("reading comments: %w: %w", db.ErrPersistence, err)
	}
	return comments, nil
}

// Subscribe opens a live stream of feed changes. The caller owns the handle
// and must close it.
func (s *PostService) Subscribe(ctx context.Context) (db.Subscription, error) {
	sub, err := s.repo.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribing to feed: %w: %w", db.ErrPersistence, err)
	}
	return sub, nil
}

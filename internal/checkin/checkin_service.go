package checkin

import (
	"context"
	"fmt"
	"log"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/models"
)

// CheckInService runs the full check-in sequence: acquire a fix, resolve it
// to a region, extend the user's travel record, then publish the feed post.
//
// The two store writes are issued strictly sequentially and are not a
// transaction. If post creation fails after the travel update committed, the
// travel progress stays recorded and no post appears; that window is part of
// the contract, surfaced to the caller rather than silently repaired.
type CheckInService struct {
	resolver      *geo.Resolver
	travelService *travel.TravelService
	postRepo      db.PostRepository
	userRepo      db.UserRepository
	dbManager     *db.DBManager
}

// NewCheckInService creates a new CheckInService
func NewCheckInService(resolver *geo.Resolver, travelService *travel.TravelService, postRepo db.PostRepository, userRepo db.UserRepository, dbManager *db.DBManager) *CheckInService {
	return &CheckInService{
		resolver:      resolver,
		travelService: travelService,
		postRepo:      postRepo,
		userRepo:      userRepo,
		dbManager:     dbManager,
	}
}

// CheckInRequest carries the caller-supplied parts of a check-in. Provider
// yields the GPS fix; caption and photo are optional.
type CheckInRequest struct {
	Provider geo.Provider
	Caption  *string
	PhotoRef *string
}

// CheckInResult reports what a completed check-in produced.
type CheckInResult struct {
	Region string              `json:"region"`
	Post   *models.CheckInPost `json:"post"`
	State  *models.TravelState `json:"state"`
}

// CheckIn performs one check-in for the session user. Provider failures
// (permission, no fix) abort before any write; travel-state and post errors
// abort at their step with prior writes left in place.
func (s *CheckInService) CheckIn(ctx context.Context, session models.Session, req CheckInRequest) (*CheckInResult, error) {
	if err := req.Provider.RequestPermission(ctx); err != nil {
		return nil, err
	}

	fix, err := req.Provider.CurrentFix(ctx)
	if err != nil {
		return nil, err
	}

	region := s.resolver.Resolve(fix)
	log.Printf("User %s resolved fix (%f, %f) to region %q", session.UserID, fix.Latitude, fix.Longitude, region)

	if err := s.travelService.RecordVisit(ctx, session.UserID, region); err != nil {
		return nil, err
	}

	// Author display fields are fetched fresh at post time, not joined later.
	author, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("reading author profile: %w: %w", db.ErrPersistence, err)
	}

	post := &models.CheckInPost{
		Region:       region,
		AuthorID:     author.ID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarRef,
		Caption:      req.Caption,
		PhotoRef:     req.PhotoRef,
	}

	created, err := s.dbManager.CreatePost(s.postRepo, ctx, post)
	if err != nil {
		return nil, fmt.Errorf("creating check-in post: %w: %w", db.ErrPersistence, err)
	}

	state, err := s.travelService.GetState(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return &CheckInResult{
		Region: region,
		Post:   created,
		State:  state,
	}, nil
}

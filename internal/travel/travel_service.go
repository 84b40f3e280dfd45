package travel

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/models"
)

// TravelService applies resolved check-ins to a user's cumulative travel
// record and derives badges. Both writes are union merges, so repeating the
// same check-in is a no-op and concurrent sessions of one user cannot lose
// updates.
type TravelService struct {
	repo      db.TravelStateRepository
	userRepo  db.UserRepository
	dbManager *db.DBManager
	tiers     []models.BadgeTier
	cache     *LeaderboardCache
}

// NewTravelService creates a new TravelService. A nil tier table selects the
// default thresholds; a nil cache disables leaderboard caching.
func NewTravelService(repo db.TravelStateRepository, userRepo db.UserRepository, dbManager *db.DBManager, tiers []models.BadgeTier, cache *LeaderboardCache) *TravelService {
	if tiers == nil {
		tiers = models.DefaultBadgeTiers
	}
	return &TravelService{
		repo:      repo,
		userRepo:  userRepo,
		dbManager: dbManager,
		tiers:     tiers,
		cache:     cache,
	}
}

// RecordVisit extends the user's travel record with a resolved region and
// recomputes badges. The Unknown sentinel is a valid input and a complete
// no-op: unresolved fixes never count toward progress.
//
// Calling RecordVisit twice with the same arguments yields an identical final
// state.
func (s *TravelService) RecordVisit(ctx context.Context, userID, regionName string) error {
	if regionName == "" || regionName == geo.UnknownRegion {
		return nil
	}

	if err := s.dbManager.AddVisitedRegion(s.repo, ctx, userID, regionName); err != nil {
		return fmt.Errorf("recording region visit: %w: %w", db.ErrPersistence, err)
	}

	state, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("reading travel state: %w: %w", db.ErrPersistence, err)
	}

	earned := models.BadgesForCount(s.tiers, len(state.VisitedRegions))
	var missing []string
	for _, badge := range earned {
		if !state.HasBadge(badge) {
			missing = append(missing, badge)
		}
	}

	if len(missing) > 0 {
		if err := s.dbManager.AddBadges(s.repo, ctx, userID, missing); err != nil {
			return fmt.Errorf("awarding badges: %w: %w", db.ErrPersistence, err)
		}
		log.Printf("User %s earned badges %v", userID, missing)
	}

	return nil
}

// GetState returns a user's travel record; users who never checked in get an
// empty state.
func (s *TravelService) GetState(ctx context.Context, userID string) (*models.TravelState, error) {
	state, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading travel state: %w: %w", db.ErrPersistence, err)
	}
	return state, nil
}

// LeaderboardEntry is one ranked row of the explorer leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	RegionCount int    `json:"region_count"`
	BadgeCount  int    `json:"badge_count"`
}

// Leaderboard ranks users by visited-region count, descending. Results are
// served from the cache when one is configured and fresh.
func (s *TravelService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx); ok {
			return truncate(entries, limit), nil
		}
	}

	states, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading travel states: %w: %w", db.ErrPersistence, err)
	}

	entries := make([]LeaderboardEntry, 0, len(states))
	for _, state := range states {
		entry := LeaderboardEntry{
			UserID:      state.UserID,
			RegionCount: len(state.VisitedRegions),
			BadgeCount:  len(state.Badges),
		}
		if user, err := s.userRepo.FindByID(ctx, state.UserID); err == nil {
			entry.DisplayName = user.DisplayName
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].RegionCount != entries[j].RegionCount {
			return entries[i].RegionCount > entries[j].RegionCount
		}
		return entries[i].UserID < entries[j].UserID
	})

	if s.cache != nil {
		s.cache.Set(ctx, entries)
	}

	return truncate(entries, limit), nil
}

func truncate(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

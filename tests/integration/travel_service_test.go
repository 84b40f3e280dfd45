package integration

import (
	"context"
	"testing"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelService_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	travelRepo := factory.NewTravelStateRepository()
	userRepo := factory.NewUserRepository()
	dbManager := db.NewDBManager()
	defer dbManager.Stop()

	service := travel.NewTravelService(travelRepo, userRepo, dbManager, nil, nil)
	ctx := context.Background()

	t.Run("FirstVisitAwardsFirstBadge", func(t *testing.T) {
		userID := "fresh-user"

		require.NoError(t, service.RecordVisit(ctx, userID, "Delhi"))

		state, err := service.GetState(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Delhi"}, state.VisitedRegions)
		assert.Equal(t, []string{"Bronze Explorer"}, state.Badges)
	})

	t.Run("RepeatVisitIsIdempotent", func(t *testing.T) {
		userID := "repeat-user"

		require.NoError(t, service.RecordVisit(ctx, userID, "Delhi"))
		first, err := service.GetState(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, service.RecordVisit(ctx, userID, "Delhi"))
		second, err := service.GetState(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, first.VisitedRegions, second.VisitedRegions)
		assert.Equal(t, first.Badges, second.Badges)
		assert.Len(t, second.VisitedRegions, 1)
	})

	t.Run("SecondRegionKeepsEarlierBadge", func(t *testing.T) {
		userID := "growing-user"

		require.NoError(t, service.RecordVisit(ctx, userID, "Delhi"))
		require.NoError(t, service.RecordVisit(ctx, userID, "Goa"))

		state, err := service.GetState(ctx, userID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Delhi", "Goa"}, state.VisitedRegions)
		assert.Contains(t, state.Badges, "Bronze Explorer")
	})

	t.Run("ThirdRegionReachesNextTier", func(t *testing.T) {
		userID := "nomad-user"

		for _, region := range []string{"Delhi", "Goa", "Karnataka"} {
			require.NoError(t, service.RecordVisit(ctx, userID, region))
		}

		state, err := service.GetState(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, state.VisitedRegions, 3)
		assert.ElementsMatch(t, []string{"Bronze Explorer", "Silver Nomad"}, state.Badges)
	})

	t.Run("VisitOrderDoesNotMatter", func(t *testing.T) {
		require.NoError(t, service.RecordVisit(ctx, "order-ab", "Delhi"))
		require.NoError(t, service.RecordVisit(ctx, "order-ab", "Goa"))

		require.NoError(t, service.RecordVisit(ctx, "order-ba", "Goa"))
		require.NoError(t, service.RecordVisit(ctx, "order-ba", "Delhi"))

		ab, err := service.GetState(ctx, "order-ab")
		require.NoError(t, err)
		ba, err := service.GetState(ctx, "order-ba")
		require.NoError(t, err)

		assert.ElementsMatch(t, ab.VisitedRegions, ba.VisitedRegions)
		assert.ElementsMatch(t, ab.Badges, ba.Badges)
	})

	t.Run("RegionCountNeverDecreases", func(t *testing.T) {
		userID := "monotonic-user"
		regions := []string{"Delhi", "Delhi", "Goa", "Karnataka", "Goa", "Rajasthan"}

		prevRegions, prevBadges := 0, 0
		for _, region := range regions {
			require.NoError(t, service.RecordVisit(ctx, userID, region))

			state, err := service.GetState(ctx, userID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(state.VisitedRegions), prevRegions)
			assert.GreaterOrEqual(t, len(state.Badges), prevBadges)
			prevRegions = len(state.VisitedRegions)
			prevBadges = len(state.Badges)
		}
	})

	t.Run("UnknownRegionIsNoOp", func(t *testing.T) {
		userID := "lost-user"

		require.NoError(t, service.RecordVisit(ctx, userID, geo.UnknownRegion))
		require.NoError(t, service.RecordVisit(ctx, userID, ""))

		state, err := service.GetState(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, state.VisitedRegions)
		assert.Empty(t, state.Badges)
	})

	t.Run("NeverCheckedInUserHasEmptyState", func(t *testing.T) {
		state, err := service.GetState(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, state.VisitedRegions)
		assert.Empty(t, state.Badges)
	})
}

func TestTravelLeaderboard_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	travelRepo := factory.NewTravelStateRepository()
	userRepo := factory.NewUserRepository()
	dbManager := db.NewDBManager()
	defer dbManager.Stop()

	service := travel.NewTravelService(travelRepo, userRepo, dbManager, nil, nil)
	ctx := context.Background()

	alice := testutils.CreateTestUser("alice@example.com")
	alice.DisplayName = "alice"
	bob := testutils.CreateTestUser("bob@example.com")
	bob.DisplayName = "bob"
	require.NoError(t, userRepo.Create(ctx, alice))
	require.NoError(t, userRepo.Create(ctx, bob))

	for _, region := range []string{"Delhi", "Goa", "Karnataka"} {
		require.NoError(t, service.RecordVisit(ctx, alice.ID, region))
	}
	require.NoError(t, service.RecordVisit(ctx, bob.ID, "Delhi"))

	entries, err := service.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, alice.ID, entries[0].UserID)
	assert.Equal(t, "alice", entries[0].DisplayName)
	assert.Equal(t, 3, entries[0].RegionCount)
	assert.Equal(t, 2, entries[0].BadgeCount)

	assert.Equal(t, bob.ID, entries[1].UserID)
	assert.Equal(t, 1, entries[1].RegionCount)

	t.Run("LimitTruncates", func(t *testing.T) {
		top, err := service.Leaderboard(ctx, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, alice.ID, top[0].UserID)
	})
}

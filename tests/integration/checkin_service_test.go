package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/checkin"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/models"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deniedProvider simulates a user refusing location access.
type deniedProvider struct{}

func (p *deniedProvider) RequestPermission(ctx context.Context) error {
	return geo.ErrPermissionDenied
}

func (p *deniedProvider) CurrentFix(ctx context.Context) (models.GeoFix, error) {
	return models.GeoFix{}, geo.ErrPermissionDenied
}

// noFixProvider grants permission but never produces a fix.
type noFixProvider struct{}

func (p *noFixProvider) RequestPermission(ctx context.Context) error { return nil }

func (p *noFixProvider) CurrentFix(ctx context.Context) (models.GeoFix, error) {
	return models.GeoFix{}, geo.ErrLocationUnavailable
}

// failingPostRepo wraps a real post repository and fails every Create,
// simulating a store outage between the two check-in writes.
type failingPostRepo struct {
	db.PostRepository
}

func (r *failingPostRepo) Create(ctx context.Context, post *models.CheckInPost) (*models.CheckInPost, error) {
	return nil, errors.New("simulated store failure")
}

type checkInEnv struct {
	service       *checkin.CheckInService
	travelService *travel.TravelService
	postRepo      db.PostRepository
	session       models.Session
}

func setupCheckIn(t *testing.T, wrapPosts func(db.PostRepository) db.PostRepository) (*checkInEnv, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)

	travelRepo := factory.NewTravelStateRepository()
	userRepo := factory.NewUserRepository()
	postRepo := factory.NewPostRepository()
	if wrapPosts != nil {
		postRepo = wrapPosts(postRepo)
	}

	dbManager := db.NewDBManager()
	travelService := travel.NewTravelService(travelRepo, userRepo, dbManager, nil, nil)
	resolver := geo.NewResolver(geo.DefaultBoundaries())
	service := checkin.NewCheckInService(resolver, travelService, postRepo, userRepo, dbManager)

	user := testutils.CreateTestUser("traveller@example.com")
	require.NoError(t, userRepo.Create(context.Background(), user))

	env := &checkInEnv{
		service:       service,
		travelService: travelService,
		postRepo:      postRepo,
		session:       models.Session{UserID: user.ID, Email: user.Email},
	}
	return env, func() {
		dbManager.Stop()
		cleanup()
	}
}

func TestCheckInFlow_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulCheckIn", func(t *testing.T) {
		env, cleanup := setupCheckIn(t, nil)
		defer cleanup()

		caption := "First time in the capital"
		result, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
			Provider: geo.NewStaticProvider(testutils.DelhiFix),
			Caption:  &caption,
		})
		require.NoError(t, err)

		assert.Equal(t, "Delhi", result.Region)
		require.NotNil(t, result.Post)
		assert.Equal(t, "Delhi", result.Post.Region)
		assert.Equal(t, env.session.UserID, result.Post.AuthorID)
		assert.Equal(t, "Test Traveller", result.Post.AuthorName)
		require.NotNil(t, result.Post.Caption)
		assert.Equal(t, caption, *result.Post.Caption)

		require.NotNil(t, result.State)
		assert.Equal(t, []string{"Delhi"}, result.State.VisitedRegions)
		assert.Equal(t, []string{"Bronze Explorer"}, result.State.Badges)

		posts, err := env.postRepo.FindLatest(ctx, 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, result.Post.ID, posts[0].ID)
	})

	t.Run("PermissionDeniedWritesNothing", func(t *testing.T) {
		env, cleanup := setupCheckIn(t, nil)
		defer cleanup()

		_, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
			Provider: &deniedProvider{},
		})
		require.ErrorIs(t, err, geo.ErrPermissionDenied)

		state, err := env.travelService.GetState(ctx, env.session.UserID)
		require.NoError(t, err)
		assert.Empty(t, state.VisitedRegions)

		posts, err := env.postRepo.FindLatest(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("LocationUnavailableWritesNothing", func(t *testing.T) {
		env, cleanup := setupCheckIn(t, nil)
		defer cleanup()

		_, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
			Provider: &noFixProvider{},
		})
		require.ErrorIs(t, err, geo.ErrLocationUnavailable)

		posts, err := env.postRepo.FindLatest(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("UnknownRegionPostsWithoutProgress", func(t *testing.T) {
		fixes := map[string]models.GeoFix{
			"outside every boundary":    testutils.MidOceanFix,
			"coordinates off the globe": testutils.OutOfRangeFix,
		}
		for name, fix := range fixes {
			t.Run(name, func(t *testing.T) {
				env, cleanup := setupCheckIn(t, nil)
				defer cleanup()

				result, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
					Provider: geo.NewStaticProvider(fix),
				})
				require.NoError(t, err)

				assert.Equal(t, geo.UnknownRegion, result.Region)
				require.NotNil(t, result.Post)
				assert.Equal(t, geo.UnknownRegion, result.Post.Region)

				// The post exists but travel progress is untouched.
				assert.Empty(t, result.State.VisitedRegions)
				assert.Empty(t, result.State.Badges)
			})
		}
	})

	t.Run("PostFailureKeepsTravelProgress", func(t *testing.T) {
		env, cleanup := setupCheckIn(t, func(repo db.PostRepository) db.PostRepository {
			return &failingPostRepo{PostRepository: repo}
		})
		defer cleanup()

		_, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
			Provider: geo.NewStaticProvider(testutils.PanajiFix),
		})
		require.ErrorIs(t, err, db.ErrPersistence)

		// The region committed before the post failed, and stays committed.
		state, err := env.travelService.GetState(ctx, env.session.UserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Goa"}, state.VisitedRegions)
		assert.Equal(t, []string{"Bronze Explorer"}, state.Badges)

		posts, err := env.postRepo.FindLatest(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("TwoDevicesSameUser", func(t *testing.T) {
		env, cleanup := setupCheckIn(t, nil)
		defer cleanup()

		for i := 0; i < 2; i++ {
			_, err := env.service.CheckIn(ctx, env.session, checkin.CheckInRequest{
				Provider: geo.NewStaticProvider(testutils.JaipurFix),
			})
			require.NoError(t, err)
		}

		state, err := env.travelService.GetState(ctx, env.session.UserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Rajasthan"}, state.VisitedRegions)

		// Each check-in still produces its own post.
		posts, err := env.postRepo.FindLatest(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

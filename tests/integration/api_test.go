package integration

import (
	"testing"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/chat"
	"github.com/aayushkhanna09/rahi-app/internal/checkin"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/internal/post"
	"github.com/aayushkhanna09/rahi-app/internal/social"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/internal/user"
	"github.com/aayushkhanna09/rahi-app/internal/web"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAPIServer(t *testing.T) (*testutils.TestServer, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	cfg := testutils.GetTestConfig()

	travelRepo := factory.NewTravelStateRepository()
	postRepo := factory.NewPostRepository()
	userRepo := factory.NewUserRepository()
	roomRepo := factory.NewRoomRepository()

	dbManager := db.NewDBManager()
	resolver := geo.NewResolver(geo.DefaultBoundaries())

	userService := user.NewUserService(userRepo, dbManager)
	travelService := travel.NewTravelService(travelRepo, userRepo, dbManager, nil, nil)
	checkInService := checkin.NewCheckInService(resolver, travelService, postRepo, userRepo, dbManager)
	postService := post.NewPostService(postRepo, userRepo)
	socialService := social.NewSocialService(userRepo)
	chatService := chat.NewChatService(roomRepo, userRepo)

	router := &web.Router{
		Auth:    user.NewAuthHandlers(cfg, userService),
		Users:   user.NewUserHandlers(userService, travelService),
		CheckIn: checkin.NewCheckInHandlers(checkInService),
		Posts:   post.NewPostHandlers(postService),
		Travel:  travel.NewTravelHandlers(travelService),
		Social:  social.NewSocialHandlers(socialService),
		Chat:    chat.NewChatHandlers(chatService),
		MW:      middleware.NewMiddleware(cfg),
	}

	server := testutils.NewTestServer(t, router.SetupRoutes())
	return server, func() {
		server.Close()
		dbManager.Stop()
		cleanup()
	}
}

func registerUser(t *testing.T, server *testutils.TestServer, email string) (token, userID string) {
	resp := server.POST("/api/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	})

	var body map[string]string
	testutils.AssertJSONResponse(t, resp, 201, &body)
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["user_id"])
	return body["token"], body["user_id"]
}

func TestAPICheckInFlow(t *testing.T) {
	server, cleanup := setupAPIServer(t)
	defer cleanup()

	token, userID := registerUser(t, server, "rahi@example.com")

	t.Run("DuplicateRegisterConflicts", func(t *testing.T) {
		resp := server.POST("/api/auth/register", map[string]string{
			"email":    "rahi@example.com",
			"password": "another",
		})
		assert.Equal(t, 409, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("WrongPasswordRejected", func(t *testing.T) {
		resp := server.POST("/api/auth/login", map[string]string{
			"email":    "rahi@example.com",
			"password": "wrong",
		})
		assert.Equal(t, 401, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("ProtectedRouteNeedsToken", func(t *testing.T) {
		// Everything past register/login sits behind the bearer token,
		// read-only feed and leaderboard included.
		for _, path := range []string{"/api/profile", "/api/posts", "/api/leaderboard"} {
			resp := server.GET(path)
			assert.Equal(t, 401, resp.StatusCode, path)
			resp.Body.Close()
		}
	})

	server.AuthToken = token

	t.Run("CheckInResolvesAndPosts", func(t *testing.T) {
		resp := server.POST("/api/checkins", map[string]interface{}{
			"latitude":  28.6139,
			"longitude": 77.2090,
			"caption":   "Red Fort!",
		})

		var result checkin.CheckInResult
		testutils.AssertJSONResponse(t, resp, 201, &result)
		assert.Equal(t, "Delhi", result.Region)
		require.NotNil(t, result.Post)
		assert.Equal(t, userID, result.Post.AuthorID)
		require.NotNil(t, result.State)
		assert.Equal(t, []string{"Delhi"}, result.State.VisitedRegions)
		assert.Equal(t, []string{"Bronze Explorer"}, result.State.Badges)
	})

	t.Run("ProfileShowsTravelRecord", func(t *testing.T) {
		resp := server.GET("/api/profile")

		var profile struct {
			User   *models.User        `json:"user"`
			Travel *models.TravelState `json:"travel"`
		}
		testutils.AssertJSONResponse(t, resp, 200, &profile)
		assert.Equal(t, "rahi", profile.User.DisplayName)
		assert.Equal(t, []string{"Delhi"}, profile.Travel.VisitedRegions)
	})

	t.Run("FeedServesThePost", func(t *testing.T) {
		resp := server.GET("/api/posts")

		var feed []*models.CheckInPost
		testutils.AssertJSONResponse(t, resp, 200, &feed)
		require.Len(t, feed, 1)
		assert.Equal(t, "Delhi", feed[0].Region)

		likeResp := server.POST("/api/posts/"+feed[0].ID+"/like", nil)
		assert.Equal(t, 204, likeResp.StatusCode)
		likeResp.Body.Close()
	})

	t.Run("LeaderboardRanksTheUser", func(t *testing.T) {
		resp := server.GET("/api/leaderboard")

		var entries []travel.LeaderboardEntry
		testutils.AssertJSONResponse(t, resp, 200, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, userID, entries[0].UserID)
		assert.Equal(t, 1, entries[0].RegionCount)
	})
}

func TestAPIConnectionsAndChat(t *testing.T) {
	server, cleanup := setupAPIServer(t)
	defer cleanup()

	aliceToken, aliceID := registerUser(t, server, "alice@example.com")
	bobToken, bobID := registerUser(t, server, "bob@example.com")

	// Alice requests, Bob accepts.
	server.AuthToken = aliceToken
	resp := server.POST("/api/connections/"+bobID+"/request", nil)
	require.Equal(t, 204, resp.StatusCode)
	resp.Body.Close()

	server.AuthToken = bobToken
	resp = server.POST("/api/connections/"+aliceID+"/accept", nil)
	require.Equal(t, 204, resp.StatusCode)
	resp.Body.Close()

	var bobView struct {
		Connections []string `json:"connections"`
	}
	testutils.AssertJSONResponse(t, server.GET("/api/connections"), 200, &bobView)
	assert.Equal(t, []string{aliceID}, bobView.Connections)

	// Bob messages Alice; Alice reads it from her side of the shared room.
	resp = server.POST("/api/rooms/"+aliceID+"/messages", map[string]string{"text": "namaste"})
	var sent models.Message
	testutils.AssertJSONResponse(t, resp, 201, &sent)
	assert.Equal(t, bobID, sent.AuthorID)

	server.AuthToken = aliceToken
	var messages []*models.Message
	testutils.AssertJSONResponse(t, server.GET("/api/rooms/"+bobID+"/messages"), 200, &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "namaste", messages[0].Text)

	var rooms []*models.Room
	testutils.AssertJSONResponse(t, server.GET("/api/rooms"), 200, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, models.RoomID(aliceID, bobID), rooms[0].ID)
}

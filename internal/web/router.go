package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aayushkhanna09/rahi-app/internal/chat"
	"github.com/aayushkhanna09/rahi-app/internal/checkin"
	"github.com/aayushkhanna09/rahi-app/internal/post"
	"github.com/aayushkhanna09/rahi-app/internal/social"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/internal/user"
	"github.com/aayushkhanna09/rahi-app/middleware"
)

// Router assembles the HTTP API from the domain handlers.
type Router struct {
	Auth    *user.AuthHandlers
	Users   *user.UserHandlers
	CheckIn *checkin.CheckInHandlers
	Posts   *post.PostHandlers
	Travel  *travel.TravelHandlers
	Social  *social.SocialHandlers
	Chat    *chat.ChatHandlers
	MW      *middleware.Middleware
}

func (rt *Router) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/register", rt.Auth.RegisterHandler).Methods("POST")
	api.HandleFunc("/auth/login", rt.Auth.LoginHandler).Methods("POST")

	protect := rt.MW.AuthMiddleware

	// Profile endpoints
	api.HandleFunc("/profile", protect(rt.Users.GetProfile)).Methods("GET")
	api.HandleFunc("/profile", protect(rt.Users.UpdateProfile)).Methods("PUT")
	api.HandleFunc("/users/{id}", protect(rt.Users.GetUser)).Methods("GET")
	api.HandleFunc("/users/{id}/posts", protect(rt.Posts.GetUserPosts)).Methods("GET")

	// Check-in and feed endpoints
	api.HandleFunc("/checkins", protect(rt.CheckIn.CreateCheckIn)).Methods("POST")
	api.HandleFunc("/posts", protect(rt.Posts.GetFeed)).Methods("GET")
	api.HandleFunc("/posts/{id}/like", protect(rt.Posts.LikePost)).Methods("POST")
	api.HandleFunc("/posts/{id}/unlike", protect(rt.Posts.UnlikePost)).Methods("POST")
	api.HandleFunc("/posts/{id}/comments", protect(rt.Posts.CreateComment)).Methods("POST")
	api.HandleFunc("/posts/{id}/comments", protect(rt.Posts.GetComments)).Methods("GET")
	api.HandleFunc("/leaderboard", protect(rt.Travel.GetLeaderboard)).Methods("GET")

	// Connection endpoints
	api.HandleFunc("/connections", protect(rt.Social.GetConnections)).Methods("GET")
	api.HandleFunc("/connections/{id}/request", protect(rt.Social.SendRequest)).Methods("POST")
	api.HandleFunc("/connections/{id}/accept", protect(rt.Social.AcceptRequest)).Methods("POST")
	api.HandleFunc("/connections/{id}/decline", protect(rt.Social.DeclineRequest)).Methods("POST")
	api.HandleFunc("/connections/{id}/block", protect(rt.Social.BlockUser)).Methods("POST")

	// Chat endpoints
	api.HandleFunc("/rooms", protect(rt.Chat.GetRooms)).Methods("GET")
	api.HandleFunc("/rooms/{peer}/messages", protect(rt.Chat.SendMessage)).Methods("POST")
	api.HandleFunc("/rooms/{peer}/messages", protect(rt.Chat.GetMessages)).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}

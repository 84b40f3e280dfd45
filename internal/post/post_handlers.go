package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/gorilla/mux"
)

type PostHandlers struct {
	Service *PostService
}

func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{Service: service}
}

// GetFeed serves the latest posts.
func (h *PostHandlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	posts, err := h.Service.Feed(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []*models.CheckInPost{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// GetUserPosts serves one user's posts, newest first.
func (h *PostHandlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	authorID := mux.Vars(r)["id"]
	posts, err := h.Service.FindByAuthor(r.Context(), authorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []*models.CheckInPost{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// LikePost adds the session user's like.
func (h *PostHandlers) LikePost(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if err := h.Service.Like(r.Context(), postID, session.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlikePost removes the session user's like.
func (h *PostHandlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if err := h.Service.Unlike(r.Context(), postID, session.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type commentDto struct {
	Text string `json:"text"`
}

// CreateComment appends a comment to a post.
func (h *PostHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var dto commentDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Text == "" {
		http.Error(w, "comment text is required", http.StatusBadRequest)
		return
	}

	postID := mux.Vars(r)["id"]
	comment, err := h.Service.AddComment(r.Context(), postID, session.UserID, dto.Text)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

// GetComments serves a post's comments.
func (h *PostHandlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	comments, err := h.Service.Comments(r.Context(), postID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comments)
}

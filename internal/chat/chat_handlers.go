package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"
)

// ChatHandlers handles HTTP requests for chat operations
type ChatHandlers struct {
	Service *ChatService
}

// NewChatHandlers creates a new ChatHandlers
func NewChatHandlers(service *ChatService) *ChatHandlers {
	return &ChatHandlers{Service: service}
}

// GetRooms handles GET /api/rooms
func (h *ChatHandlers) GetRooms(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rooms, err := h.Service.Rooms(r.Context(), session)
	if err != nil {
		http.Error(w, "Failed to list rooms", http.StatusInternalServerError)
		return
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rooms)
}

type messageDto struct {
	Text string `json:"text"`
}

// SendMessage handles POST /api/rooms/{peer}/messages
func (h *ChatHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto messageDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	peerID := mux.Vars(r)["peer"]
	message, err := h.Service.SendMessage(r.Context(), session, peerID, dto.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, db.ErrNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

// GetMessages handles GET /api/rooms/{peer}/messages
func (h *ChatHandlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 50
	if param := r.URL.Query().Get("limit"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	peerID := mux.Vars(r)["peer"]
	messages, err := h.Service.Messages(r.Context(), session, peerID, limit)
	if err != nil {
		http.Error(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []*models.Message{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

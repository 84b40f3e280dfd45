package social

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/middleware"
)

// SocialHandlers handles HTTP requests for connection operations
type SocialHandlers struct {
	Service *SocialService
}

// NewSocialHandlers creates a new SocialHandlers
func NewSocialHandlers(service *SocialService) *SocialHandlers {
	return &SocialHandlers{Service: service}
}

func (h *SocialHandlers) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSelfConnection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBlocked):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrNoRequest):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, db.ErrNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	default:
		http.Error(w, "Failed to update connection", http.StatusInternalServerError)
	}
}

// SendRequest handles POST /api/connections/{id}/request
func (h *SocialHandlers) SendRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if err := h.Service.Request(r.Context(), session, targetID); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptRequest handles POST /api/connections/{id}/accept
func (h *SocialHandlers) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	fromID := mux.Vars(r)["id"]
	if err := h.Service.Accept(r.Context(), session, fromID); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeclineRequest handles POST /api/connections/{id}/decline
func (h *SocialHandlers) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	fromID := mux.Vars(r)["id"]
	if err := h.Service.Decline(r.Context(), session, fromID); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BlockUser handles POST /api/connections/{id}/block
func (h *SocialHandlers) BlockUser(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID := mux.Vars(r)["id"]
	if err := h.Service.Block(r.Context(), session, otherID); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetConnections handles GET /api/connections
func (h *SocialHandlers) GetConnections(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	overview, err := h.Service.GetOverview(r.Context(), session)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load connections", http.StatusInternalServerError)
		return
	}
	if overview.Requests == nil {
		overview.Requests = []string{}
	}
	if overview.Connections == nil {
		overview.Connections = []string{}
	}
	if overview.Blocked == nil {
		overview.Blocked = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

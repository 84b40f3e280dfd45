package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/gorilla/mux"
)

type UserHandlers struct {
	Service       *UserService
	TravelService *travel.TravelService
}

func NewUserHandlers(service *UserService, travelService *travel.TravelService) *UserHandlers {
	return &UserHandlers{Service: service, TravelService: travelService}
}

// profileDto is the public view of a user: credentials stripped, travel
// record joined in.
type profileDto struct {
	User   *models.User        `json:"user"`
	Travel *models.TravelState `json:"travel"`
}

// GetProfile serves the session user's own profile.
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.serveProfile(w, r, session.UserID)
}

// GetUser serves another user's public profile.
func (h *UserHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	h.serveProfile(w, r, mux.Vars(r)["id"])
}

func (h *UserHandlers) serveProfile(w http.ResponseWriter, r *http.Request, userID string) {
	profile, err := h.Service.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	state, err := h.TravelService.GetState(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileDto{User: profile, Travel: state})
}

type updateProfileDto struct {
	Bio       *string  `json:"bio,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	AvatarRef *string  `json:"avatar_ref,omitempty"`
}

// UpdateProfile merges optional profile fields for the session user.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var dto updateProfileDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateProfile(r.Context(), session.UserID, dto.Bio, dto.Tags, dto.AvatarRef); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.serveProfile(w, r, session.UserID)
}

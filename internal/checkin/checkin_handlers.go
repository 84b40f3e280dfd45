package checkin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"
)

type CheckInHandlers struct {
	Service *CheckInService
}

func NewCheckInHandlers(service *CheckInService) *CheckInHandlers {
	return &CheckInHandlers{Service: service}
}

type checkInDto struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Caption   *string `json:"caption,omitempty"`
	PhotoRef  *string `json:"photo_ref,omitempty"`
}

// CreateCheckIn runs a check-in with the device-reported fix.
func (h *CheckInHandlers) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var dto checkInDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	provider := geo.NewStaticProvider(models.GeoFix{
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	})

	result, err := h.Service.CheckIn(r.Context(), session, CheckInRequest{
		Provider: provider,
		Caption:  dto.Caption,
		PhotoRef: dto.PhotoRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrPermissionDenied):
			http.Error(w, "location permission denied", http.StatusForbidden)
		case errors.Is(err, geo.ErrLocationUnavailable):
			http.Error(w, "location unavailable", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

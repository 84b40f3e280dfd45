package travel

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type TravelHandlers struct {
	Service *TravelService
}

func NewTravelHandlers(service *TravelService) *TravelHandlers {
	return &TravelHandlers{Service: service}
}

// GetLeaderboard serves the ranked explorer list.
func (h *TravelHandlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.Service.Leaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

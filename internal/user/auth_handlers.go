package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aayushkhanna09/rahi-app/internal/auth"
	"github.com/aayushkhanna09/rahi-app/internal/config"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandlers serves the unauthenticated register/login endpoints. It lives
// alongside UserService so the token helpers in internal/auth stay free of
// service dependencies.
type AuthHandlers struct {
	Config      *config.Config
	UserService *UserService
}

func NewAuthHandlers(cfg *config.Config, userService *UserService) *AuthHandlers {
	return &AuthHandlers{Config: cfg, UserService: userService}
}

// RegisterHandler creates an account and returns a token for it.
func (h *AuthHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	newUser, err := h.UserService.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Email already registered"})
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Email and password are required"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to register"})
		return
	}

	tokenString, err := auth.GenerateJWT(h.Config, newUser)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate token"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"token": tokenString, "user_id": newUser.ID})
}

// LoginHandler verifies credentials and returns a token.
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	authedUser, err := h.UserService.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to log in"})
		return
	}

	tokenString, err := auth.GenerateJWT(h.Config, authedUser)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate token"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": tokenString, "user_id": authedUser.ID})
}

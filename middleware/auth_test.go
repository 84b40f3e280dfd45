package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aayushkhanna09/rahi-app/internal/auth"
	"github.com/aayushkhanna09/rahi-app/internal/config"
	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JwtKey: []byte("test_jwt_secret_key_for_testing_only")}
	mw := NewMiddleware(cfg)

	var seen models.Session
	handler := mw.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		seen = session
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("MissingHeaderRejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenCarriesSession", func(t *testing.T) {
		token, err := auth.GenerateJWT(cfg, &models.User{ID: "user-1", Email: "rahi@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-1", seen.UserID)
		assert.Equal(t, "rahi@example.com", seen.Email)
	})
}

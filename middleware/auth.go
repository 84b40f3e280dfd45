package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aayushkhanna09/rahi-app/internal/auth"
	"github.com/aayushkhanna09/rahi-app/internal/config"
	"github.com/aayushkhanna09/rahi-app/models"
)

type contextKey string

const sessionKey contextKey = "session"

type Middleware struct {
	Config *config.Config
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{Config: cfg}
}

// AuthMiddleware verifies the bearer token and stores the resulting session
// in the request context. Handlers read it back with SessionFromContext; the
// acting user is never taken from any ambient global.
func (m *Middleware) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := auth.ParseJWT(m.Config, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the authenticated session stored by
// AuthMiddleware.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(models.Session)
	return session, ok
}

// WithSession injects a session directly, for tests that bypass the token
// round trip.
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

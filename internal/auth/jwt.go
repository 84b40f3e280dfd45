package auth

import (
	"fmt"
	"time"

	"github.com/aayushkhanna09/rahi-app/internal/config"
	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/dgrijalva/jwt-go"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token for a user session.
func GenerateJWT(cfg *config.Config, user *models.User) (string, error) {
	expirationTime := time.Now().Add(72 * time.Hour)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cfg.JwtKey)
}

// ParseJWT verifies a token string and returns the session it encodes.
func ParseJWT(cfg *config.Config, tokenStr string) (models.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return cfg.JwtKey, nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if !token.Valid {
		return models.Session{}, fmt.Errorf("invalid token")
	}

	return models.Session{UserID: claims.UserID, Email: claims.Email}, nil
}

package auth

import (
	"testing"

	"github.com/aayushkhanna09/rahi-app/internal/config"
	"github.com/aayushkhanna09/rahi-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(key string) *config.Config {
	return &config.Config{JwtKey: []byte(key)}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig("round-trip-secret")
	user := &models.User{ID: "u-42", Email: "traveller@example.com"}

	token, err := GenerateJWT(cfg, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := ParseJWT(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", session.UserID)
	assert.Equal(t, "traveller@example.com", session.Email)
}

func TestParseJWTWrongKey(t *testing.T) {
	user := &models.User{ID: "u-42", Email: "traveller@example.com"}

	token, err := GenerateJWT(testConfig("key-one"), user)
	require.NoError(t, err)

	_, err = ParseJWT(testConfig("key-two"), token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT(testConfig("any"), "not-a-token")
	assert.Error(t, err)
}

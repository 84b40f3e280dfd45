package integration

import (
	"context"
	"testing"

	"github.com/aayushkhanna09/rahi-app/internal/social"
	"github.com/aayushkhanna09/rahi-app/models"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	userRepo := factory.NewUserRepository()
	service := social.NewSocialService(userRepo)
	ctx := context.Background()

	newUser := func(email string) models.Session {
		user := testutils.CreateTestUser(email)
		require.NoError(t, userRepo.Create(ctx, user))
		return models.Session{UserID: user.ID, Email: user.Email}
	}

	t.Run("RequestAcceptConnectsBothSides", func(t *testing.T) {
		alice := newUser("alice1@example.com")
		bob := newUser("bob1@example.com")

		require.NoError(t, service.Request(ctx, alice, bob.UserID))

		bobView, err := service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.Contains(t, bobView.Requests, alice.UserID)

		require.NoError(t, service.Accept(ctx, bob, alice.UserID))

		bobView, err = service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.NotContains(t, bobView.Requests, alice.UserID)
		assert.Contains(t, bobView.Connections, alice.UserID)

		aliceView, err := service.GetOverview(ctx, alice)
		require.NoError(t, err)
		assert.Contains(t, aliceView.Connections, bob.UserID)
	})

	t.Run("DeclineOnlyDropsRequest", func(t *testing.T) {
		alice := newUser("alice2@example.com")
		bob := newUser("bob2@example.com")

		require.NoError(t, service.Request(ctx, alice, bob.UserID))
		require.NoError(t, service.Decline(ctx, bob, alice.UserID))

		bobView, err := service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, bobView.Requests)
		assert.Empty(t, bobView.Connections)

		// A declined user may request again.
		require.NoError(t, service.Request(ctx, alice, bob.UserID))
	})

	t.Run("AcceptWithoutRequestFails", func(t *testing.T) {
		alice := newUser("alice3@example.com")
		bob := newUser("bob3@example.com")

		err := service.Accept(ctx, bob, alice.UserID)
		assert.ErrorIs(t, err, social.ErrNoRequest)
	})

	t.Run("BlockSeversAndPreventsRequests", func(t *testing.T) {
		alice := newUser("alice4@example.com")
		bob := newUser("bob4@example.com")

		require.NoError(t, service.Request(ctx, alice, bob.UserID))
		require.NoError(t, service.Accept(ctx, bob, alice.UserID))

		require.NoError(t, service.Block(ctx, bob, alice.UserID))

		bobView, err := service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, bobView.Connections)
		assert.Contains(t, bobView.Blocked, alice.UserID)

		aliceView, err := service.GetOverview(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, aliceView.Connections)

		// The blocked user cannot re-request.
		err = service.Request(ctx, alice, bob.UserID)
		assert.ErrorIs(t, err, social.ErrBlocked)

		// Nor can the blocker request the blocked user.
		err = service.Request(ctx, bob, alice.UserID)
		assert.ErrorIs(t, err, social.ErrBlocked)
	})

	t.Run("BlockDropsBlockersOwnRequest", func(t *testing.T) {
		alice := newUser("alice8@example.com")
		bob := newUser("bob8@example.com")

		// Bob requests, then blocks. His pending request must not survive
		// on Alice's document.
		require.NoError(t, service.Request(ctx, bob, alice.UserID))
		require.NoError(t, service.Block(ctx, bob, alice.UserID))

		aliceView, err := service.GetOverview(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, aliceView.Requests)
	})

	t.Run("AcceptRefusedAcrossBlock", func(t *testing.T) {
		alice := newUser("alice9@example.com")
		bob := newUser("bob9@example.com")

		require.NoError(t, service.Request(ctx, bob, alice.UserID))
		require.NoError(t, service.Block(ctx, bob, alice.UserID))

		// Even if a stale request were still visible, accepting across a
		// block must never connect the pair.
		err := service.Accept(ctx, alice, bob.UserID)
		assert.ErrorIs(t, err, social.ErrBlocked)

		bobView, err := service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, bobView.Connections)

		aliceView, err := service.GetOverview(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, aliceView.Connections)
	})

	t.Run("SelfRequestRejected", func(t *testing.T) {
		alice := newUser("alice5@example.com")
		err := service.Request(ctx, alice, alice.UserID)
		assert.ErrorIs(t, err, social.ErrSelfConnection)
	})

	t.Run("RepeatRequestIsIdempotent", func(t *testing.T) {
		alice := newUser("alice6@example.com")
		bob := newUser("bob6@example.com")

		require.NoError(t, service.Request(ctx, alice, bob.UserID))
		require.NoError(t, service.Request(ctx, alice, bob.UserID))

		bobView, err := service.GetOverview(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, []string{alice.UserID}, bobView.Requests)
	})

	t.Run("RequestToMissingUserFails", func(t *testing.T) {
		alice := newUser("alice7@example.com")
		err := service.Request(ctx, alice, "no-such-user")
		assert.Error(t, err)
	})
}

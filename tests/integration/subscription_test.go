package integration

import (
	"context"
	"testing"
	"time"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/models"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, sub db.Subscription) db.ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-sub.Changes():
		require.True(t, ok, "subscription closed early: %v", sub.Err())
		return event
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for change event")
		return db.ChangeEvent{}
	}
}

func TestFeedSubscription_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	postRepo := factory.NewPostRepository()
	ctx := context.Background()

	sub, err := postRepo.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	_, err = postRepo.Create(ctx, testutils.CreateTestPost("author-1", "Delhi"))
	require.NoError(t, err)

	event := waitForEvent(t, sub)
	assert.Equal(t, "posts", event.Collection)
	assert.Equal(t, "insert", event.Operation)
}

func TestRoomSubscription_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	roomRepo := factory.NewRoomRepository()
	ctx := context.Background()

	room := &models.Room{
		ID:           models.RoomID("user-a", "user-b"),
		Participants: []string{"user-a", "user-b"},
	}
	require.NoError(t, roomRepo.Upsert(ctx, room))

	sub, err := roomRepo.SubscribeRoom(ctx, room.ID)
	require.NoError(t, err)
	defer sub.Close()

	message := testutils.CreateTestMessage(room.ID, "user-a", "ping")
	require.NoError(t, roomRepo.AddMessage(ctx, message))

	event := waitForEvent(t, sub)
	assert.Equal(t, "messages", event.Collection)
	assert.Equal(t, "insert", event.Operation)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomID(t *testing.T) {
	// Both orderings of the pair derive the same room.
	assert.Equal(t, RoomID("alice", "bob"), RoomID("bob", "alice"))
	assert.Equal(t, "alice_bob", RoomID("bob", "alice"))
	assert.Equal(t, "alice_bob", RoomID("alice", "bob"))
}

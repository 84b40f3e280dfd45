package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTravelStateHelpers(t *testing.T) {
	state := &TravelState{
		UserID:         "u1",
		VisitedRegions: []string{"Delhi", "Goa"},
		Badges:         []string{"Bronze Explorer"},
	}

	assert.True(t, state.HasVisited("Delhi"))
	assert.False(t, state.HasVisited("Karnataka"))
	assert.True(t, state.HasBadge("Bronze Explorer"))
	assert.False(t, state.HasBadge("Silver Nomad"))
}

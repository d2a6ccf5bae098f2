package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusFulfilled))
	assert.True(t, CanTransition(StatusProcessing, StatusCancelled))

	assert.False(t, CanTransition(StatusFulfilled, StatusProcessing))
	assert.False(t, CanTransition(StatusCancelled, StatusProcessing))
	assert.False(t, CanTransition(StatusPending, StatusFulfilled))
}

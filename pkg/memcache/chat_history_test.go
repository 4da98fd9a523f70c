package mem

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripflow/internal/models/request_models"
)

func TestAppendTrimsToWindow(t *testing.T) {
	store := NewChatHistory(4)
	tripID := uuid.New()

	for i := 1; i <= 7; i++ {
		store.Append(tripID, request_models.ChatTurn{
			Role:    "user",
			Content: fmt.Sprintf("turn %d", i),
		})
	}

	turns := store.History(tripID)
	require.Len(t, turns, 4)
	assert.Equal(t, "turn 4", turns[0].Content)
	assert.Equal(t, "turn 7", turns[3].Content)
}

func TestTripsDoNotShareTranscripts(t *testing.T) {
	store := NewChatHistory(4)
	a, b := uuid.New(), uuid.New()

	store.Append(a, request_models.ChatTurn{Role: "user", Content: "for a"})

	assert.Len(t, store.History(a), 1)
	assert.Empty(t, store.History(b))
}

func TestClearDropsTranscript(t *testing.T) {
	store := NewChatHistory(4)
	tripID := uuid.New()

	store.Append(tripID, request_models.ChatTurn{Role: "user", Content: "hello"})
	store.Clear(tripID)

	assert.Empty(t, store.History(tripID))
}

func TestDefaultWindowApplies(t *testing.T) {
	store := NewChatHistory(0)
	tripID := uuid.New()

	for i := 0; i < 25; i++ {
		store.Append(tripID, request_models.ChatTurn{Role: "user", Content: "x"})
	}

	assert.Len(t, store.History(tripID), 20)
}

package mem

import (
	"sync"

	"github.com/google/uuid"

	"tripflow/internal/models/request_models"
)

// ChatHistoryStore keeps the per-trip chat transcript. Transcripts are the
// only state held outside persistence: in memory, scoped per trip, and
// bounded to a trailing window of recent turns.
type ChatHistoryStore interface {
	Append(tripID uuid.UUID, turn request_models.ChatTurn)
	History(tripID uuid.UUID) []request_models.ChatTurn
	Clear(tripID uuid.UUID)
}

type ChatHistory struct {
	mu     sync.RWMutex
	window int
	byTrip map[uuid.UUID][]request_models.ChatTurn
}

func NewChatHistory(window int) *ChatHistory {
	if window <= 0 {
		window = 20
	}
	return &ChatHistory{
		window: window,
		byTrip: make(map[uuid.UUID][]request_models.ChatTurn),
	}
}

func (s *ChatHistory) Append(tripID uuid.UUID, turn request_models.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.byTrip[tripID], turn)
	if len(turns) > s.window {
		turns = turns[len(turns)-s.window:]
	}
	s.byTrip[tripID] = turns
}

// History returns a copy; callers may not mutate the stored window.
func (s *ChatHistory) History(tripID uuid.UUID) []request_models.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.byTrip[tripID]
	out := make([]request_models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

func (s *ChatHistory) Clear(tripID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byTrip, tripID)
}

package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
)

// TripContext carries everything the prompt builders need about one trip.
type TripContext struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Preferences []string
	Description string
	Note        string
	// Day-scope only: summary of the itinerary as it currently stands.
	ExistingSummary string
	// Free-text edit request from the user, when there is one.
	EditRequest string
	// Names of places already known near the destination, fed to the model
	// so it does not invent near-duplicates of them.
	KnownPlaces []string
}

// DaySpan is the inclusive day count of the context's date range.
func (tc TripContext) DaySpan() int {
	if tc.EndDate.Before(tc.StartDate) {
		return 0
	}
	return int(tc.EndDate.Sub(tc.StartDate).Hours()/24) + 1
}

// AIClientInterface is the boundary to the generative-model provider.
// Implementations handle model fallback, retry and schema validation;
// callers receive either validated structures or a typed error.
type AIClientInterface interface {
	GenerateTripItinerary(ctx context.Context, tc TripContext) (*response_models.GeneratedItinerary, error)
	GenerateDayItinerary(ctx context.Context, tc TripContext, dayNumber int) (*response_models.GeneratedDay, error)

	// ChatReply is the non-streaming completion used both directly and as
	// the fallback when streaming fails before any chunk arrives.
	ChatReply(ctx context.Context, history []request_models.ChatTurn, message string) (string, error)

	// ChatReplyStream sends reply fragments on chunks as they arrive and
	// closes the channel when the turn ends. The first terminal error is
	// returned; fragments already sent stay sent.
	ChatReplyStream(ctx context.Context, history []request_models.ChatTurn, message string, chunks chan<- string) error

	Close() error
}

// NewAIClient builds a provider client from configuration.
func NewAIClient(provider, apiKey, preferredModel string) (AIClientInterface, error) {
	switch strings.ToLower(provider) {
	case "", "gemini":
		return NewGeminiClient(apiKey, preferredModel)
	case "openai":
		return NewOpenAIClient(apiKey, preferredModel), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}
}

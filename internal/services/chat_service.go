package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/pkg/intent"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/utils"
)

// Per-trip conversation states. Applying is orthogonal and entered only
// from Idle, so a send and an apply can never interleave on one trip.
type chatState int

const (
	stateIdle chatState = iota
	stateSending
	stateStreaming
	stateAwaitingFallback
	stateApplying
)

type ChatServiceInterface interface {
	// SendMessage runs one chat round-trip. When chunks is non-nil, reply
	// fragments are forwarded to it as they arrive; the channel is closed
	// before SendMessage returns. The full reply text is returned either way.
	SendMessage(ctx context.Context, tripID uuid.UUID, req request_models.ChatRequest, chunks chan<- string) (*response_models.ChatReplyResponse, error)

	// PreviewIntent re-parses the latest message against the trip's current
	// dates. Pure read; shown to the user before they commit via Apply.
	PreviewIntent(ctx context.Context, accountID, tripID uuid.UUID, message string) (*response_models.IntentPreviewResponse, error)

	// Apply commits the parsed intent: optional date patch, then day-scope
	// or full-trip regeneration, then a re-read of trip state.
	Apply(ctx context.Context, accountID, tripID uuid.UUID, message string) (*response_models.ApplyResultResponse, error)

	History(tripID uuid.UUID) []request_models.ChatTurn
}

type ChatService struct {
	tripService TripServiceInterface
	aiClient    utils.AIClientInterface
	history     mem.ChatHistoryStore
	mu          sync.Mutex
	states      map[uuid.UUID]chatState
}

func NewChatService(
	tripService TripServiceInterface,
	aiClient utils.AIClientInterface,
	history mem.ChatHistoryStore,
) ChatServiceInterface {
	return &ChatService{
		tripService: tripService,
		aiClient:    aiClient,
		history:     history,
		states:      make(map[uuid.UUID]chatState),
	}
}

func (s *ChatService) transition(tripID uuid.UUID, from, to chatState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[tripID] != from {
		return false
	}
	s.states[tripID] = to
	return true
}

func (s *ChatService) setState(tripID uuid.UUID, state chatState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[tripID] = state
}

func (s *ChatService) SendMessage(ctx context.Context, tripID uuid.UUID, req request_models.ChatRequest, chunks chan<- string) (*response_models.ChatReplyResponse, error) {
	if !s.transition(tripID, stateIdle, stateSending) {
		if chunks != nil {
			close(chunks)
		}
		return nil, utils.ErrChatBusy
	}
	defer s.setState(tripID, stateIdle)

	// The client may carry its own trailing window; prefer it over the
	// server-side one when supplied so reconnecting clients stay coherent.
	history := req.History
	if len(history) == 0 {
		history = s.history.History(tripID)
	}
	s.history.Append(tripID, request_models.ChatTurn{Role: "user", Content: req.Message})

	s.setState(tripID, stateStreaming)
	reply, err := s.streamReply(ctx, history, req.Message, chunks)
	usedFallback := false

	if err != nil && reply == "" {
		// Nothing arrived on the stream; one non-streaming attempt before
		// surfacing the failure.
		s.setState(tripID, stateAwaitingFallback)
		log.Printf("chat stream for trip %s failed (%v), falling back to completion", tripID, err)
		reply, err = s.aiClient.ChatReply(ctx, history, req.Message)
		usedFallback = true
	}
	if err != nil && reply == "" {
		return nil, err
	}

	s.history.Append(tripID, request_models.ChatTurn{Role: "assistant", Content: reply})

	if err != nil {
		// Partial reply: surface what arrived together with the error.
		return &response_models.ChatReplyResponse{Reply: reply, UsedFallback: usedFallback}, err
	}
	return &response_models.ChatReplyResponse{Reply: reply, UsedFallback: usedFallback}, nil
}

// streamReply drains the client's chunk channel, forwarding to the caller
// when asked, and accumulates the full text.
func (s *ChatService) streamReply(ctx context.Context, history []request_models.ChatTurn, message string, out chan<- string) (string, error) {
	inner := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.aiClient.ChatReplyStream(ctx, history, message, inner)
	}()

	var buf []byte
	for chunk := range inner {
		buf = append(buf, chunk...)
		if out != nil {
			out <- chunk
		}
	}
	if out != nil {
		close(out)
	}
	err := <-errCh
	return string(buf), err
}

func (s *ChatService) PreviewIntent(ctx context.Context, accountID, tripID uuid.UUID, message string) (*response_models.IntentPreviewResponse, error) {
	trip, err := s.tripService.GetTripDetail(ctx, accountID, tripID)
	if err != nil {
		return nil, err
	}

	start, perr := utils.ParseDate(trip.StartDate)
	end, perr2 := utils.ParseDate(trip.EndDate)
	if perr != nil || perr2 != nil {
		return nil, utils.ErrDatabaseError
	}

	parsed := intent.Parse(message, start, end)
	return &response_models.IntentPreviewResponse{
		NextStartDate:  utils.FormatDate(parsed.NextStartDate),
		NextEndDate:    utils.FormatDate(parsed.NextEndDate),
		HasChange:      parsed.HasChange,
		ReferencedDays: parsed.ReferencedDays,
		Warnings:       parsed.Warnings,
	}, nil
}

func (s *ChatService) Apply(ctx context.Context, accountID, tripID uuid.UUID, message string) (*response_models.ApplyResultResponse, error) {
	if !s.transition(tripID, stateIdle, stateApplying) {
		return nil, utils.ErrChatBusy
	}
	defer s.setState(tripID, stateIdle)

	trip, err := s.tripService.GetTripDetail(ctx, accountID, tripID)
	if err != nil {
		return nil, err
	}
	start, perr := utils.ParseDate(trip.StartDate)
	end, perr2 := utils.ParseDate(trip.EndDate)
	if perr != nil || perr2 != nil {
		return nil, utils.ErrDatabaseError
	}

	parsed := intent.Parse(message, start, end)
	if len(parsed.Warnings) > 0 {
		return nil, utils.ErrIntentHasWarnings
	}

	result := &response_models.ApplyResultResponse{}

	if parsed.HasChange {
		err := s.tripService.PatchTripDates(ctx, accountID, tripID, request_models.PatchTripDatesRequest{
			StartDate: utils.FormatDate(parsed.NextStartDate),
			EndDate:   utils.FormatDate(parsed.NextEndDate),
		})
		if err != nil {
			return nil, err
		}
		result.DatePatched = true
	}

	dayCount := parsed.DayCount()
	targetDays := make([]int, 0, len(parsed.ReferencedDays))
	for _, d := range parsed.ReferencedDays {
		if d >= 1 && d <= dayCount {
			targetDays = append(targetDays, d)
		}
	}

	// Incremental regeneration only works against day rows that already
	// exist. When the date patch changed the span (or nothing was ever
	// generated), the whole trip is rebuilt so day numbering stays 1..N.
	if len(targetDays) > 0 && len(trip.Days) == dayCount && !result.DatePatched {
		var detail *response_models.TripDetailResponse
		for _, dayNumber := range targetDays {
			detail, err = s.tripService.GenerateDayItinerary(ctx, accountID, tripID, dayNumber, message)
			if err != nil {
				return nil, err
			}
		}
		result.RegeneratedDays = targetDays
		result.Trip = detail
		return result, nil
	}

	detail, err := s.tripService.GenerateTripItinerary(ctx, accountID, tripID, message)
	if err != nil {
		return nil, err
	}
	result.FullRegenerated = true
	result.Trip = detail
	return result, nil
}

func (s *ChatService) History(tripID uuid.UUID) []request_models.ChatTurn {
	return s.history.History(tripID)
}

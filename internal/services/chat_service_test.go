package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/utils"
)

type fakeAIClient struct {
	reply        string
	streamChunks []string
	streamErr    error
	replyErr     error
	streamCalls  int
	replyCalls   int
	// When set, ChatReplyStream signals started and then blocks until hold
	// is released. Used to pin a trip in its streaming state.
	hold    chan struct{}
	started chan struct{}
}

func (f *fakeAIClient) GenerateTripItinerary(ctx context.Context, tc utils.TripContext) (*response_models.GeneratedItinerary, error) {
	return nil, errors.New("not used")
}

func (f *fakeAIClient) GenerateDayItinerary(ctx context.Context, tc utils.TripContext, dayNumber int) (*response_models.GeneratedDay, error) {
	return nil, errors.New("not used")
}

func (f *fakeAIClient) ChatReply(ctx context.Context, history []request_models.ChatTurn, message string) (string, error) {
	f.replyCalls++
	return f.reply, f.replyErr
}

func (f *fakeAIClient) ChatReplyStream(ctx context.Context, history []request_models.ChatTurn, message string, chunks chan<- string) error {
	f.streamCalls++
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.hold != nil {
		<-f.hold
	}
	for _, c := range f.streamChunks {
		chunks <- c
	}
	close(chunks)
	return f.streamErr
}

func (f *fakeAIClient) Close() error { return nil }

// fakeTripService stubs just the operations the orchestrator touches.
type fakeTripService struct {
	TripServiceInterface

	detail *response_models.TripDetailResponse

	patchedDates  []request_models.PatchTripDatesRequest
	regeneratedAt []int
	fullRegens    int
	generateErr   error
}

func (f *fakeTripService) GetTripDetail(ctx context.Context, accountID, tripID uuid.UUID) (*response_models.TripDetailResponse, error) {
	if f.detail == nil {
		return nil, utils.ErrTripNotFound
	}
	return f.detail, nil
}

func (f *fakeTripService) PatchTripDates(ctx context.Context, accountID, tripID uuid.UUID, req request_models.PatchTripDatesRequest) error {
	f.patchedDates = append(f.patchedDates, req)
	return nil
}

func (f *fakeTripService) GenerateTripItinerary(ctx context.Context, accountID, tripID uuid.UUID, editRequest string) (*response_models.TripDetailResponse, error) {
	f.fullRegens++
	return f.detail, f.generateErr
}

func (f *fakeTripService) GenerateDayItinerary(ctx context.Context, accountID, tripID uuid.UUID, dayNumber int, editRequest string) (*response_models.TripDetailResponse, error) {
	f.regeneratedAt = append(f.regeneratedAt, dayNumber)
	return f.detail, f.generateErr
}

func tripDetail(startDate, endDate string, dayCount int) *response_models.TripDetailResponse {
	d := &response_models.TripDetailResponse{}
	d.ID = uuid.NewString()
	d.Destination = "Lisbon"
	d.StartDate = startDate
	d.EndDate = endDate
	for i := 1; i <= dayCount; i++ {
		d.Days = append(d.Days, response_models.ItineraryDayResponse{DayNumber: i})
	}
	return d
}

func newTestChatService(trips *fakeTripService, ai *fakeAIClient) ChatServiceInterface {
	return NewChatService(trips, ai, mem.NewChatHistory(0))
}

func TestSendMessageStreams(t *testing.T) {
	ai := &fakeAIClient{streamChunks: []string{"Hel", "lo ", "there"}}
	svc := newTestChatService(&fakeTripService{}, ai)
	tripID := uuid.New()

	chunks := make(chan string, 8)
	reply, err := svc.SendMessage(context.Background(), tripID, request_models.ChatRequest{Message: "hi"}, chunks)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply.Reply)
	assert.False(t, reply.UsedFallback)

	var got []string
	for c := range chunks {
		got = append(got, c)
	}
	assert.Equal(t, []string{"Hel", "lo ", "there"}, got)

	history := svc.History(tripID)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "Hello there", history[1].Content)
}

func TestSendMessageFallsBackWhenStreamYieldsNothing(t *testing.T) {
	ai := &fakeAIClient{
		streamErr: errors.New("stream transport broken"),
		reply:     "plain reply",
	}
	svc := newTestChatService(&fakeTripService{}, ai)

	reply, err := svc.SendMessage(context.Background(), uuid.New(), request_models.ChatRequest{Message: "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain reply", reply.Reply)
	assert.True(t, reply.UsedFallback)
	assert.Equal(t, 1, ai.streamCalls)
	assert.Equal(t, 1, ai.replyCalls)
}

func TestSendMessageKeepsPartialOnMidStreamError(t *testing.T) {
	ai := &fakeAIClient{
		streamChunks: []string{"partial "},
		streamErr:    errors.New("connection reset"),
		reply:        "should not be used",
	}
	svc := newTestChatService(&fakeTripService{}, ai)

	reply, err := svc.SendMessage(context.Background(), uuid.New(), request_models.ChatRequest{Message: "hi"}, nil)
	require.Error(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, "partial ", reply.Reply)
	// No second transport once chunks have been delivered.
	assert.Equal(t, 0, ai.replyCalls)
}

func TestSendMessageRejectsConcurrentTurn(t *testing.T) {
	ai := &fakeAIClient{
		hold:         make(chan struct{}),
		started:      make(chan struct{}),
		streamChunks: []string{"ok"},
	}
	started := ai.started
	svc := newTestChatService(&fakeTripService{}, ai)
	tripID := uuid.New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.SendMessage(context.Background(), tripID, request_models.ChatRequest{Message: "slow"}, nil)
		assert.NoError(t, err)
	}()

	// Wait until the first turn has taken the trip out of Idle.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("stream never started")
	}

	_, err := svc.SendMessage(context.Background(), tripID, request_models.ChatRequest{Message: "fast"}, nil)
	assert.ErrorIs(t, err, utils.ErrChatBusy)

	close(ai.hold)
	<-done

	// Idle again: the next turn goes through.
	ai.hold = nil
	_, err = svc.SendMessage(context.Background(), tripID, request_models.ChatRequest{Message: "again"}, nil)
	assert.NoError(t, err)
}

func TestPreviewIntent(t *testing.T) {
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-02", 2)}
	svc := newTestChatService(trips, &fakeAIClient{})

	preview, err := svc.PreviewIntent(context.Background(), uuid.New(), uuid.New(), "add 2 days")
	require.NoError(t, err)
	assert.True(t, preview.HasChange)
	assert.Equal(t, "2026-03-01", preview.NextStartDate)
	assert.Equal(t, "2026-03-04", preview.NextEndDate)
	assert.Empty(t, preview.Warnings)
}

func TestApplyDayScopeRegeneration(t *testing.T) {
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-03", 3)}
	svc := newTestChatService(trips, &fakeAIClient{})

	result, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "make day 2 more relaxed")
	require.NoError(t, err)
	assert.False(t, result.DatePatched)
	assert.False(t, result.FullRegenerated)
	assert.Equal(t, []int{2}, result.RegeneratedDays)
	assert.Equal(t, []int{2}, trips.regeneratedAt)
	assert.Zero(t, trips.fullRegens)
}

func TestApplyDatePatchTriggersFullRegeneration(t *testing.T) {
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-02", 2)}
	svc := newTestChatService(trips, &fakeAIClient{})

	result, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "add 2 days")
	require.NoError(t, err)
	assert.True(t, result.DatePatched)
	assert.True(t, result.FullRegenerated)
	require.Len(t, trips.patchedDates, 1)
	assert.Equal(t, "2026-03-04", trips.patchedDates[0].EndDate)
	assert.Equal(t, 1, trips.fullRegens)
}

func TestApplyImplicitExtension(t *testing.T) {
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-03", 3)}
	svc := newTestChatService(trips, &fakeAIClient{})

	result, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "on day 5 let's hit the beach")
	require.NoError(t, err)
	assert.True(t, result.DatePatched)
	require.Len(t, trips.patchedDates, 1)
	assert.Equal(t, "2026-03-05", trips.patchedDates[0].EndDate)
	// The span grew, so incremental day regeneration cannot apply.
	assert.True(t, result.FullRegenerated)
}

func TestApplyRefusesWarnings(t *testing.T) {
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-02", 2)}
	svc := newTestChatService(trips, &fakeAIClient{})

	_, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "remove 5 days")
	assert.ErrorIs(t, err, utils.ErrIntentHasWarnings)
	assert.Empty(t, trips.patchedDates)
	assert.Zero(t, trips.fullRegens)
}

func TestApplyNoChangeNoDays(t *testing.T) {
	// A message with no date change and no day references regenerates the
	// whole trip using the message as guidance.
	trips := &fakeTripService{detail: tripDetail("2026-03-01", "2026-03-02", 2)}
	svc := newTestChatService(trips, &fakeAIClient{})

	result, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "more food, less walking")
	require.NoError(t, err)
	assert.False(t, result.DatePatched)
	assert.True(t, result.FullRegenerated)
	assert.Equal(t, 1, trips.fullRegens)
}

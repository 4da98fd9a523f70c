package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, accountID uuid.UUID, req request_models.CreateTripRequest) (*response_models.TripResponse, error)
	ListTrips(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.TripResponse, error)
	GetTripDetail(ctx context.Context, accountID, tripID uuid.UUID) (*response_models.TripDetailResponse, error)
	PatchTrip(ctx context.Context, accountID, tripID uuid.UUID, req request_models.PatchTripRequest) error
	PatchTripDates(ctx context.Context, accountID, tripID uuid.UUID, req request_models.PatchTripDatesRequest) error
	DeleteTrip(ctx context.Context, accountID, tripID uuid.UUID) error

	GenerateTripItinerary(ctx context.Context, accountID, tripID uuid.UUID, editRequest string) (*response_models.TripDetailResponse, error)
	GenerateDayItinerary(ctx context.Context, accountID, tripID uuid.UUID, dayNumber int, editRequest string) (*response_models.TripDetailResponse, error)

	ReorderDayPois(ctx context.Context, accountID, dayID uuid.UUID, orderedIds []string) error
	AddDayPoi(ctx context.Context, accountID, dayID uuid.UUID, req request_models.AddDayPoiRequest) error
	DeleteDayPoi(ctx context.Context, accountID, dayPoiID uuid.UUID) error
}

type TripService struct {
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	poiRepo       repositories.POIRepository
	embeddingRepo repositories.PoiEmbeddingRepository
	aiClient      utils.AIClientInterface
}

func NewTripService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	aiClient utils.AIClientInterface,
) TripServiceInterface {
	return &TripService{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		poiRepo:       poiRepo,
		embeddingRepo: embeddingRepo,
		aiClient:      aiClient,
	}
}

func (s *TripService) CreateTrip(ctx context.Context, accountID uuid.UUID, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, utils.ErrInvalidDateRange
	}

	trip := &db_models.Trip{
		AccountID:   accountID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Preferences: req.Preferences,
		Description: req.Description,
		Note:        req.Note,
	}
	if _, err := s.tripRepo.CreateTrip(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := buildTripResponse(trip)
	return &resp, nil
}

func (s *TripService) ListTrips(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.TripResponse, error) {
	trips, err := s.tripRepo.ListTripsByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, buildTripResponse(&trips[i]))
	}
	return out, nil
}

func (s *TripService) GetTripDetail(ctx context.Context, accountID, tripID uuid.UUID) (*response_models.TripDetailResponse, error) {
	trip, err := s.ownedTripWithItinerary(ctx, accountID, tripID)
	if err != nil {
		return nil, err
	}
	return buildTripDetailResponse(trip), nil
}

func (s *TripService) PatchTrip(ctx context.Context, accountID, tripID uuid.UUID, req request_models.PatchTripRequest) error {
	trip, err := s.ownedTrip(ctx, accountID, tripID)
	if err != nil {
		return err
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Preferences != nil {
		trip.Preferences = *req.Preferences
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.Note != nil {
		trip.Note = *req.Note
	}

	if err := s.tripRepo.UpdateTrip(ctx, trip); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TripService) PatchTripDates(ctx context.Context, accountID, tripID uuid.UUID, req request_models.PatchTripDatesRequest) error {
	if _, err := s.ownedTrip(ctx, accountID, tripID); err != nil {
		return err
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return utils.ErrInvalidInput
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return utils.ErrInvalidInput
	}
	if end.Before(start) {
		return utils.ErrInvalidDateRange
	}

	if err := s.tripRepo.PatchTripDates(ctx, tripID, start, end); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TripService) DeleteTrip(ctx context.Context, accountID, tripID uuid.UUID) error {
	if _, err := s.ownedTrip(ctx, accountID, tripID); err != nil {
		return err
	}
	if err := s.tripRepo.DeleteTrip(ctx, tripID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// GenerateTripItinerary regenerates the whole trip: one generation call,
// one atomic replacement, then a re-read so the caller sees exactly what
// was persisted.
func (s *TripService) GenerateTripItinerary(ctx context.Context, accountID, tripID uuid.UUID, editRequest string) (*response_models.TripDetailResponse, error) {
	trip, err := s.ownedTrip(ctx, accountID, tripID)
	if err != nil {
		return nil, err
	}

	tc := s.buildTripContext(ctx, trip)
	tc.EditRequest = editRequest

	itinerary, err := s.aiClient.GenerateTripItinerary(ctx, tc)
	if err != nil {
		return nil, err
	}

	if err := s.itineraryRepo.ReplaceTripItinerary(ctx, tripID, itinerary); err != nil {
		return nil, err
	}
	s.refreshEmbeddings(ctx, tripID)

	return s.GetTripDetail(ctx, accountID, tripID)
}

// GenerateDayItinerary regenerates a single day, leaving the others alone.
func (s *TripService) GenerateDayItinerary(ctx context.Context, accountID, tripID uuid.UUID, dayNumber int, editRequest string) (*response_models.TripDetailResponse, error) {
	trip, err := s.ownedTripWithItinerary(ctx, accountID, tripID)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > trip.DaySpan() {
		return nil, utils.ErrDayNotFound
	}

	tc := s.buildTripContext(ctx, trip)
	tc.ExistingSummary = summarizeItinerary(trip)
	tc.EditRequest = editRequest

	day, err := s.aiClient.GenerateDayItinerary(ctx, tc, dayNumber)
	if err != nil {
		return nil, err
	}

	if err := s.itineraryRepo.ReplaceTripDay(ctx, tripID, dayNumber, day); err != nil {
		return nil, err
	}
	s.refreshEmbeddings(ctx, tripID)

	return s.GetTripDetail(ctx, accountID, tripID)
}

func (s *TripService) ReorderDayPois(ctx context.Context, accountID, dayID uuid.UUID, orderedIds []string) error {
	if err := s.checkDayOwnership(ctx, accountID, dayID); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(orderedIds))
	for _, raw := range orderedIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrInvalidInput
		}
		ids = append(ids, id)
	}
	return s.itineraryRepo.ReorderDayPois(ctx, dayID, ids)
}

func (s *TripService) AddDayPoi(ctx context.Context, accountID, dayID uuid.UUID, req request_models.AddDayPoiRequest) error {
	if err := s.checkDayOwnership(ctx, accountID, dayID); err != nil {
		return err
	}
	poiID, err := uuid.Parse(req.PoiID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	return s.itineraryRepo.AddDayPoi(ctx, dayID, poiID, req.StartTime, req.DurationMin, req.Note)
}

func (s *TripService) DeleteDayPoi(ctx context.Context, accountID, dayPoiID uuid.UUID) error {
	row, err := s.itineraryRepo.GetDayPoiByID(ctx, dayPoiID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if row == nil {
		return utils.ErrPOINotFound
	}
	if err := s.checkDayOwnership(ctx, accountID, row.ItineraryDayID); err != nil {
		return err
	}
	return s.itineraryRepo.DeleteDayPoi(ctx, dayPoiID)
}

func (s *TripService) ownedTrip(ctx context.Context, accountID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.AccountID != accountID {
		return nil, utils.ErrUnauthorized
	}
	return trip, nil
}

func (s *TripService) ownedTripWithItinerary(ctx context.Context, accountID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.tripRepo.GetTripWithItinerary(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.AccountID != accountID {
		return nil, utils.ErrUnauthorized
	}
	return trip, nil
}

func (s *TripService) checkDayOwnership(ctx context.Context, accountID, dayID uuid.UUID) error {
	day, err := s.itineraryRepo.GetDayByID(ctx, dayID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if day == nil {
		return utils.ErrDayNotFound
	}
	_, err = s.ownedTrip(ctx, accountID, day.TripID)
	return err
}

func (s *TripService) buildTripContext(ctx context.Context, trip *db_models.Trip) utils.TripContext {
	return utils.TripContext{
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Preferences: trip.Preferences,
		Description: trip.Description,
		Note:        trip.Note,
		KnownPlaces: s.knownPlaces(ctx, trip),
	}
}

// knownPlaces looks up already-stored POIs that resemble the trip's
// destination and preferences, so prompts can steer the model away from
// inventing near-duplicates. Best effort; a miss just means fewer hints.
func (s *TripService) knownPlaces(ctx context.Context, trip *db_models.Trip) []string {
	probe := trip.Destination + " " + strings.Join(trip.Preferences, " ")
	ids, err := s.embeddingRepo.SimilarPoiIDs(ctx, utils.TextToVector(probe), 10)
	if err != nil || len(ids) == 0 {
		return nil
	}
	pois, err := s.poiRepo.ListPoisByIDs(ctx, ids)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(pois))
	for _, p := range pois {
		names = append(names, p.Name+" ("+p.Address+")")
	}
	return names
}

// refreshEmbeddings re-fingerprints every POI now referenced by the trip.
// Failures are logged and swallowed; embeddings are advisory.
func (s *TripService) refreshEmbeddings(ctx context.Context, tripID uuid.UUID) {
	pois, err := s.poiRepo.ListPoisForTrip(ctx, tripID)
	if err != nil {
		log.Printf("embedding refresh: listing pois for trip %s: %v", tripID, err)
		return
	}
	for _, p := range pois {
		vec := utils.TextToVector(p.Name + " " + p.Description)
		if err := s.embeddingRepo.UpsertEmbedding(ctx, p.ID, vec); err != nil {
			log.Printf("embedding refresh: poi %s: %v", p.ID, err)
		}
	}
}

// summarizeItinerary renders the current itinerary as one line per day for
// day-scope prompts.
func summarizeItinerary(trip *db_models.Trip) string {
	var b strings.Builder
	for _, day := range trip.Days {
		names := make([]string, 0, len(day.Pois))
		for _, dp := range day.Pois {
			names = append(names, dp.Poi.Name)
		}
		fmt.Fprintf(&b, "Day %d: %s\n", day.DayNumber, strings.Join(names, ", "))
	}
	return b.String()
}

func buildTripResponse(trip *db_models.Trip) response_models.TripResponse {
	return response_models.TripResponse{
		ID:          trip.ID.String(),
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   utils.FormatDate(trip.StartDate),
		EndDate:     utils.FormatDate(trip.EndDate),
		Preferences: trip.Preferences,
	}
}

func buildTripDetailResponse(trip *db_models.Trip) *response_models.TripDetailResponse {
	out := &response_models.TripDetailResponse{
		TripResponse: buildTripResponse(trip),
		Description:  trip.Description,
		Note:         trip.Note,
		Days:         make([]response_models.ItineraryDayResponse, 0, len(trip.Days)),
	}
	for _, day := range trip.Days {
		dayResp := response_models.ItineraryDayResponse{
			ID:        day.ID.String(),
			DayNumber: day.DayNumber,
			Date:      utils.FormatDate(day.Date),
			Summary:   day.Summary,
			Pois:      make([]response_models.DayPoiResponse, 0, len(day.Pois)),
		}
		for _, dp := range day.Pois {
			dayResp.Pois = append(dayResp.Pois, response_models.DayPoiResponse{
				ID:          dp.ID.String(),
				PoiID:       dp.PoiID.String(),
				Name:        dp.Poi.Name,
				Type:        dp.Poi.Type,
				Address:     dp.Poi.Address,
				Description: dp.Poi.Description,
				VisitOrder:  dp.VisitOrder,
				StartTime:   dp.StartTime,
				DurationMin: dp.DurationMin,
				Note:        dp.Note,
				Latitude:    dp.Poi.Latitude,
				Longitude:   dp.Poi.Longitude,
			})
		}
		out.Days = append(out.Days, dayResp)
	}
	return out
}

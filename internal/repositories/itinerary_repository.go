package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
	"tripflow/internal/models/response_models"
	"tripflow/pkg/utils"
)

const (
	// Schedule recompute defaults: first stop at 09:00, 60 minutes per stop
	// when the duration is missing or invalid, 15 minutes between stops.
	defaultFirstStart  = "09:00"
	defaultDurationMin = 60
	interStopGapMin    = 15
)

// ItineraryRepository is the synchronization engine: it turns validated
// generation results into day/POI rows while keeping day numbering and
// visit order contiguous. Every operation is one all-or-nothing
// transaction; a failed step leaves the prior itinerary intact.
type ItineraryRepository interface {
	GetDayByID(ctx context.Context, dayID uuid.UUID) (*db_models.ItineraryDay, error)
	GetDayPoiByID(ctx context.Context, dayPoiID uuid.UUID) (*db_models.DayPoi, error)
	ReplaceTripItinerary(ctx context.Context, tripID uuid.UUID, itinerary *response_models.GeneratedItinerary) error
	ReplaceTripDay(ctx context.Context, tripID uuid.UUID, dayNumber int, day *response_models.GeneratedDay) error
	ReorderDayPois(ctx context.Context, dayID uuid.UUID, orderedIds []uuid.UUID) error
	AddDayPoi(ctx context.Context, dayID, poiID uuid.UUID, startTime string, durationMin int, note string) error
	DeleteDayPoi(ctx context.Context, dayPoiID uuid.UUID) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) GetDayByID(ctx context.Context, dayID uuid.UUID) (*db_models.ItineraryDay, error) {
	var day db_models.ItineraryDay
	err := r.db.WithContext(ctx).First(&day, "id = ?", dayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

func (r *itineraryRepository) GetDayPoiByID(ctx context.Context, dayPoiID uuid.UUID) (*db_models.DayPoi, error) {
	var row db_models.DayPoi
	err := r.db.WithContext(ctx).First(&row, "id = ?", dayPoiID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ReplaceTripItinerary wipes every day and day-POI link of the trip and
// rebuilds them from the generated itinerary, upserting POI identities by
// (name, address).
func (r *itineraryRepository) ReplaceTripItinerary(ctx context.Context, tripID uuid.UUID, itinerary *response_models.GeneratedItinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip db_models.Trip
		if err := tx.First(&trip, "id = ?", tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrTripNotFound
			}
			return err
		}

		subDayIDs := tx.Model(&db_models.ItineraryDay{}).
			Select("id").
			Where("trip_id = ?", tripID)
		if err := tx.Unscoped().
			Where("itinerary_day_id IN (?)", subDayIDs).
			Delete(&db_models.DayPoi{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("trip_id = ?", tripID).
			Delete(&db_models.ItineraryDay{}).Error; err != nil {
			return err
		}

		for _, d := range itinerary.Days {
			day := db_models.ItineraryDay{
				TripID:    tripID,
				DayNumber: d.DayNumber,
				Date:      trip.StartDate.AddDate(0, 0, d.DayNumber-1),
				Summary:   d.Summary,
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
			if err := insertDayPois(tx, day.ID, d.Pois); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceTripDay rebuilds exactly one existing day's POI rows; the other
// days are untouched.
func (r *itineraryRepository) ReplaceTripDay(ctx context.Context, tripID uuid.UUID, dayNumber int, day *response_models.GeneratedDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.ItineraryDay
		err := tx.Where("trip_id = ? AND day_number = ?", tripID, dayNumber).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrDayNotFound
			}
			return err
		}

		if err := tx.Unscoped().
			Where("itinerary_day_id = ?", existing.ID).
			Delete(&db_models.DayPoi{}).Error; err != nil {
			return err
		}
		if day.Summary != "" {
			if err := tx.Model(&existing).Update("summary", day.Summary).Error; err != nil {
				return err
			}
		}
		return insertDayPois(tx, existing.ID, day.Pois)
	})
}

// insertDayPois upserts POI identities and creates the join rows in
// generated order, 1-based.
func insertDayPois(tx *gorm.DB, dayID uuid.UUID, pois []response_models.GeneratedPoi) error {
	for i, p := range pois {
		poi, err := upsertPoi(tx, p)
		if err != nil {
			return err
		}
		link := db_models.DayPoi{
			ItineraryDayID: dayID,
			PoiID:          poi.ID,
			VisitOrder:     i + 1,
			StartTime:      p.StartTime,
			DurationMin:    p.DurationMin,
			Note:           p.Note,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// upsertPoi finds the identity row by (name, address); a hit refreshes the
// display attributes, a miss inserts. Generation results never create
// duplicate place identities.
func upsertPoi(tx *gorm.DB, p response_models.GeneratedPoi) (*db_models.POI, error) {
	var poi db_models.POI
	err := tx.Where("name = ? AND address = ?", p.Name, p.Address).First(&poi).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Latitude != 0 || p.Longitude != 0 {
			updates["latitude"] = p.Latitude
			updates["longitude"] = p.Longitude
		}
		if err := tx.Model(&poi).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &poi, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		poi = db_models.POI{
			Name:        p.Name,
			Address:     p.Address,
			Type:        p.Type,
			Description: p.Description,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
		}
		if err := tx.Create(&poi).Error; err != nil {
			return nil, err
		}
		return &poi, nil

	default:
		return nil, err
	}
}

// ReorderDayPois reassigns visit_order to match the supplied permutation of
// the day's existing DayPoi ids. The id set must match exactly; otherwise
// nothing is mutated. Because (day, visit_order) is unique at all times,
// rows first move to a disjoint staging range and only then take their
// final 1..N values.
func (r *itineraryRepository) ReorderDayPois(ctx context.Context, dayID uuid.UUID, orderedIds []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []db_models.DayPoi
		if err := tx.Where("itinerary_day_id = ?", dayID).
			Order("visit_order asc").
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) == 0 {
			return utils.ErrDayNotFound
		}

		if len(orderedIds) != len(existing) {
			return &utils.ConstraintViolationError{
				Reason: fmt.Sprintf("day has %d pois but %d ids were supplied", len(existing), len(orderedIds)),
			}
		}
		byID := make(map[uuid.UUID]*db_models.DayPoi, len(existing))
		for i := range existing {
			byID[existing[i].ID] = &existing[i]
		}
		seen := make(map[uuid.UUID]bool, len(orderedIds))
		for _, id := range orderedIds {
			if _, ok := byID[id]; !ok {
				return &utils.ConstraintViolationError{
					Reason: fmt.Sprintf("day poi %s does not belong to this day", id),
				}
			}
			if seen[id] {
				return &utils.ConstraintViolationError{
					Reason: fmt.Sprintf("day poi %s appears more than once", id),
				}
			}
			seen[id] = true
		}

		// Phase one: park every row above any final value.
		offset := len(existing)
		for i := range existing {
			if existing[i].VisitOrder > offset {
				offset = existing[i].VisitOrder
			}
		}
		for i, id := range orderedIds {
			if err := tx.Model(&db_models.DayPoi{}).
				Where("id = ?", id).
				Update("visit_order", offset+i+1).Error; err != nil {
				return err
			}
		}
		// Phase two: final 1..N values.
		for i, id := range orderedIds {
			if err := tx.Model(&db_models.DayPoi{}).
				Where("id = ?", id).
				Update("visit_order", i+1).Error; err != nil {
				return err
			}
		}

		return recomputeSchedule(tx, dayID, firstStartTime(existing))
	})
}

// firstStartTime returns the day's original first start time (rows are in
// prior visit order) or the default.
func firstStartTime(rows []db_models.DayPoi) string {
	if len(rows) > 0 {
		if _, ok := utils.ParseHHMM(rows[0].StartTime); ok {
			return rows[0].StartTime
		}
	}
	return defaultFirstStart
}

// recomputeSchedule rewrites start times by chaining from firstStart: each
// stop begins where the running clock stands, and the clock advances by the
// stop's duration plus a fixed gap.
func recomputeSchedule(tx *gorm.DB, dayID uuid.UUID, firstStart string) error {
	var rows []db_models.DayPoi
	if err := tx.Where("itinerary_day_id = ?", dayID).
		Order("visit_order asc").
		Find(&rows).Error; err != nil {
		return err
	}

	clock, ok := utils.ParseHHMM(firstStart)
	if !ok {
		clock, _ = utils.ParseHHMM(defaultFirstStart)
	}
	for i := range rows {
		if err := tx.Model(&rows[i]).
			Update("start_time", utils.FormatHHMM(clock)).Error; err != nil {
			return err
		}
		duration := rows[i].DurationMin
		if duration <= 0 {
			duration = defaultDurationMin
		}
		clock += duration + interStopGapMin
	}
	return nil
}

// AddDayPoi appends a POI at the end of the day's visit order.
func (r *itineraryRepository) AddDayPoi(ctx context.Context, dayID, poiID uuid.UUID, startTime string, durationMin int, note string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var day db_models.ItineraryDay
		if err := tx.First(&day, "id = ?", dayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrDayNotFound
			}
			return err
		}
		var poi db_models.POI
		if err := tx.First(&poi, "id = ?", poiID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrPOINotFound
			}
			return err
		}

		var prior []db_models.DayPoi
		if err := tx.Where("itinerary_day_id = ?", dayID).
			Order("visit_order desc").
			Limit(1).
			Find(&prior).Error; err != nil {
			return err
		}
		maxOrder := 0
		if len(prior) > 0 {
			maxOrder = prior[0].VisitOrder
		}

		if durationMin <= 0 {
			durationMin = defaultDurationMin
		}

		// Stored times are canonical HH:MM; anything else would sit wrong
		// until the next reorder recomputes the day. A valid input is
		// normalized, a bad one is scheduled after the last stop.
		if clock, ok := utils.ParseHHMM(startTime); ok {
			startTime = utils.FormatHHMM(clock)
		} else if len(prior) > 0 {
			clock, ok := utils.ParseHHMM(prior[0].StartTime)
			if !ok {
				clock, _ = utils.ParseHHMM(defaultFirstStart)
			}
			prevDuration := prior[0].DurationMin
			if prevDuration <= 0 {
				prevDuration = defaultDurationMin
			}
			startTime = utils.FormatHHMM(clock + prevDuration + interStopGapMin)
		} else {
			startTime = defaultFirstStart
		}

		link := db_models.DayPoi{
			ItineraryDayID: dayID,
			PoiID:          poiID,
			VisitOrder:     maxOrder + 1,
			StartTime:      startTime,
			DurationMin:    durationMin,
			Note:           note,
		}
		return tx.Create(&link).Error
	})
}

// DeleteDayPoi removes one stop and shifts every later visit order down by
// one so the sequence stays contiguous.
func (r *itineraryRepository) DeleteDayPoi(ctx context.Context, dayPoiID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row db_models.DayPoi
		if err := tx.First(&row, "id = ?", dayPoiID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrPOINotFound
			}
			return err
		}

		if err := tx.Unscoped().Delete(&row).Error; err != nil {
			return err
		}

		var later []db_models.DayPoi
		if err := tx.Where("itinerary_day_id = ? AND visit_order > ?", row.ItineraryDayID, row.VisitOrder).
			Order("visit_order asc").
			Find(&later).Error; err != nil {
			return err
		}
		for i := range later {
			if err := tx.Model(&later[i]).
				Update("visit_order", later[i].VisitOrder-1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

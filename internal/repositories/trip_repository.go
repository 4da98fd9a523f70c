package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, trip *db_models.Trip) (uuid.UUID, error)
	GetTripByID(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error)
	GetTripWithItinerary(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error)
	ListTripsByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.Trip, error)
	UpdateTrip(ctx context.Context, trip *db_models.Trip) error
	PatchTripDates(ctx context.Context, tripID uuid.UUID, start, end time.Time) error
	DeleteTrip(ctx context.Context, tripID uuid.UUID) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateTrip(ctx context.Context, trip *db_models.Trip) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return uuid.Nil, err
	}
	return trip.ID, nil
}

func (r *tripRepository) GetTripByID(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) GetTripWithItinerary(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_days.day_number asc")
		}).
		Preload("Days.Pois", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_pois.visit_order asc")
		}).
		Preload("Days.Pois.Poi").
		First(&trip, "id = ?", tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListTripsByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) UpdateTrip(ctx context.Context, trip *db_models.Trip) error {
	result := r.db.WithContext(ctx).Save(trip)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tripRepository) PatchTripDates(ctx context.Context, tripID uuid.UUID, start, end time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("id = ?", tripID).
		Updates(map[string]interface{}{
			"start_date": start,
			"end_date":   end,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tripRepository) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		return tx.Delete(&db_models.Trip{}, "id = ?", tripID).Error
	})
}

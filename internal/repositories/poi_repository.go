package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
)

type POIRepository interface {
	GetPoiByID(ctx context.Context, poiID uuid.UUID) (*db_models.POI, error)
	ListPoisByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.POI, error)
	ListPoisForTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.POI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) GetPoiByID(ctx context.Context, poiID uuid.UUID) (*db_models.POI, error) {
	var poi db_models.POI
	err := r.db.WithContext(ctx).First(&poi, "id = ?", poiID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

func (r *poiRepository) ListPoisByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.POI, error) {
	var pois []db_models.POI
	if len(ids) == 0 {
		return pois, nil
	}
	err := r.db.WithContext(ctx).Where("id IN (?)", ids).Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) ListPoisForTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.POI, error) {
	var pois []db_models.POI
	sub := r.db.Model(&db_models.DayPoi{}).
		Select("day_pois.poi_id").
		Joins("JOIN itinerary_days ON day_pois.itinerary_day_id = itinerary_days.id").
		Where("itinerary_days.trip_id = ?", tripID)

	err := r.db.WithContext(ctx).Where("id IN (?)", sub).Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

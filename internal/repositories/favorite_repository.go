package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
)

type FavoriteRepository interface {
	Save(ctx context.Context, accountID, poiID uuid.UUID) error
	Remove(ctx context.Context, accountID, poiID uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Save(ctx context.Context, accountID, poiID uuid.UUID) error {
	var existing db_models.Favorite
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND poi_id = ?", accountID, poiID).
		First(&existing).Error
	if err == nil {
		return nil // already saved
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&db_models.Favorite{
		AccountID: accountID,
		PoiID:     poiID,
	}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, accountID, poiID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND poi_id = ?", accountID, poiID).
		Delete(&db_models.Favorite{}).Error
}

func (r *favoriteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.Favorite, error) {
	var favorites []db_models.Favorite
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Preload("Poi").
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

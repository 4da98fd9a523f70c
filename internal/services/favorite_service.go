package services

import (
	"context"

	"github.com/google/uuid"

	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type FavoriteServiceInterface interface {
	AddFavorite(ctx context.Context, accountID, poiID uuid.UUID) error
	RemoveFavorite(ctx context.Context, accountID, poiID uuid.UUID) error
	ListFavorites(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.PoiResponse, error)
}

type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	poiRepo      repositories.POIRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, poiRepo repositories.POIRepository) FavoriteServiceInterface {
	return &FavoriteService{favoriteRepo: favoriteRepo, poiRepo: poiRepo}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, accountID, poiID uuid.UUID) error {
	poi, err := s.poiRepo.GetPoiByID(ctx, poiID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if poi == nil {
		return utils.ErrPOINotFound
	}
	return s.favoriteRepo.Save(ctx, accountID, poiID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, accountID, poiID uuid.UUID) error {
	return s.favoriteRepo.Remove(ctx, accountID, poiID)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.PoiResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	favorites, err := s.favoriteRepo.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.PoiResponse, 0, len(favorites))
	for _, fav := range favorites {
		responses = append(responses, response_models.PoiResponse{
			ID:          fav.Poi.ID.String(),
			Name:        fav.Poi.Name,
			Type:        fav.Poi.Type,
			Address:     fav.Poi.Address,
			Description: fav.Poi.Description,
			Latitude:    fav.Poi.Latitude,
			Longitude:   fav.Poi.Longitude,
		})
	}
	return responses, nil
}

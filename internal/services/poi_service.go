package services

import (
	"context"

	"github.com/google/uuid"

	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type POIServiceInterface interface {
	GetPoiDetail(ctx context.Context, poiID uuid.UUID) (*response_models.PoiResponse, error)
}

type POIService struct {
	poiRepo repositories.POIRepository
}

func NewPOIService(poiRepo repositories.POIRepository) POIServiceInterface {
	return &POIService{poiRepo: poiRepo}
}

func (s *POIService) GetPoiDetail(ctx context.Context, poiID uuid.UUID) (*response_models.PoiResponse, error) {
	poi, err := s.poiRepo.GetPoiByID(ctx, poiID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}
	return &response_models.PoiResponse{
		ID:          poi.ID.String(),
		Name:        poi.Name,
		Type:        poi.Type,
		Address:     poi.Address,
		Description: poi.Description,
		Latitude:    poi.Latitude,
		Longitude:   poi.Longitude,
	}, nil
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type FavoriteController struct {
	favoriteService services.FavoriteServiceInterface
}

func NewFavoriteController(favoriteService services.FavoriteServiceInterface) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

func (f *FavoriteController) AddFavorite(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	poiID, ok := pathUUID(c, "poiId")
	if !ok {
		return
	}

	if err := f.favoriteService.AddFavorite(c.Request.Context(), accountID, poiID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Favorite added successfully")
}

func (f *FavoriteController) RemoveFavorite(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	poiID, ok := pathUUID(c, "poiId")
	if !ok {
		return
	}

	if err := f.favoriteService.RemoveFavorite(c.Request.Context(), accountID, poiID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Favorite removed successfully")
}

func (f *FavoriteController) ListFavorites(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	page, pageSize, ok := paging(c)
	if !ok {
		return
	}

	pois, err := f.favoriteService.ListFavorites(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "Favorites fetched successfully")
}

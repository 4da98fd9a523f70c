package favoritefx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/api/controllers"
	"tripflow/internal/repositories"
	"tripflow/internal/services"
)

var Module = fx.Provide(
	provideFavoriteRepo, provideFavoriteService, provideFavoriteController)

func provideFavoriteRepo(db *gorm.DB) repositories.FavoriteRepository {
	return repositories.NewFavoriteRepository(db)
}

func provideFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	poiRepo repositories.POIRepository,
) services.FavoriteServiceInterface {
	return services.NewFavoriteService(favoriteRepo, poiRepo)
}

func provideFavoriteController(favoriteService services.FavoriteServiceInterface) *controllers.FavoriteController {
	return controllers.NewFavoriteController(favoriteService)
}

package poisfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/api/controllers"
	"tripflow/internal/repositories"
	"tripflow/internal/services"
)

var Module = fx.Provide(
	providePoisRepo, provideEmbeddingRepo, providePoisService, providePoisController)

func providePoisRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.PoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func providePoisService(poiRepo repositories.POIRepository) services.POIServiceInterface {
	return services.NewPOIService(poiRepo)
}

func providePoisController(poiService services.POIServiceInterface) *controllers.POIsController {
	return controllers.NewPOIsController(poiService)
}

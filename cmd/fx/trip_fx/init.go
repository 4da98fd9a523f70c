package tripfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/api/controllers"
	"tripflow/internal/repositories"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

var Module = fx.Provide(
	provideTripRepo, provideItineraryRepo, provideTripService, provideTripController)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	aiClient utils.AIClientInterface,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, itineraryRepo, poiRepo, embeddingRepo, aiClient)
}

func provideTripController(tripService services.TripServiceInterface) *controllers.TripController {
	return controllers.NewTripController(tripService)
}

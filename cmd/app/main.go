package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	accountfx "tripflow/cmd/fx/account_fx"
	aifx "tripflow/cmd/fx/ai_fx"
	chatfx "tripflow/cmd/fx/chat_fx"
	dbfx "tripflow/cmd/fx/db_fx"
	favoritefx "tripflow/cmd/fx/favorite_fx"
	poisfx "tripflow/cmd/fx/pois_fx"
	tripfx "tripflow/cmd/fx/trip_fx"
	"tripflow/internal/api/controllers"
	"tripflow/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		dbfx.Module,
		aifx.Module,
		poisfx.Module,
		tripfx.Module,
		chatfx.Module,
		accountfx.Module,
		favoritefx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	chatController *controllers.ChatController,
	poisController *controllers.POIsController,
	favoriteController *controllers.FavoriteController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, tripController, chatController, poisController, favoriteController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	chatController *controllers.ChatController,
	poisController *controllers.POIsController,
	favoriteController *controllers.FavoriteController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)

	authed := r.Group("/", middleware.JWTAuthMiddleware())

	tripsGroup := authed.Group("/trips")
	tripsGroup.POST("", tripController.CreateTrip)
	tripsGroup.GET("", tripController.ListTrips)
	tripsGroup.GET("/:id", tripController.GetTrip)
	tripsGroup.PATCH("/:id", tripController.PatchTrip)
	tripsGroup.PATCH("/:id/dates", tripController.PatchTripDates)
	tripsGroup.DELETE("/:id", tripController.DeleteTrip)
	tripsGroup.POST("/:id/generate", tripController.GenerateItinerary)
	tripsGroup.POST("/:id/days/:dayNumber/generate", tripController.GenerateDay)

	tripsGroup.POST("/:id/chat", chatController.SendMessage)
	tripsGroup.POST("/:id/chat/stream", chatController.StreamMessage)
	tripsGroup.POST("/:id/chat/preview", chatController.PreviewIntent)
	tripsGroup.POST("/:id/chat/apply", chatController.Apply)
	tripsGroup.GET("/:id/chat/history", chatController.History)

	daysGroup := authed.Group("/days")
	daysGroup.PUT("/:dayId/pois/order", tripController.ReorderDayPois)
	daysGroup.POST("/:dayId/pois", tripController.AddDayPoi)

	authed.DELETE("/day-pois/:dayPoiId", tripController.DeleteDayPoi)

	poisGroup := authed.Group("/pois")
	poisGroup.GET("/:id", poisController.GetPoiById)

	favoritesGroup := authed.Group("/favorites")
	favoritesGroup.GET("", favoriteController.ListFavorites)
	favoritesGroup.POST("/:poiId", favoriteController.AddFavorite)
	favoritesGroup.DELETE("/:poiId", favoriteController.RemoveFavorite)
}

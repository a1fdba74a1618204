package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"lakbay/cmd/fx/cache_fx"
	"lakbay/cmd/fx/controllers_fx"
	"lakbay/cmd/fx/db_fx"
	"lakbay/cmd/fx/dedupe_fx"
	"lakbay/cmd/fx/generator_fx"
	"lakbay/cmd/fx/hotel_fx"
	"lakbay/cmd/fx/pipeline_fx"
	"lakbay/cmd/fx/places_fx"
	"lakbay/cmd/fx/region_fx"
	"lakbay/cmd/fx/trip_fx"
	"lakbay/cmd/fx/validators_fx"
	"lakbay/internal/api/controllers"
	"lakbay/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		dedupe_fx.Module,
		region_fx.Module,
		pipeline_fx.Module,
		validators_fx.Module,
		hotel_fx.Module,
		generator_fx.Module,
		places_fx.Module,
		trip_fx.Module,
		controllers_fx.Module,

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
	tripsController *controllers.TripsController,
	regionsController *controllers.RegionsController,
	placesController *controllers.PlacesController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, tripsController, regionsController, placesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tripsController *controllers.TripsController,
	regionsController *controllers.RegionsController,
	placesController *controllers.PlacesController) {

	trips := r.Group("/trips")
	trips.POST("/generate", tripsController.GenerateTrip)
	trips.POST("/validate", tripsController.ValidateTrip)
	trips.GET("/:tripId", tripsController.GetTripById)

	authed := r.Group("/trips", middleware.JWTAuthMiddleware())
	authed.POST("/save", tripsController.SaveTrip)
	authed.GET("", tripsController.ListTrips)
	authed.DELETE("/:tripId", tripsController.DeleteTrip)

	regions := r.Group("/regions")
	regions.GET("", regionsController.ListDestinations)
	regions.GET("/:destination", regionsController.GetRegionProfile)

	places := r.Group("/places")
	places.GET("/geocode", placesController.GeocodePlace)
	places.GET("/weather", placesController.GetWeather)
}

package controllers_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/api/controllers"
	"lakbay/internal/repositories"
	"lakbay/internal/services"
)

var Module = fx.Provide(provideTripsController, provideRegionsController, providePlacesController)

func provideTripsController(tripService services.TripServiceInterface) *controllers.TripsController {
	return controllers.NewTripsController(tripService)
}

func provideRegionsController(regions repositories.RegionRepository) *controllers.RegionsController {
	return controllers.NewRegionsController(regions)
}

func providePlacesController(places services.PlacesServiceInterface) *controllers.PlacesController {
	return controllers.NewPlacesController(places)
}

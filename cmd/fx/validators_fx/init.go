package validators_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/repositories"
	"lakbay/internal/services"
)

var Module = fx.Provide(provideGeoValidator, provideItineraryValidator)

func provideGeoValidator(regions repositories.RegionRepository) services.GeoValidatorServiceInterface {
	return services.NewGeoValidatorService(regions)
}

func provideItineraryValidator() services.ItineraryValidatorServiceInterface {
	return services.NewItineraryValidatorService()
}

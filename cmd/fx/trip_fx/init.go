package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"lakbay/internal/repositories"
	"lakbay/internal/services"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
	"lakbay/pkg/utils"
)

var Module = fx.Provide(provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	generator utils.GeneratorClientInterface,
	normalizer services.NormalizerServiceInterface,
	geo services.GeoValidatorServiceInterface,
	hotels services.HotelServiceInterface,
	policy services.ItineraryValidatorServiceInterface,
	tripRepo repositories.TripRepository,
	dedup *dedupe.Deduplicator,
	store cache.Store,
) services.TripServiceInterface {
	return services.NewTripService(generator, normalizer, geo, hotels, policy, tripRepo, dedup, store)
}

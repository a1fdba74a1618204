package places_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/services"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
)

var Module = fx.Provide(providePlacesService)

func providePlacesService(dedup *dedupe.Deduplicator, store cache.Store) services.PlacesServiceInterface {
	return services.NewPlacesService(dedup, store)
}

package region_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/repositories"
)

var Module = fx.Provide(provideRegionRepo)

func provideRegionRepo() repositories.RegionRepository {
	return repositories.NewRegionRepository()
}

package hotel_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/services"
)

var Module = fx.Provide(provideHotelService)

func provideHotelService() services.HotelServiceInterface {
	return services.NewHotelService()
}

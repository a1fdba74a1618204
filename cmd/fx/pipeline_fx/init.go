package pipeline_fx

import (
	"go.uber.org/fx"

	"lakbay/internal/services"
)

var Module = fx.Provide(provideParser, provideNormalizer)

func provideParser() services.ParserServiceInterface {
	return services.NewParserService()
}

func provideNormalizer(parser services.ParserServiceInterface) services.NormalizerServiceInterface {
	return services.NewNormalizerService(parser)
}

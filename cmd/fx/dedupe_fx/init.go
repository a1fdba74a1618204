package dedupe_fx

import (
	"go.uber.org/fx"

	"lakbay/pkg/dedupe"
)

var Module = fx.Provide(provideDeduplicator)

func provideDeduplicator() *dedupe.Deduplicator {
	return dedupe.New(dedupe.DefaultMaxEntries)
}

//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/rac-sri/runic/internal/config"
)

// InitApp builds a fully wired App from the runtime configuration.
func InitApp(cfg *config.RuntimeConfig) (*App, error) {
	wire.Build(
		provideLogger,
		provideProject,
		provideSettings,
		provideChains,
		provideScanner,
		provideResolver,
		provideSelector,
		provideRunner,
		provideSecrets,
		NewApp,
	)
	return nil, nil
}

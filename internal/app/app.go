package app

import (
	"log/slog"

	"github.com/rac-sri/runic/internal/broadcast"
	"github.com/rac-sri/runic/internal/config"
	"github.com/rac-sri/runic/internal/forge"
	"github.com/rac-sri/runic/internal/interactive"
	"github.com/rac-sri/runic/internal/network"
)

// App is the application container shared by all commands.
type App struct {
	Config   *config.RuntimeConfig
	Log      *slog.Logger
	Scanner  *broadcast.Scanner
	Resolver *network.Resolver
	Selector *interactive.Selector
	Runner   *forge.Runner
	Secrets  config.SecretStore
}

// NewApp assembles the container from its wired dependencies.
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	scanner *broadcast.Scanner,
	resolver *network.Resolver,
	selector *interactive.Selector,
	runner *forge.Runner,
	secrets config.SecretStore,
) (*App, error) {
	return &App{
		Config:   cfg,
		Log:      log,
		Scanner:  scanner,
		Resolver: resolver,
		Selector: selector,
		Runner:   runner,
		Secrets:  secrets,
	}, nil
}

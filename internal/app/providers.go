package app

import (
	"log/slog"
	"os"

	"github.com/rac-sri/runic/internal/broadcast"
	"github.com/rac-sri/runic/internal/config"
	"github.com/rac-sri/runic/internal/forge"
	"github.com/rac-sri/runic/internal/interactive"
	"github.com/rac-sri/runic/internal/logging"
	"github.com/rac-sri/runic/internal/network"
	"github.com/rac-sri/runic/internal/project"
)

func provideLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}

func provideProject(cfg *config.RuntimeConfig) *project.Project {
	return cfg.Project
}

func provideSettings(cfg *config.RuntimeConfig) *config.Settings {
	return cfg.Settings
}

func provideChains(cfg *config.RuntimeConfig) config.ChainNames {
	return cfg.Chains
}

func provideScanner(proj *project.Project, chains config.ChainNames, log *slog.Logger) *broadcast.Scanner {
	return broadcast.NewScanner(proj, chains, log)
}

func provideResolver(settings *config.Settings, proj *project.Project, chains config.ChainNames, log *slog.Logger) *network.Resolver {
	return network.NewResolver(settings, proj, chains, log)
}

func provideSelector(cfg *config.RuntimeConfig) *interactive.Selector {
	return interactive.NewSelector(cfg.NonInteractive)
}

func provideRunner(proj *project.Project, log *slog.Logger) *forge.Runner {
	return forge.NewRunner(proj, os.Stdout, log)
}

// provideSecrets opens the OS keychain, degrading to an empty in-memory
// store when no backend is available so read paths still work.
func provideSecrets(log *slog.Logger) config.SecretStore {
	kc, err := config.OpenKeychain()
	if err != nil {
		log.Warn("keychain unavailable, secrets disabled", "err", err)
		return config.MemorySecrets{}
	}
	return kc
}

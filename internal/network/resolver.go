package network

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"

	"github.com/rac-sri/runic/internal/config"
	"github.com/rac-sri/runic/internal/project"
)

// NetworkInfo is a fully resolved target network.
type NetworkInfo struct {
	Name    string
	RPCURL  string
	ChainID uint64
}

// envRefPattern matches ${VAR} placeholders inside rpc_endpoints entries,
// the interpolation syntax foundry.toml uses.
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Resolver turns a network name into an RPC endpoint. Application settings
// take precedence; the project's foundry.toml rpc_endpoints table is the
// fallback for networks configured only at the project level.
type Resolver struct {
	settings *config.Settings
	proj     *project.Project
	chains   config.ChainNames
	log      *slog.Logger
}

func NewResolver(settings *config.Settings, proj *project.Project, chains config.ChainNames, log *slog.Logger) *Resolver {
	return &Resolver{settings: settings, proj: proj, chains: chains, log: log}
}

// Resolve maps a network name to its endpoint. An empty name falls through
// to the settings default. Endpoint values may reference environment
// variables with ${VAR}; project .env files are loaded first so local
// secrets resolve.
func (r *Resolver) Resolve(name string) (*NetworkInfo, error) {
	r.loadDotenv()

	if resolved, cfg, ok := r.settings.Network(name); ok {
		return &NetworkInfo{
			Name:    resolved,
			RPCURL:  expandEnvRefs(cfg.RPCURL),
			ChainID: cfg.ChainID,
		}, nil
	}

	if r.proj != nil && r.proj.Foundry != nil {
		if url, ok := r.proj.Foundry.RPCEndpoint(name); ok {
			return &NetworkInfo{
				Name:    name,
				RPCURL:  expandEnvRefs(url),
				ChainID: r.chainIDFor(name),
			}, nil
		}
	}

	if name == "" {
		return nil, fmt.Errorf("no network selected and no default configured")
	}
	return nil, fmt.Errorf("unknown network %q", name)
}

// ResolveByChainID picks the endpoint for a deployment's chain by matching
// the chain's conventional name against the configured networks.
func (r *Resolver) ResolveByChainID(chainID uint64) (*NetworkInfo, error) {
	for name, cfg := range r.settings.Networks {
		if cfg.ChainID == chainID {
			r.loadDotenv()
			return &NetworkInfo{
				Name:    name,
				RPCURL:  expandEnvRefs(cfg.RPCURL),
				ChainID: chainID,
			}, nil
		}
	}
	return r.Resolve(r.chains.Name(chainID))
}

// chainIDFor reverse-maps a network name through the chain name table.
// Unmatched names yield zero, which callers treat as unknown.
func (r *Resolver) chainIDFor(name string) uint64 {
	for id, n := range r.chains {
		if n == name {
			return id
		}
	}
	return 0
}

// loadDotenv best-effort loads the project's .env files without overriding
// variables already present in the environment.
func (r *Resolver) loadDotenv() {
	if r.proj == nil {
		return
	}
	for _, file := range []string{".env", ".env.local"} {
		path := filepath.Join(r.proj.Root, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			r.log.Warn("skipping unreadable env file", "path", path, "err", err)
		}
	}
}

// expandEnvRefs substitutes ${VAR} references from the environment.
// Unset variables expand to empty, matching shell semantics.
func expandEnvRefs(value string) string {
	return envRefPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := envRefPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed chains.yaml
var defaultChainsYAML []byte

// ChainNames maps chain ids to display names. It is built once and handed to
// the components that need it; there is no process-wide lookup cache.
type ChainNames map[uint64]string

// Name returns the network name for a chain id, falling back to a synthetic
// "chain-<id>" name for chains the table does not know.
func (c ChainNames) Name(chainID uint64) string {
	if name, ok := c[chainID]; ok {
		return name
	}
	return fmt.Sprintf("chain-%d", chainID)
}

// DefaultChainNames loads the packaged chain table.
func DefaultChainNames() ChainNames {
	names := ChainNames{}
	// The embedded table is validated by tests; a decode failure would leave
	// every chain on the synthetic fallback name, which is still usable.
	_ = yaml.Unmarshal(defaultChainsYAML, &names)
	return names
}

// LoadChainNames reads a user-provided chain table, overlaying it on the
// packaged defaults.
func LoadChainNames(path string) (ChainNames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chain table: %w", err)
	}
	overlay := ChainNames{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing chain table %s: %w", path, err)
	}
	names := DefaultChainNames()
	for id, name := range overlay {
		names[id] = name
	}
	return names, nil
}

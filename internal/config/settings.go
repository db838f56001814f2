package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configDirName  = "runic"
	configFileName = "config.toml"

	// keychainPrefix marks config values that are references into the OS
	// keychain rather than inline secrets.
	keychainPrefix = "keychain:"
)

// SecretStore resolves named secrets. The OS keychain implements it; tests
// use an in-memory map.
type SecretStore interface {
	Get(name string) (string, error)
}

// Settings is the persisted application configuration.
type Settings struct {
	Networks map[string]NetworkConfig `toml:"networks"`
	Wallets  map[string]WalletConfig  `toml:"wallets"`
	APIKeys  map[string]string        `toml:"api_keys"`
	Defaults Defaults                 `toml:"defaults"`

	path string
}

// NetworkConfig describes one configured network.
type NetworkConfig struct {
	RPCURL         string `toml:"rpc_url"`
	ChainID        uint64 `toml:"chain_id,omitempty"`
	ExplorerURL    string `toml:"explorer_url,omitempty"`
	ExplorerAPIKey string `toml:"explorer_api_key,omitempty"`
}

// WalletConfig describes where a wallet's signing key lives. Exactly one of
// Keychain or EnvVar is expected to be set.
type WalletConfig struct {
	Keychain string `toml:"keychain,omitempty"`
	EnvVar   string `toml:"env_var,omitempty"`
	Label    string `toml:"label,omitempty"`
}

// Defaults names the network and wallet used when flags omit them.
type Defaults struct {
	Network string `toml:"network,omitempty"`
	Wallet  string `toml:"wallet,omitempty"`
}

// DefaultSettingsPath returns the per-user settings file location.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// LoadSettings reads settings from the default location, returning empty
// settings when no file exists yet.
func LoadSettings() (*Settings, error) {
	path, err := DefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Settings{
			Networks: map[string]NetworkConfig{},
			Wallets:  map[string]WalletConfig{},
			APIKeys:  map[string]string{},
			path:     path,
		}, nil
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom reads settings from an explicit path.
func LoadSettingsFrom(path string) (*Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if s.Networks == nil {
		s.Networks = map[string]NetworkConfig{}
	}
	if s.Wallets == nil {
		s.Wallets = map[string]WalletConfig{}
	}
	if s.APIKeys == nil {
		s.APIKeys = map[string]string{}
	}
	s.path = path
	return &s, nil
}

// Save writes the settings back to the file they were loaded from.
func (s *Settings) Save() error {
	if s.path == "" {
		path, err := DefaultSettingsPath()
		if err != nil {
			return err
		}
		s.path = path
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}

// Path returns the file the settings are bound to.
func (s *Settings) Path() string { return s.path }

// Network looks up a network by name, falling back to the configured default
// and then to any single configured network.
func (s *Settings) Network(name string) (string, *NetworkConfig, bool) {
	if name == "" {
		name = s.Defaults.Network
	}
	if name != "" {
		if cfg, ok := s.Networks[name]; ok {
			return name, &cfg, true
		}
		return "", nil, false
	}
	for n, cfg := range s.Networks {
		return n, &cfg, true
	}
	return "", nil, false
}

// ResolveAPIKey resolves a named API key, following keychain references.
func (s *Settings) ResolveAPIKey(name string, secrets SecretStore) (string, error) {
	value, ok := s.APIKeys[name]
	if !ok {
		return "", nil
	}
	if ref, isRef := strings.CutPrefix(value, keychainPrefix); isRef {
		return secrets.Get(ref)
	}
	return value, nil
}

// ResolveWalletKey resolves a wallet's signing key from the keychain or the
// configured environment variable. Returns empty when the wallet is unknown
// or carries no key source.
func (s *Settings) ResolveWalletKey(name string, secrets SecretStore) (string, error) {
	if name == "" {
		name = s.Defaults.Wallet
	}
	wallet, ok := s.Wallets[name]
	if !ok {
		return "", nil
	}
	if wallet.Keychain != "" {
		return secrets.Get(wallet.Keychain)
	}
	if wallet.EnvVar != "" {
		return os.Getenv(wallet.EnvVar), nil
	}
	return "", nil
}

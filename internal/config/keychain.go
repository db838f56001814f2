package config

import (
	"fmt"
	"runtime"

	"github.com/99designs/keyring"
)

const keychainService = "runic"

// Keychain is an OS-keychain-backed SecretStore.
type Keychain struct {
	ring keyring.Keyring
}

// OpenKeychain opens the OS keychain for runic's service name. On Linux
// without a desktop secret service it falls back to encrypted file storage.
func OpenKeychain() (*Keychain, error) {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
	}
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keychain: %w", err)
	}
	return &Keychain{ring: ring}, nil
}

// Get fetches a secret by name.
func (k *Keychain) Get(name string) (string, error) {
	item, err := k.ring.Get(name)
	if err != nil {
		return "", fmt.Errorf("keychain get %s: %w", name, err)
	}
	return string(item.Data), nil
}

// Set stores a secret under name.
func (k *Keychain) Set(name, value string) error {
	err := k.ring.Set(keyring.Item{Key: name, Data: []byte(value)})
	if err != nil {
		return fmt.Errorf("keychain set %s: %w", name, err)
	}
	return nil
}

// Delete removes a stored secret.
func (k *Keychain) Delete(name string) error {
	return k.ring.Remove(name)
}

// MemorySecrets is an in-memory SecretStore for tests.
type MemorySecrets map[string]string

func (m MemorySecrets) Get(name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", fmt.Errorf("secret not found: %s", name)
	}
	return v, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultChainNames(t *testing.T) {
	chains := DefaultChainNames()

	assert.Equal(t, "mainnet", chains.Name(1))
	assert.Equal(t, "localhost", chains.Name(31337))
	assert.Equal(t, "sepolia", chains.Name(11155111))
}

func TestChainNameFallback(t *testing.T) {
	chains := DefaultChainNames()
	assert.Equal(t, "chain-999999", chains.Name(999999))
}

func TestLoadChainNamesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.yaml")
	require.NoError(t, os.WriteFile(path, []byte("31337: anvil\n4242: mychain\n"), 0o644))

	chains, err := LoadChainNames(path)
	require.NoError(t, err)
	// Overlay wins over the packaged entry.
	assert.Equal(t, "anvil", chains.Name(31337))
	assert.Equal(t, "mychain", chains.Name(4242))
	// Untouched defaults survive.
	assert.Equal(t, "mainnet", chains.Name(1))
}

func TestLoadChainNamesMissingFile(t *testing.T) {
	_, err := LoadChainNames(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetectFoundry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foundry.toml"), `
[profile.default]
src = "contracts"
out = "artifacts"

[profile.default.rpc_endpoints]
localhost = "http://localhost:8545"
`)

	proj, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, Foundry, proj.Type)
	assert.Equal(t, filepath.Join(root, "contracts"), proj.SrcDir)
	assert.Equal(t, filepath.Join(root, "artifacts"), proj.OutDir)
	// Unset entries fall back to Foundry conventions.
	assert.Equal(t, filepath.Join(root, "broadcast"), proj.BroadcastDir)
	assert.Equal(t, filepath.Join(root, "script"), proj.ScriptDir)

	url, ok := proj.Foundry.RPCEndpoint("localhost")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8545", url)
}

func TestDetectFoundryDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foundry.toml"), "")

	proj, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src"), proj.SrcDir)
	assert.Equal(t, filepath.Join(root, "out"), proj.OutDir)
}

func TestDetectHardhat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hardhat.config.ts"), "export default {};\n")

	proj, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, Hardhat, proj.Type)
	assert.Equal(t, filepath.Join(root, "contracts"), proj.SrcDir)
	assert.Equal(t, filepath.Join(root, "artifacts"), proj.OutDir)
}

func TestDetectFoundryWinsOverHardhat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foundry.toml"), "")
	writeFile(t, filepath.Join(root, "hardhat.config.js"), "module.exports = {};\n")

	proj, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, Foundry, proj.Type)
}

func TestDetectNoProject(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foundry.toml")
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foundry.toml"), "")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindRoot(nested)
	require.NoError(t, err)
	// Resolve symlinks so macOS /var vs /private/var tempdirs compare equal.
	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	foundResolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, foundResolved)
}

func TestFindRootNotAProject(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	require.Error(t, err)
}

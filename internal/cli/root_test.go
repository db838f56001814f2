package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdRegistersCommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"list", "call", "networks", "run", "config", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmdGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for _, want := range []string{"network", "wallet", "non-interactive", "json", "debug"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(want), "missing flag %s", want)
	}
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	v, err = parseValue("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseValue("-1")
	require.Error(t, err)

	_, err = parseValue("1.5")
	require.Error(t, err)
}

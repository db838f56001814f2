package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rac-sri/runic/internal/domain"
)

func sampleDeployments() []*domain.Deployment {
	return []*domain.Deployment{
		{
			Name:            "Counter",
			Address:         "0x1111111111111111111111111111111111111111",
			CallableAddress: "0x2222222222222222222222222222222222222222",
			Network:         "localhost",
			ChainID:         31337,
			IsProxy:         true,
		},
		{
			Name:            "CounterProxy" + domain.HiddenSuffix,
			Address:         "0x2222222222222222222222222222222222222222",
			CallableAddress: "0x2222222222222222222222222222222222222222",
			Network:         "localhost",
			ChainID:         31337,
		},
		{
			Name:            "Token",
			Address:         "0x3333333333333333333333333333333333333333",
			CallableAddress: "0x3333333333333333333333333333333333333333",
			Network:         "mainnet",
			ChainID:         1,
		},
	}
}

func TestRenderTableHidesFoldedProxies(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	var buf bytes.Buffer
	require.NoError(t, NewDeploymentsRenderer(&buf, false).Render(sampleDeployments()))

	out := buf.String()
	assert.Contains(t, out, "Counter")
	assert.Contains(t, out, "Token")
	assert.NotContains(t, out, domain.HiddenSuffix)
	// Chains render lowest id first.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("mainnet")), bytes.Index(buf.Bytes(), []byte("localhost")))
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDeploymentsRenderer(&buf, false).Render(nil))
	assert.Contains(t, buf.String(), "No deployments found")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDeploymentsRenderer(&buf, true).Render(sampleDeployments()))

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Counter", entries[0]["name"])
	assert.Equal(t, true, entries[0]["proxied"])
	assert.Equal(t, "0x2222222222222222222222222222222222222222", entries[0]["callableAddress"])
}

func TestRenderCallResult(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	t.Run("read with values", func(t *testing.T) {
		var buf bytes.Buffer
		result := domain.NewReadResult([]string{"42", "true"})
		require.NoError(t, NewCallResultRenderer(&buf, false).Render(result))
		assert.Contains(t, buf.String(), "[0] 42")
		assert.Contains(t, buf.String(), "[1] true")
	})

	t.Run("read without values", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewCallResultRenderer(&buf, false).Render(domain.NewReadResult(nil)))
		assert.Contains(t, buf.String(), "no return value")
	})

	t.Run("write", func(t *testing.T) {
		var buf bytes.Buffer
		result := domain.NewWriteResult("0xdeadbeef")
		require.NoError(t, NewCallResultRenderer(&buf, false).Render(result))
		assert.Contains(t, buf.String(), "0xdeadbeef")
	})

	t.Run("json write", func(t *testing.T) {
		var buf bytes.Buffer
		result := domain.NewWriteResult("0xdeadbeef")
		require.NoError(t, NewCallResultRenderer(&buf, true).Render(result))

		var payload map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
		assert.Equal(t, "write", payload["kind"])
		assert.Equal(t, "0xdeadbeef", payload["txHash"])
	})
}

package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20ABI = `[
	{
		"type": "function",
		"name": "balanceOf",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "transfer",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable"
	},
	{
		"type": "event",
		"name": "Transfer",
		"inputs": []
	},
	{
		"type": "constructor",
		"inputs": [{"name": "supply", "type": "uint256"}]
	}
]`

func TestParse(t *testing.T) {
	t.Run("extracts functions and skips other entries", func(t *testing.T) {
		functions, _, err := Parse([]byte(erc20ABI))
		require.NoError(t, err)
		require.Len(t, functions, 2)

		assert.Equal(t, "balanceOf", functions[0].Name)
		assert.Equal(t, MutabilityView, functions[0].Mutability)
		require.Len(t, functions[0].Inputs, 1)
		assert.Equal(t, "account", functions[0].Inputs[0].Name)
		assert.Equal(t, KindAddress, functions[0].Inputs[0].Type.Kind)

		assert.Equal(t, "transfer", functions[1].Name)
		require.Len(t, functions[1].Inputs, 2)
		assert.Equal(t, KindUint, functions[1].Inputs[1].Type.Kind)
		assert.Equal(t, 256, functions[1].Inputs[1].Type.Bits)
	})

	t.Run("mutability defaults to nonpayable", func(t *testing.T) {
		functions, _, err := Parse([]byte(`[{"type":"function","name":"poke","inputs":[],"outputs":[]}]`))
		require.NoError(t, err)
		require.Len(t, functions, 1)
		assert.Equal(t, MutabilityNonpayable, functions[0].Mutability)
	})

	t.Run("missing param name defaults to empty", func(t *testing.T) {
		functions, _, err := Parse([]byte(`[{"type":"function","name":"get","inputs":[{"type":"uint256"}],"outputs":[]}]`))
		require.NoError(t, err)
		require.Len(t, functions[0].Inputs, 1)
		assert.Equal(t, "", functions[0].Inputs[0].Name)
	})

	t.Run("non-array root is malformed", func(t *testing.T) {
		_, _, err := Parse([]byte(`{"abi": []}`))
		var malformed *MalformedInterfaceError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("entry without type is malformed", func(t *testing.T) {
		_, _, err := Parse([]byte(`[{"name":"orphan"}]`))
		var malformed *MalformedInterfaceError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("function without name is malformed", func(t *testing.T) {
		_, _, err := Parse([]byte(`[{"type":"function","inputs":[]}]`))
		var malformed *MalformedInterfaceError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("function with unsupported input type is dropped and reported", func(t *testing.T) {
		functions, dropped, err := Parse([]byte(`[
			{"type":"function","name":"setMany","inputs":[{"name":"xs","type":"uint256[]"}],"outputs":[]},
			{"type":"function","name":"set","inputs":[{"name":"x","type":"uint256"}],"outputs":[]}
		]`))
		require.NoError(t, err)
		require.Len(t, functions, 1)
		assert.Equal(t, "set", functions[0].Name)
		assert.Equal(t, []string{"setMany"}, dropped)
	})

	t.Run("fully supported interface reports nothing dropped", func(t *testing.T) {
		_, dropped, err := Parse([]byte(erc20ABI))
		require.NoError(t, err)
		assert.Empty(t, dropped)
	})

	t.Run("unsupported output type degrades to unknown", func(t *testing.T) {
		functions, _, err := Parse([]byte(`[{"type":"function","name":"list","inputs":[],"outputs":[{"type":"address[]"}]}]`))
		require.NoError(t, err)
		require.Len(t, functions, 1)
		require.Len(t, functions[0].Outputs, 1)
		assert.Equal(t, KindUnknown, functions[0].Outputs[0].Type.Kind)
		assert.Equal(t, "address[]", functions[0].Outputs[0].Type.Raw)
	})

	t.Run("tuple components parse recursively", func(t *testing.T) {
		functions, _, err := Parse([]byte(`[{
			"type":"function","name":"submit",
			"inputs":[{"name":"order","type":"tuple","components":[
				{"name":"maker","type":"address"},
				{"name":"amount","type":"uint256"}
			]}],
			"outputs":[]
		}]`))
		require.NoError(t, err)
		require.Len(t, functions, 1)
		order := functions[0].Inputs[0]
		assert.Equal(t, KindTuple, order.Type.Kind)
		require.Len(t, order.Components, 2)
		assert.Equal(t, KindAddress, order.Components[0].Type.Kind)
		assert.Equal(t, KindUint, order.Components[1].Type.Kind)
	})
}

func TestParseParamType(t *testing.T) {
	tests := []struct {
		raw  string
		kind ParamKind
		bits int
		size int
	}{
		{"address", KindAddress, 0, 0},
		{"bool", KindBool, 0, 0},
		{"string", KindString, 0, 0},
		{"bytes", KindBytes, 0, 0},
		{"uint256", KindUint, 256, 0},
		{"uint8", KindUint, 8, 0},
		{"uint", KindUint, 256, 0},
		{"int128", KindInt, 128, 0},
		{"int", KindInt, 256, 0},
		{"bytes32", KindFixedBytes, 0, 32},
		{"bytes1", KindFixedBytes, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			typ, err := ParseParamType(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, typ.Kind)
			assert.Equal(t, tt.bits, typ.Bits)
			assert.Equal(t, tt.size, typ.Size)
		})
	}

	t.Run("aliases canonicalize", func(t *testing.T) {
		typ, err := ParseParamType("uint")
		require.NoError(t, err)
		assert.Equal(t, "uint256", typ.Raw)
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		for _, raw := range []string{"uint256[]", "bytes33", "uint7", "uint0", "fixed128x18", "function"} {
			_, err := ParseParamType(raw)
			var unsupported *UnsupportedParamTypeError
			assert.ErrorAs(t, err, &unsupported, "type %s", raw)
		}
	})
}

func TestIsReadOnly(t *testing.T) {
	for mutability, readOnly := range map[StateMutability]bool{
		MutabilityPure:       true,
		MutabilityView:       true,
		MutabilityNonpayable: false,
		MutabilityPayable:    false,
	} {
		fn := ContractFunction{Name: "f", Mutability: mutability}
		assert.Equal(t, readOnly, fn.IsReadOnly(), "mutability %s", mutability)
	}
}

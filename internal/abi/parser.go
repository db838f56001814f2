package abi

import (
	"encoding/json"
)

type rawParam struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Components json.RawMessage `json:"components"`
}

type rawEntry struct {
	Type            *string    `json:"type"`
	Name            *string    `json:"name"`
	Inputs          []rawParam `json:"inputs"`
	Outputs         []rawParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
}

// Parse extracts callable function descriptors from a raw interface artifact.
// The input must be a JSON array of ABI entries; events, errors and
// constructors are skipped. A function whose inputs use a type outside the
// supported set is dropped from the result rather than failing the parse, so
// the rest of the contract stays callable; the names of dropped functions
// are returned so callers can report them.
func Parse(data []byte) ([]ContractFunction, []string, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, &MalformedInterfaceError{Reason: "root is not a JSON array"}
	}

	functions := make([]ContractFunction, 0, len(entries))
	var dropped []string
	for _, raw := range entries {
		var entry rawEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, nil, &MalformedInterfaceError{Reason: "entry is not a JSON object"}
		}
		if entry.Type == nil {
			return nil, nil, &MalformedInterfaceError{Reason: "entry missing type field"}
		}
		if *entry.Type != "function" {
			continue
		}
		if entry.Name == nil || *entry.Name == "" {
			return nil, nil, &MalformedInterfaceError{Reason: "function entry missing name"}
		}

		inputs, err := parseParams(entry.Inputs, false)
		if err != nil {
			// Uncallable function: unsupported input type. Drop it, keep
			// the rest of the interface.
			dropped = append(dropped, *entry.Name)
			continue
		}
		outputs, err := parseParams(entry.Outputs, true)
		if err != nil {
			dropped = append(dropped, *entry.Name)
			continue
		}

		functions = append(functions, ContractFunction{
			Name:       *entry.Name,
			Inputs:     inputs,
			Outputs:    outputs,
			Mutability: parseMutability(entry.StateMutability),
		})
	}

	return functions, dropped, nil
}

// parseParams resolves raw parameters into typed descriptors. In output
// position an unsupported type degrades to KindUnknown (decoded as raw hex
// later); in input position it is an error.
func parseParams(params []rawParam, outputs bool) ([]FunctionParam, error) {
	result := make([]FunctionParam, 0, len(params))
	for _, p := range params {
		if p.Type == "" {
			continue
		}

		if len(p.Components) > 0 {
			var rawComponents []rawParam
			if err := json.Unmarshal(p.Components, &rawComponents); err == nil {
				components, err := parseParams(rawComponents, outputs)
				if err != nil {
					return nil, err
				}
				result = append(result, FunctionParam{
					Name:       p.Name,
					Type:       ParamType{Kind: KindTuple, Raw: "tuple"},
					Components: components,
				})
				continue
			}
		}

		typ, err := ParseParamType(p.Type)
		if err != nil {
			if !outputs {
				return nil, err
			}
			typ = ParamType{Kind: KindUnknown, Raw: p.Type}
		}
		result = append(result, FunctionParam{Name: p.Name, Type: typ})
	}
	return result, nil
}

func parseMutability(s string) StateMutability {
	switch StateMutability(s) {
	case MutabilityPure, MutabilityView, MutabilityPayable:
		return StateMutability(s)
	default:
		return MutabilityNonpayable
	}
}

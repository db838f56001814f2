package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamKind enumerates the supported ABI parameter types. Type strings are
// resolved into this closed set once, at interface parse time, so the codec
// can switch exhaustively instead of re-matching strings on every call.
type ParamKind int

const (
	KindAddress ParamKind = iota
	KindUint
	KindInt
	KindBool
	KindFixedBytes
	KindBytes
	KindString
	KindTuple
	// KindUnknown is only ever produced for function outputs: decoding an
	// unknown output degrades to raw hex, while an unknown input makes the
	// whole function uncallable and is rejected at parse time.
	KindUnknown
)

func (k ParamKind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "fixed-bytes"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// ParamType is a resolved ABI parameter type.
type ParamType struct {
	Kind ParamKind
	Bits int    // integer width for KindUint / KindInt (8..256)
	Size int    // byte count for KindFixedBytes (1..32)
	Raw  string // canonical type string, e.g. "uint256"
}

// Static reports whether values of this type occupy exactly one 32-byte slot.
func (t ParamType) Static() bool {
	switch t.Kind {
	case KindBytes, KindString:
		return false
	default:
		return true
	}
}

// FunctionParam is one input or output of a contract function. Components is
// populated for tuple parameters only; the structure is recursive but acyclic.
type FunctionParam struct {
	Name       string
	Type       ParamType
	Components []FunctionParam
}

// StateMutability is the declared mutability of a contract function.
type StateMutability string

const (
	MutabilityPure       StateMutability = "pure"
	MutabilityView       StateMutability = "view"
	MutabilityNonpayable StateMutability = "nonpayable"
	MutabilityPayable    StateMutability = "payable"
)

// ContractFunction is a callable function descriptor parsed from an interface
// artifact. Immutable once parsed.
type ContractFunction struct {
	Name       string
	Inputs     []FunctionParam
	Outputs    []FunctionParam
	Mutability StateMutability
}

// IsReadOnly reports whether calling the function cannot change chain state.
func (f ContractFunction) IsReadOnly() bool {
	return f.Mutability == MutabilityPure || f.Mutability == MutabilityView
}

// ParseParamType resolves an ABI type string into a ParamType. The "uint" and
// "int" aliases canonicalize to their 256-bit forms so signatures hash the
// way selectors expect.
func ParseParamType(raw string) (ParamType, error) {
	switch raw {
	case "address":
		return ParamType{Kind: KindAddress, Raw: raw}, nil
	case "bool":
		return ParamType{Kind: KindBool, Raw: raw}, nil
	case "string":
		return ParamType{Kind: KindString, Raw: raw}, nil
	case "bytes":
		return ParamType{Kind: KindBytes, Raw: raw}, nil
	case "tuple":
		return ParamType{Kind: KindTuple, Raw: raw}, nil
	case "uint":
		return ParamType{Kind: KindUint, Bits: 256, Raw: "uint256"}, nil
	case "int":
		return ParamType{Kind: KindInt, Bits: 256, Raw: "int256"}, nil
	}

	if bits, ok := parseSized(raw, "uint"); ok {
		return ParamType{Kind: KindUint, Bits: bits, Raw: raw}, nil
	}
	if bits, ok := parseSized(raw, "int"); ok {
		return ParamType{Kind: KindInt, Bits: bits, Raw: raw}, nil
	}
	if size, ok := parseFixedBytes(raw); ok {
		return ParamType{Kind: KindFixedBytes, Size: size, Raw: raw}, nil
	}

	return ParamType{}, &UnsupportedParamTypeError{Type: raw}
}

// parseSized matches uintN / intN with N a multiple of 8 in [8, 256].
func parseSized(raw, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(raw, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	bits, err := strconv.Atoi(rest)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, false
	}
	return bits, true
}

// parseFixedBytes matches bytesN with N in [1, 32].
func parseFixedBytes(raw string) (int, bool) {
	rest, ok := strings.CutPrefix(raw, "bytes")
	if !ok || rest == "" {
		return 0, false
	}
	size, err := strconv.Atoi(rest)
	if err != nil || size < 1 || size > 32 {
		return 0, false
	}
	return size, true
}

// canonicalType renders a parameter's canonical ABI type for signature
// hashing. Tuples render as a parenthesized list of component types.
func canonicalType(p FunctionParam) string {
	if p.Type.Kind == KindTuple {
		inner := make([]string, len(p.Components))
		for i, c := range p.Components {
			inner[i] = canonicalType(c)
		}
		return fmt.Sprintf("(%s)", strings.Join(inner, ","))
	}
	return p.Type.Raw
}

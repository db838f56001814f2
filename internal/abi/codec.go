package abi

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// wordSize is the width of one static ABI slot.
const wordSize = 32

// Signature renders the canonical signature used for selector hashing,
// e.g. "transfer(address,uint256)". Tuple parameters render as a
// parenthesized component list; parameter names never appear.
func Signature(fn ContractFunction) string {
	types := make([]string, len(fn.Inputs))
	for i, p := range fn.Inputs {
		types[i] = canonicalType(p)
	}
	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(types, ","))
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// canonical signature.
func Selector(fn ContractFunction) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(Signature(fn)))[:4])
	return sel
}

// EncodeCall builds calldata for fn: the 4-byte selector followed by each
// input encoded per its declared type. Arguments are matched positionally;
// missing trailing arguments encode as the empty string, which fails for
// types without a zero-text form.
func EncodeCall(fn ContractFunction, args []string) ([]byte, error) {
	sel := Selector(fn)
	calldata := append([]byte{}, sel[:]...)

	for i, param := range fn.Inputs {
		// The offset/length/payload layout only lines up when a dynamic
		// value sits in the final position.
		if !param.Type.Static() && i != len(fn.Inputs)-1 {
			return nil, &UnsupportedParamTypeError{
				Type:   param.Type.Raw,
				Reason: "dynamic values are only supported as the final parameter",
			}
		}
		var value string
		if i < len(args) {
			value = args[i]
		}
		encoded, err := encodeParam(param.Type, value)
		if err != nil {
			return nil, fmt.Errorf("encoding argument %d (%s): %w", i, param.Type.Raw, err)
		}
		if !param.Type.Static() {
			// The offset word must point past the whole head, not just
			// this parameter's own encoding.
			big.NewInt(int64(len(fn.Inputs) * wordSize)).FillBytes(encoded[:wordSize])
		}
		calldata = append(calldata, encoded...)
	}

	return calldata, nil
}

// encodeParam encodes one value per its resolved type. All static types fill
// exactly one 32-byte big-endian slot. Dynamic string/bytes values encode as
// offset + length + payload with the offset assuming a one-word head; callers
// with a wider head rewrite the offset word.
func encodeParam(typ ParamType, value string) ([]byte, error) {
	switch typ.Kind {
	case KindAddress:
		hexStr := strings.TrimPrefix(value, "0x")
		if len(hexStr) != 2*common.AddressLength {
			return nil, &InvalidLiteralError{Type: "address", Value: value, Cause: "must be 20 bytes of hex"}
		}
		raw, err := hex.DecodeString(hexStr)
		if err != nil {
			return nil, &InvalidLiteralError{Type: "address", Value: value, Cause: "bad hex"}
		}
		word := make([]byte, wordSize)
		copy(word[wordSize-common.AddressLength:], raw)
		return word, nil

	case KindUint, KindInt:
		// Signed values are encoded as unsigned 256-bit words; negative
		// numbers are rejected rather than two's-complemented.
		n, err := parseIntegerLiteral(typ.Raw, value)
		if err != nil {
			return nil, err
		}
		word := make([]byte, wordSize)
		n.FillBytes(word)
		return word, nil

	case KindBool:
		word := make([]byte, wordSize)
		if strings.EqualFold(value, "true") || value == "1" {
			word[wordSize-1] = 1
		}
		return word, nil

	case KindFixedBytes:
		hexStr, ok := strings.CutPrefix(value, "0x")
		if !ok {
			return nil, &InvalidLiteralError{Type: typ.Raw, Value: value, Cause: "missing 0x prefix"}
		}
		raw, err := hex.DecodeString(hexStr)
		if err != nil {
			return nil, &InvalidLiteralError{Type: typ.Raw, Value: value, Cause: "bad hex"}
		}
		if len(raw) != typ.Size {
			return nil, &InvalidLiteralError{Type: typ.Raw, Value: value, Cause: fmt.Sprintf("must be exactly %d bytes", typ.Size)}
		}
		word := make([]byte, wordSize)
		copy(word, raw)
		return word, nil

	case KindBytes:
		hexStr, ok := strings.CutPrefix(value, "0x")
		if !ok {
			return nil, &InvalidLiteralError{Type: "bytes", Value: value, Cause: "missing 0x prefix"}
		}
		raw, err := hex.DecodeString(hexStr)
		if err != nil {
			return nil, &InvalidLiteralError{Type: "bytes", Value: value, Cause: "bad hex"}
		}
		return encodeDynamic(raw), nil

	case KindString:
		return encodeDynamic([]byte(value)), nil

	case KindTuple:
		// Tuple arguments would need structured input; flat string
		// arguments cannot express them.
		return nil, &UnsupportedParamTypeError{Type: "tuple"}

	default:
		return nil, &UnsupportedParamTypeError{Type: typ.Raw}
	}
}

// parseIntegerLiteral accepts decimal or 0x-prefixed hex and enforces the
// 256-bit range.
func parseIntegerLiteral(typeName, value string) (*big.Int, error) {
	var (
		n  = new(big.Int)
		ok bool
	)
	if hexStr, isHex := strings.CutPrefix(value, "0x"); isHex {
		_, ok = n.SetString(hexStr, 16)
	} else {
		_, ok = n.SetString(value, 10)
	}
	if !ok {
		return nil, &InvalidLiteralError{Type: typeName, Value: value, Cause: "not a number"}
	}
	if n.Sign() < 0 {
		return nil, &InvalidLiteralError{Type: typeName, Value: value, Cause: "negative values are not supported"}
	}
	if n.BitLen() > 256 {
		return nil, &InvalidLiteralError{Type: typeName, Value: value, Cause: "exceeds 256 bits"}
	}
	return n, nil
}

// encodeDynamic encodes a standalone dynamic value: offset word, length word,
// then the payload padded up to a slot boundary.
func encodeDynamic(payload []byte) []byte {
	padded := (len(payload) + wordSize - 1) / wordSize * wordSize
	out := make([]byte, 2*wordSize+padded)
	out[wordSize-1] = wordSize // offset of length word from encoding start
	big.NewInt(int64(len(payload))).FillBytes(out[wordSize : 2*wordSize])
	copy(out[2*wordSize:], payload)
	return out
}

// DecodeResult decodes return data against fn's declared outputs, consuming
// one 32-byte slot per static output in order. String and bytes outputs are
// dynamic: their slot holds an offset into data where a length-prefixed
// payload lives. Outputs of unknown type decode as the raw slot in hex.
func DecodeResult(fn ContractFunction, data []byte) ([]string, error) {
	if len(fn.Outputs) == 0 || len(data) == 0 {
		return nil, nil
	}

	results := make([]string, 0, len(fn.Outputs))
	offset := 0
	for _, output := range fn.Outputs {
		value, err := decodeOutput(output.Type, data, offset)
		if err != nil {
			return nil, err
		}
		results = append(results, value)
		offset += wordSize
	}
	return results, nil
}

func decodeOutput(typ ParamType, data []byte, offset int) (string, error) {
	word, err := slot(typ.Raw, data, offset)
	if err != nil {
		return "", err
	}

	switch typ.Kind {
	case KindAddress:
		return common.BytesToAddress(word[wordSize-common.AddressLength:]).Hex(), nil

	case KindUint, KindInt:
		// Same unsigned simplification as encoding.
		return new(big.Int).SetBytes(word).String(), nil

	case KindBool:
		if word[wordSize-1] != 0 {
			return "true", nil
		}
		return "false", nil

	case KindFixedBytes:
		return hexutil.Encode(word[:typ.Size]), nil

	case KindString:
		payload, err := decodeDynamic(typ.Raw, data, word)
		if err != nil {
			return "", err
		}
		return string(payload), nil

	case KindBytes:
		payload, err := decodeDynamic(typ.Raw, data, word)
		if err != nil {
			return "", err
		}
		return hexutil.Encode(payload), nil

	default:
		// Unknown and tuple outputs degrade to the raw slot; the caller
		// reports this as a warning, not a failure.
		return hexutil.Encode(word), nil
	}
}

// decodeDynamic follows an offset word to a length-prefixed payload. The
// offset and length words are untrusted return data, so both are bounded
// against the buffer before any slice arithmetic.
func decodeDynamic(typeName string, data []byte, offsetWord []byte) ([]byte, error) {
	off := new(big.Int).SetBytes(offsetWord)
	if !off.IsInt64() || off.Int64() > int64(len(data)) {
		return nil, &InsufficientDataError{Type: typeName, Need: len(data) + wordSize, Have: len(data)}
	}
	start := int(off.Int64())

	lengthWord, err := slot(typeName, data, start)
	if err != nil {
		return nil, err
	}

	payloadStart := start + wordSize
	remaining := int64(len(data) - payloadStart)
	length := new(big.Int).SetBytes(lengthWord)
	if !length.IsInt64() || length.Int64() > remaining {
		return nil, &InsufficientDataError{Type: typeName, Need: len(data) + wordSize, Have: len(data)}
	}

	return data[payloadStart : payloadStart+int(length.Int64())], nil
}

func slot(typeName string, data []byte, offset int) ([]byte, error) {
	if offset+wordSize > len(data) {
		return nil, &InsufficientDataError{Type: typeName, Need: offset + wordSize, Have: len(data)}
	}
	return data[offset : offset+wordSize], nil
}

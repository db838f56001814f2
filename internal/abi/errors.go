package abi

import "fmt"

// MalformedInterfaceError is returned when an interface artifact is not a
// JSON array of entries, or an entry is structurally unusable.
type MalformedInterfaceError struct {
	Reason string
}

func (e *MalformedInterfaceError) Error() string {
	return fmt.Sprintf("malformed interface: %s", e.Reason)
}

// UnsupportedParamTypeError is returned when a parameter type string falls
// outside the supported set, or a supported type appears in a position the
// codec cannot encode.
type UnsupportedParamTypeError struct {
	Type   string
	Reason string
}

func (e *UnsupportedParamTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported parameter type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("unsupported parameter type %q", e.Type)
}

// InvalidLiteralError is returned when an argument string cannot be parsed
// as a value of its declared type.
type InvalidLiteralError struct {
	Type  string
	Value string
	Cause string
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid %s literal %q: %s", e.Type, e.Value, e.Cause)
}

// InsufficientDataError is returned when return data runs out before every
// declared output has been decoded.
type InsufficientDataError struct {
	Type string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d bytes, have %d", e.Type, e.Need, e.Have)
}

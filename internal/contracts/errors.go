package contracts

import (
	"errors"
	"fmt"
)

// ErrNoSigner is returned when a write is attempted on a provider that was
// built without a signing key.
var ErrNoSigner = errors.New("no signer configured")

// RpcError wraps a failure talking to the node. The operation names the
// JSON-RPC concern that failed.
type RpcError struct {
	Operation string
	Err       error
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Operation, e.Err)
}

func (e *RpcError) Unwrap() error { return e.Err }

// SignerError wraps a failure to load or use a signing key.
type SignerError struct {
	Err error
}

func (e *SignerError) Error() string {
	return fmt.Sprintf("signer: %v", e.Err)
}

func (e *SignerError) Unwrap() error { return e.Err }

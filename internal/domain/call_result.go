package domain

// CallResultKind discriminates the two success shapes of a contract call.
type CallResultKind int

const (
	// ReadResult carries decoded return values from an eth_call.
	ReadResult CallResultKind = iota
	// WriteResult carries the hash of a broadcast transaction.
	WriteResult
)

// CallResult is the outcome of a successful contract call. Failures are
// returned as errors, not encoded here.
type CallResult struct {
	Kind   CallResultKind
	Values []string // decoded outputs, canonical string form (ReadResult)
	TxHash string   // canonical hex transaction hash (WriteResult)
}

// NewReadResult wraps decoded output values.
func NewReadResult(values []string) *CallResult {
	return &CallResult{Kind: ReadResult, Values: values}
}

// NewWriteResult wraps a broadcast transaction hash.
func NewWriteResult(txHash string) *CallResult {
	return &CallResult{Kind: WriteResult, TxHash: txHash}
}

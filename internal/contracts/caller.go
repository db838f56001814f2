package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rac-sri/runic/internal/abi"
	"github.com/rac-sri/runic/internal/domain"
)

// Provider is the node-facing surface the caller needs. EthProvider is the
// production implementation; tests substitute an in-memory one.
type Provider interface {
	// Call executes a read against the latest block and returns the raw
	// return data.
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)

	// SendTransaction signs and broadcasts a state-changing call, returning
	// the transaction hash. Returns ErrNoSigner when no key is configured.
	SendTransaction(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error)
}

// Caller executes contract functions against a deployment, encoding
// arguments and decoding return data.
type Caller struct {
	provider Provider
	log      *slog.Logger
}

func NewCaller(provider Provider, log *slog.Logger) *Caller {
	return &Caller{provider: provider, log: log}
}

// Call dispatches on the function's mutability: view and pure functions go
// through eth_call, everything else becomes a signed transaction.
func (c *Caller) Call(ctx context.Context, d *domain.Deployment, fn *abi.ContractFunction, args []string, value *big.Int) (*domain.CallResult, error) {
	if fn.IsReadOnly() {
		return c.CallRead(ctx, d, fn, args)
	}
	return c.CallWrite(ctx, d, fn, args, value)
}

// CallRead executes a view or pure function and decodes its return values.
func (c *Caller) CallRead(ctx context.Context, d *domain.Deployment, fn *abi.ContractFunction, args []string) (*domain.CallResult, error) {
	to, data, err := c.prepare(d, fn, args)
	if err != nil {
		return nil, err
	}

	raw, err := c.provider.Call(ctx, to, data)
	if err != nil {
		return nil, &RpcError{Operation: "eth_call", Err: err}
	}

	c.warnUnknownOutputs(fn)
	values, err := abi.DecodeResult(*fn, raw)
	if err != nil {
		return nil, err
	}
	return domain.NewReadResult(values), nil
}

// CallWrite broadcasts a state-changing call and returns its transaction
// hash. The return data, if any, is not available for writes.
func (c *Caller) CallWrite(ctx context.Context, d *domain.Deployment, fn *abi.ContractFunction, args []string, value *big.Int) (*domain.CallResult, error) {
	to, data, err := c.prepare(d, fn, args)
	if err != nil {
		return nil, err
	}

	hash, err := c.provider.SendTransaction(ctx, to, data, value)
	if err != nil {
		return nil, err
	}
	return domain.NewWriteResult(hash.Hex()), nil
}

// prepare validates the target address and encodes the calldata.
func (c *Caller) prepare(d *domain.Deployment, fn *abi.ContractFunction, args []string) (common.Address, []byte, error) {
	target := d.CallableAddress
	if !common.IsHexAddress(target) {
		return common.Address{}, nil, fmt.Errorf("deployment %s has invalid callable address %q", d.Name, target)
	}

	data, err := abi.EncodeCall(*fn, args)
	if err != nil {
		return common.Address{}, nil, err
	}
	return common.HexToAddress(target), data, nil
}

// warnUnknownOutputs logs once per call when the decoder will fall back to
// raw slot hex for outputs it cannot interpret.
func (c *Caller) warnUnknownOutputs(fn *abi.ContractFunction) {
	for _, out := range fn.Outputs {
		if out.Type.Kind == abi.KindUnknown || out.Type.Kind == abi.KindTuple {
			c.log.Warn("output type not decodable, returning raw slot data",
				"function", fn.Name, "type", out.Type.Raw)
			return
		}
	}
}

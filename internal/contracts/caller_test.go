package contracts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rac-sri/runic/internal/abi"
	"github.com/rac-sri/runic/internal/domain"
)

// fakeProvider records the last call and replays canned responses.
type fakeProvider struct {
	callTo     common.Address
	callData   []byte
	callResult []byte
	callErr    error

	sendTo    common.Address
	sendData  []byte
	sendValue *big.Int
	sendHash  common.Hash
	sendErr   error
}

func (f *fakeProvider) Call(_ context.Context, to common.Address, data []byte) ([]byte, error) {
	f.callTo = to
	f.callData = data
	return f.callResult, f.callErr
}

func (f *fakeProvider) SendTransaction(_ context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	f.sendTo = to
	f.sendData = data
	f.sendValue = value
	return f.sendHash, f.sendErr
}

func testCaller(p Provider) *Caller {
	return NewCaller(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func viewFn(name string, outputs ...string) abi.ContractFunction {
	fn := abi.ContractFunction{Name: name, Mutability: abi.MutabilityView}
	for _, raw := range outputs {
		typ, err := abi.ParseParamType(raw)
		if err != nil {
			panic(err)
		}
		fn.Outputs = append(fn.Outputs, abi.FunctionParam{Type: typ})
	}
	return fn
}

const targetAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func target() *domain.Deployment {
	return &domain.Deployment{
		Name:            "Counter",
		Address:         targetAddr,
		CallableAddress: targetAddr,
		ChainID:         31337,
	}
}

func TestCallReadDecodesResult(t *testing.T) {
	result := make([]byte, 32)
	result[31] = 42
	fake := &fakeProvider{callResult: result}

	fn := viewFn("number", "uint256")
	got, err := testCaller(fake).CallRead(context.Background(), target(), &fn, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.ReadResult, got.Kind)
	assert.Equal(t, []string{"42"}, got.Values)
	assert.Equal(t, common.HexToAddress(targetAddr), fake.callTo)
	// Empty-input call is just the selector.
	assert.Len(t, fake.callData, 4)
}

func TestCallReadTargetsCallableAddress(t *testing.T) {
	proxied := target()
	proxied.CallableAddress = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	proxied.IsProxy = true
	fake := &fakeProvider{}

	fn := viewFn("number", "uint256")
	_, err := testCaller(fake).CallRead(context.Background(), proxied, &fn, nil)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(proxied.CallableAddress), fake.callTo)
}

func TestCallReadRpcFailure(t *testing.T) {
	fake := &fakeProvider{callErr: errors.New("connection refused")}

	fn := viewFn("number", "uint256")
	_, err := testCaller(fake).CallRead(context.Background(), target(), &fn, nil)

	var rpcErr *RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "eth_call", rpcErr.Operation)
}

func TestCallReadInvalidAddress(t *testing.T) {
	broken := target()
	broken.CallableAddress = "0x123"
	fake := &fakeProvider{}

	fn := viewFn("number", "uint256")
	_, err := testCaller(fake).CallRead(context.Background(), broken, &fn, nil)
	require.Error(t, err)
	// The provider must never be touched with a bad target.
	assert.Nil(t, fake.callData)
}

func TestCallReadBadArgument(t *testing.T) {
	fake := &fakeProvider{}
	typ, err := abi.ParseParamType("uint256")
	require.NoError(t, err)
	fn := abi.ContractFunction{
		Name:       "setNumber",
		Mutability: abi.MutabilityView,
		Inputs:     []abi.FunctionParam{{Name: "n", Type: typ}},
	}

	_, err = testCaller(fake).CallRead(context.Background(), target(), &fn, []string{"not-a-number"})
	var litErr *abi.InvalidLiteralError
	require.ErrorAs(t, err, &litErr)
}

func TestCallWrite(t *testing.T) {
	hash := common.HexToHash("0xdeadbeef00000000000000000000000000000000000000000000000000000000")
	fake := &fakeProvider{sendHash: hash}

	typ, err := abi.ParseParamType("uint256")
	require.NoError(t, err)
	fn := abi.ContractFunction{
		Name:       "setNumber",
		Mutability: abi.MutabilityNonpayable,
		Inputs:     []abi.FunctionParam{{Name: "n", Type: typ}},
	}

	got, err := testCaller(fake).CallWrite(context.Background(), target(), &fn, []string{"7"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.WriteResult, got.Kind)
	assert.Equal(t, hash.Hex(), got.TxHash)
	assert.Len(t, fake.sendData, 36)
}

func TestCallWriteNoSigner(t *testing.T) {
	fake := &fakeProvider{sendErr: ErrNoSigner}

	fn := abi.ContractFunction{Name: "reset", Mutability: abi.MutabilityNonpayable}
	_, err := testCaller(fake).CallWrite(context.Background(), target(), &fn, nil, nil)
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestCallDispatchesOnMutability(t *testing.T) {
	fake := &fakeProvider{callResult: make([]byte, 32)}
	c := testCaller(fake)

	read := viewFn("number", "uint256")
	got, err := c.Call(context.Background(), target(), &read, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadResult, got.Kind)

	write := abi.ContractFunction{Name: "reset", Mutability: abi.MutabilityNonpayable}
	got, err = c.Call(context.Background(), target(), &write, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.WriteResult, got.Kind)
	assert.Nil(t, fake.sendValue)
}

func TestWithSignerRejectsBadKey(t *testing.T) {
	_, err := NewEthProvider("http://localhost:8545", 31337).WithSigner("0xzz")
	var signerErr *SignerError
	require.ErrorAs(t, err, &signerErr)
}

func TestWithSignerAcceptsPrefixedKey(t *testing.T) {
	// Well-known anvil development key.
	p, err := NewEthProvider("http://localhost:8545", 31337).
		WithSigner("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	assert.True(t, p.HasSigner())
}

func TestSendTransactionWithoutSigner(t *testing.T) {
	p := NewEthProvider("http://localhost:8545", 31337)
	_, err := p.SendTransaction(context.Background(), common.Address{}, nil, nil)
	assert.ErrorIs(t, err, ErrNoSigner)
}

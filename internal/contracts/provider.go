package contracts

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// fallbackGasLimit is used when gas estimation fails, which is common
// against nodes that revert-simulate estimates.
const fallbackGasLimit = 100000

// EthProvider talks JSON-RPC to a single node. The connection is dialed
// lazily on first use so construction never blocks.
type EthProvider struct {
	rpcURL  string
	chainID *big.Int
	key     *ecdsa.PrivateKey

	mu     sync.Mutex
	client *ethclient.Client
}

func NewEthProvider(rpcURL string, chainID uint64) *EthProvider {
	return &EthProvider{
		rpcURL:  rpcURL,
		chainID: new(big.Int).SetUint64(chainID),
	}
}

// WithSigner attaches a hex-encoded private key for write transactions.
func (p *EthProvider) WithSigner(hexKey string) (*EthProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, &SignerError{Err: err}
	}
	p.key = key
	return p, nil
}

// HasSigner reports whether write transactions can be sent.
func (p *EthProvider) HasSigner() bool { return p.key != nil }

func (p *EthProvider) dial(ctx context.Context) (*ethclient.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	client, err := ethclient.DialContext(ctx, p.rpcURL)
	if err != nil {
		return nil, &RpcError{Operation: "dial", Err: err}
	}
	p.client = client
	return client, nil
}

// Close releases the underlying connection if one was dialed.
func (p *EthProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}

func (p *EthProvider) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	client, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, &RpcError{Operation: "eth_call", Err: err}
	}
	return result, nil
}

func (p *EthProvider) SendTransaction(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	if p.key == nil {
		return common.Hash{}, ErrNoSigner
	}
	client, err := p.dial(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if value == nil {
		value = big.NewInt(0)
	}

	from := crypto.PubkeyToAddress(p.key.PublicKey)

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, &RpcError{Operation: "eth_getTransactionCount", Err: err}
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, &RpcError{Operation: "eth_gasPrice", Err: err}
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Data:  data,
		Value: value,
	})
	if err != nil {
		gas = fallbackGasLimit
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   p.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(p.chainID), p.key)
	if err != nil {
		return common.Hash{}, &SignerError{Err: err}
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, &RpcError{Operation: "eth_sendRawTransaction", Err: err}
	}
	return signed.Hash(), nil
}

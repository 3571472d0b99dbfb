package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	nonce       uint64
	gasPrice    *big.Int
	estimate    uint64
	estimateErr error
	sendErr     error
	sent        []*evmTypes.Transaction
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return f.estimate, f.estimateErr
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *evmTypes.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

const locker = "0x38741a69785e84399fcf7c5ad61d572f7ecb1dab"

func TestEthBroadcaster_NativeDeposit(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := &fakeBackend{nonce: 7, gasPrice: big.NewInt(1_000_000_000), estimate: 21000}
	b := NewEthBroadcaster(backend, key, 1287, "moonbase")

	token := types.Token{ID: "0x0000000000000000000000000000000000000000", Symbol: "DEV", Decimals: 18, ChainType: "moonbase"}
	value := big.NewInt(10_000_000_000_000_000)
	pending, err := b.SendValue(context.Background(), locker, value, token)
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(t, pending.Hash, tx.Hash().Hex())
	assert.Equal(t, uint64(7), pending.Nonce)
	assert.Equal(t, value, tx.Value())
	assert.Equal(t, common.HexToAddress(locker), *tx.To())
	assert.Equal(t, uint64(21000*110/100), tx.Gas())

	sender, err := evmTypes.Sender(evmTypes.NewEIP155Signer(big.NewInt(1287)), tx)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), sender)
}

func TestEthBroadcaster_ERC20Deposit(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := &fakeBackend{gasPrice: big.NewInt(1), estimateErr: errors.New("no estimate")}
	b := NewEthBroadcaster(backend, key, 1, "ethereum")

	usdt := "0xdAC17F958D2ee523a2206206994597C13D831ec7"
	token := types.Token{ID: "arAddr," + usdt, Symbol: "USDT", Decimals: 6, ChainType: "arweave,ethereum"}
	_, err = b.SendValue(context.Background(), locker, big.NewInt(1_000_000), token)
	require.NoError(t, err)

	tx := backend.sent[0]
	assert.Equal(t, common.HexToAddress(usdt), *tx.To())
	assert.Equal(t, 0, tx.Value().Sign())
	assert.Equal(t, uint64(erc20DefaultGas*120/100), tx.Gas())
	assert.Equal(t, BuildERC20TransferData(common.HexToAddress(locker), big.NewInt(1_000_000)), tx.Data())
}

func TestEthBroadcaster_Errors(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := &fakeBackend{gasPrice: big.NewInt(1), estimate: 21000, sendErr: errors.New("nonce too low")}
	b := NewEthBroadcaster(backend, key, 1, "ethereum")
	eth := types.Token{ID: "0x0000000000000000000000000000000000000000", Symbol: "ETH", ChainType: "ethereum"}

	_, err = b.SendValue(context.Background(), "not-an-address", big.NewInt(1), eth)
	assert.ErrorIs(t, err, xerr.ErrInvalidAddress)

	_, err = b.SendValue(context.Background(), locker, big.NewInt(1), eth)
	assert.ErrorContains(t, err, "nonce too low")
	assert.Empty(t, xerr.CodeOf(err))

	ar := types.Token{ID: "AR", Symbol: "AR", ChainType: "arweave"}
	_, err = b.SendValue(context.Background(), locker, big.NewInt(1), ar)
	assert.ErrorContains(t, err, "not on ethereum")
	assert.ErrorIs(t, err, xerr.ErrTokenNotOnChain)
}

func TestBuildERC20TransferData(t *testing.T) {
	data := BuildERC20TransferData(common.HexToAddress(locker), big.NewInt(255))
	require.Len(t, data, 68)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, data[:4])
	assert.Equal(t, byte(0xff), data[67])
}

func TestIsNativeToken(t *testing.T) {
	assert.True(t, IsNativeToken("0x0000000000000000000000000000000000000000"))
	assert.True(t, IsNativeToken("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"))
	assert.False(t, IsNativeToken("0xdac17f958d2ee523a2206206994597c13d831ec7"))
}

func TestExplorerTxURL(t *testing.T) {
	assert.Equal(t, "https://etherscan.io/tx/0xabc", ExplorerTxURL("ethereum", 1, "0xabc"))
	assert.Equal(t, "https://moonbase.moonscan.io/tx/0xabc", ExplorerTxURL("moonbase", 1287, "0xabc"))
	assert.Empty(t, ExplorerTxURL("arweave", 0, "0xabc"))
}

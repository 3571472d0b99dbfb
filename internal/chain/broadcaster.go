package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"everpay-go/internal/constant"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	nativeTransferGas = 21000
	erc20MinGas       = 60000
	erc20DefaultGas   = 100000
)

// Broadcaster submits a value transfer on chain and returns without waiting for confirmation.
type Broadcaster interface {
	SendValue(ctx context.Context, to string, value *big.Int, token types.Token) (*types.PendingTx, error)
}

// Backend is the subset of ethclient.Client a broadcaster needs.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *evmTypes.Transaction) error
}

// EthBroadcaster sends deposits on an EVM chain with legacy EIP-155 transactions.
type EthBroadcaster struct {
	backend   Backend
	key       *ecdsa.PrivateKey
	from      common.Address
	chainID   *big.Int
	chainType string
}

func NewEthBroadcaster(backend Backend, key *ecdsa.PrivateKey, chainID int64, chainType string) *EthBroadcaster {
	return &EthBroadcaster{
		backend:   backend,
		key:       key,
		from:      crypto.PubkeyToAddress(key.PublicKey),
		chainID:   big.NewInt(chainID),
		chainType: chainType,
	}
}

// SendValue transfers value of token to the address to. Native coins go as a plain
// value transfer; anything else goes through the token contract's transfer method.
func (b *EthBroadcaster) SendValue(ctx context.Context, to string, value *big.Int, token types.Token) (*types.PendingTx, error) {
	logger := logx.WithContext(ctx)

	if !common.IsHexAddress(to) {
		return nil, xerr.New(xerr.ErrInvalidAddress, "invalid receiver address: %s", to)
	}
	tokenAddress, err := TokenAddressOn(token, b.chainType)
	if err != nil {
		return nil, err
	}

	toAddr := common.HexToAddress(to)
	nonce, err := b.backend.PendingNonceAt(ctx, b.from)
	if err != nil {
		logger.Errorf("get nonce failed: %v", err)
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	var tx *evmTypes.Transaction
	if IsNativeToken(tokenAddress) {
		gasLimit, gasPrice, err := b.estimateNativeTransferGas(ctx, toAddr, value)
		if err != nil {
			return nil, err
		}
		logger.Infof("native deposit %s wei to %s, gasLimit=%d gasPrice=%s", value, toAddr.Hex(), gasLimit, gasPrice)
		tx = evmTypes.NewTx(&evmTypes.LegacyTx{
			Nonce:    nonce,
			To:       &toAddr,
			Value:    value,
			Gas:      gasLimit,
			GasPrice: gasPrice,
		})
	} else {
		data := BuildERC20TransferData(toAddr, value)
		contract := common.HexToAddress(tokenAddress)
		gasLimit, gasPrice, err := b.estimateERC20TransferGas(ctx, contract, data)
		if err != nil {
			return nil, err
		}
		logger.Infof("erc20 deposit %s of %s to %s, gasLimit=%d gasPrice=%s", value, contract.Hex(), toAddr.Hex(), gasLimit, gasPrice)
		tx = evmTypes.NewTx(&evmTypes.LegacyTx{
			Nonce:    nonce,
			To:       &contract,
			Value:    big.NewInt(0),
			Gas:      gasLimit,
			GasPrice: gasPrice,
			Data:     data,
		})
	}

	signedTx, err := evmTypes.SignTx(tx, evmTypes.NewEIP155Signer(b.chainID), b.key)
	if err != nil {
		logger.Errorf("sign deposit tx failed: %v", err)
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := b.backend.SendTransaction(ctx, signedTx); err != nil {
		logger.Errorf("send deposit tx %s failed: %v", signedTx.Hash().Hex(), err)
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	logger.Infof("deposit tx sent: %s", signedTx.Hash().Hex())

	return &types.PendingTx{
		Hash:      signedTx.Hash().Hex(),
		ChainType: b.chainType,
		From:      b.from.Hex(),
		To:        toAddr.Hex(),
		Value:     value.String(),
		Nonce:     nonce,
	}, nil
}

func (b *EthBroadcaster) estimateNativeTransferGas(ctx context.Context, to common.Address, value *big.Int) (uint64, *big.Int, error) {
	gasPrice, err := b.backend.SuggestGasPrice(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := b.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  b.from,
		To:    &to,
		Value: value,
	})
	if err != nil {
		logx.WithContext(ctx).Infof("gas estimation failed, using default: %v", err)
		gasLimit = nativeTransferGas
	}
	if gasLimit < nativeTransferGas {
		gasLimit = nativeTransferGas
	}
	// 10% 缓冲
	return gasLimit * 110 / 100, gasPrice, nil
}

func (b *EthBroadcaster) estimateERC20TransferGas(ctx context.Context, contract common.Address, data []byte) (uint64, *big.Int, error) {
	gasPrice, err := b.backend.SuggestGasPrice(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := b.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: b.from,
		To:   &contract,
		Data: data,
	})
	if err != nil {
		logx.WithContext(ctx).Infof("erc20 gas estimation failed, using default: %v", err)
		gasLimit = erc20DefaultGas
	}
	if gasLimit < erc20MinGas {
		gasLimit = erc20MinGas
	}
	// 20% 缓冲
	return gasLimit * 120 / 100, gasPrice, nil
}

// IsNativeToken reports whether a token address denotes the chain's native coin.
func IsNativeToken(address string) bool {
	nativeTokens := []string{
		constant.ZeroAddress,
		"0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE",
	}
	for _, native := range nativeTokens {
		if strings.EqualFold(address, native) {
			return true
		}
	}
	return false
}

// TokenAddressOn picks the token's contract address on chainType from its comma separated id list.
func TokenAddressOn(token types.Token, chainType string) (string, error) {
	ids := strings.Split(token.ID, ",")
	chainTypes := token.ChainTypes()
	if len(ids) == 1 && len(chainTypes) == 1 {
		if !strings.EqualFold(chainTypes[0], chainType) {
			return "", xerr.New(xerr.ErrTokenNotOnChain, "token %s is not on %s", token.Symbol, chainType)
		}
		return ids[0], nil
	}
	for i, c := range chainTypes {
		if strings.EqualFold(c, chainType) && i < len(ids) {
			return ids[i], nil
		}
	}
	return "", xerr.New(xerr.ErrTokenNotOnChain, "token %s is not on %s", token.Symbol, chainType)
}

// BuildERC20TransferData encodes transfer(address to, uint256 amount).
func BuildERC20TransferData(to common.Address, amount *big.Int) []byte {
	// 方法签名: 0xa9059cbb
	transferMethodId := []byte{0xa9, 0x05, 0x9c, 0xbb}

	data := make([]byte, 0, 4+32+32)
	data = append(data, transferMethodId...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}

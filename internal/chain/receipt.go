package chain

import (
	"context"
	"fmt"
	"math/big"

	"everpay-go/internal/constant"
	"everpay-go/internal/types"

	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeromicro/go-zero/core/logx"
)

// TransferEventSignature Transfer(address,address,uint256)
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// ReceiptReader is the subset of ethclient.Client used to inspect a deposit.
type ReceiptReader interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (*evmTypes.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*evmTypes.Receipt, error)
}

// InspectDeposit reports whether txHash is mined and which transfers in it reached locker.
func InspectDeposit(ctx context.Context, reader ReceiptReader, txHash, locker string) (*types.DepositReceipt, error) {
	logger := logx.WithContext(ctx)
	hash := common.HexToHash(txHash)
	lockerAddr := common.HexToAddress(locker)

	tx, isPending, err := reader.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("获取交易失败: %w", err)
	}
	out := &types.DepositReceipt{TxHash: hash.Hex(), Pending: isPending}
	if isPending {
		return out, nil
	}

	receipt, err := reader.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("获取交易回执失败: %w", err)
	}
	out.Success = receipt.Status == evmTypes.ReceiptStatusSuccessful
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if !out.Success {
		logger.Infof("deposit %s reverted in block %d", out.TxHash, out.BlockNumber)
		return out, nil
	}

	var fromAddr string
	signer := evmTypes.LatestSignerForChainID(tx.ChainId())
	if from, err := signer.Sender(tx); err == nil {
		fromAddr = from.Hex()
	}

	out.Events = parseLockerTransfers(receipt.Logs, lockerAddr)

	// 没有 ERC20 Transfer 事件时，检查原生代币转账
	if len(out.Events) == 0 && tx.To() != nil && *tx.To() == lockerAddr && tx.Value().Sign() > 0 {
		out.Events = append(out.Events, types.DepositEvent{
			EventType: "NativeTransfer",
			From:      fromAddr,
			To:        lockerAddr.Hex(),
			TokenAddr: constant.ZeroAddress,
			Amount:    tx.Value().String(),
		})
	}
	return out, nil
}

// parseLockerTransfers keeps ERC20 Transfer logs whose receiver is locker.
func parseLockerTransfers(logs []*evmTypes.Log, locker common.Address) []types.DepositEvent {
	var events []types.DepositEvent
	for _, vLog := range logs {
		// Transfer 事件: topics[0]=签名, topics[1]=from, topics[2]=to, data=amount
		if len(vLog.Topics) != 3 || vLog.Topics[0] != TransferEventSignature {
			continue
		}
		to := common.BytesToAddress(vLog.Topics[2].Bytes())
		if to != locker {
			continue
		}
		events = append(events, types.DepositEvent{
			EventType: "Transfer",
			From:      common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			To:        to.Hex(),
			TokenAddr: vLog.Address.Hex(),
			Amount:    new(big.Int).SetBytes(vLog.Data).String(),
		})
	}
	return events
}

package everpay

import (
	"everpay-go/internal/chain"
	"everpay-go/internal/types"
	"everpay-go/internal/unit"
	"everpay-go/internal/xerr"
)

// Deposit sends amount of symbol from the account's chain address to the everpay locker.
// It returns once the chain transaction is broadcast; everpay mints after confirmation.
func (l *EverpayLogic) Deposit(symbol, amount string) (*types.PendingTx, error) {
	l.Infof("--- 开始处理 everpay deposit 请求 for account %s ---", l.account.Address)

	info, err := l.Info()
	if err != nil {
		return nil, err
	}
	token := lookupToken(symbol, info)
	if err := CheckParams(Params{Account: l.account.Address, Token: token, Amount: amount}, FieldAccount|FieldToken|FieldAmount); err != nil {
		l.Errorf("参数校验失败: %v", err)
		return nil, err
	}

	value, err := unit.ToBaseUnitsInt(amount, token.Decimals)
	if err != nil {
		return nil, err
	}
	if l.account.Broadcaster == nil {
		return nil, xerr.New(xerr.ErrBroadcastUnavailable, "no broadcaster for account %s", l.account.Address)
	}

	l.Infof("充值 %s %s (%s base units) 到 locker %s", amount, token.Symbol, value, info.EthLocker)
	pending, err := l.account.Broadcaster.SendValue(l.ctx, info.EthLocker, value, *token)
	if err != nil {
		l.Errorf("链上广播失败: %v", err)
		// 本地校验错误已带错误码，只有 RPC 失败归为网络错误
		if xerr.CodeOf(err) == "" {
			err = xerr.Wrap(xerr.ErrNetworkUnavailable, err, "broadcast deposit")
		}
		return nil, err
	}
	l.Infof("--- deposit 已广播, txHash: %s ---", pending.Hash)
	return pending, nil
}

// DepositStatus looks up a deposit on chain and on everpay. The chain receipt is only
// checked when a chain reader is configured; a missing mint is not an error.
func (l *EverpayLogic) DepositStatus(chainTxHash string) (*types.DepositStatusResp, error) {
	if err := CheckParams(Params{ChainTxHash: chainTxHash}, FieldChainTxHash); err != nil {
		return nil, err
	}

	resp := &types.DepositStatusResp{}
	if reader := l.svcCtx.ChainReader; reader != nil {
		info, err := l.Info()
		if err != nil {
			return nil, err
		}
		l.Infof("步骤 1: 查询链上交易 %s...", chainTxHash)
		receipt, err := chain.InspectDeposit(l.ctx, reader, chainTxHash, info.EthLocker)
		if err != nil {
			l.Errorf("查询链上交易失败: %v", err)
			return nil, xerr.Wrap(xerr.ErrNetworkUnavailable, err, "inspect deposit %s", chainTxHash)
		}
		resp.Receipt = receipt
		if receipt.Pending || !receipt.Success {
			return resp, nil
		}
	}

	l.Infof("步骤 2: 查询 everpay mint 记录...")
	minted, err := l.svcCtx.Everpay.MintedTxByChainTxHash(l.ctx, chainTxHash)
	if err != nil {
		if resp.Receipt == nil {
			return nil, err
		}
		l.Infof("deposit %s not minted yet: %v", chainTxHash, err)
		return resp, nil
	}
	resp.Minted = minted
	return resp, nil
}

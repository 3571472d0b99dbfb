package everpay

import (
	"errors"

	"everpay-go/internal/types"
	"everpay-go/internal/xerr"
)

// Transfer sends amount of symbol to another everpay account.
func (l *EverpayLogic) Transfer(symbol, amount, to string) (*types.TransferOrWithdrawResult, error) {
	return l.SendEverpayTx(Transfer{Symbol: symbol, Amount: amount, To: to})
}

// Withdraw burns or quick-withdraws funds to a chain address. An empty to withdraws to the account itself.
func (l *EverpayLogic) Withdraw(symbol, amount, fee, chainType, to string, quickMode bool) (*types.TransferOrWithdrawResult, error) {
	if to == "" {
		to = l.account.Address
	}
	return l.SendEverpayTx(WithdrawIntent(symbol, amount, fee, chainType, to, quickMode))
}

// GetEverpayTxWithoutSig refreshes info if needed, validates the intent and builds the unsigned tx.
func (l *EverpayLogic) GetEverpayTxWithoutSig(intent Intent) (*types.EverpayTxWithoutSig, error) {
	info, err := l.Info()
	if err != nil {
		l.Errorf("获取 everpay info 失败: %v", err)
		return nil, err
	}

	symbol, amount, to := intent.params()
	token := lookupToken(symbol, info)
	fields := FieldAccount | FieldToken | FieldAmount
	if _, ok := intent.(Transfer); ok {
		fields |= FieldTo
	}
	if err := CheckParams(Params{Account: l.account.Address, Token: token, Amount: amount, To: to}, fields); err != nil {
		l.Errorf("参数校验失败: %v", err)
		return nil, err
	}

	in := BuildInput{
		Intent: intent,
		From:   l.account.Address,
		Token:  *token,
		Info:   info,
		Nonce:  l.svcCtx.Nonce.Next(),
	}
	if _, ok := intent.(QuickWithdraw); ok {
		express, err := l.ExpressInfo()
		if err != nil {
			l.Errorf("获取 express info 失败: %v", err)
			return nil, err
		}
		in.Express = &express
	}

	tx, err := BuildTx(in)
	if err != nil {
		l.Errorf("构建交易失败: %v", err)
		return nil, err
	}
	return tx, nil
}

// GetEverpayTxMessage returns the unsigned tx and the exact message that would be signed for it.
func (l *EverpayLogic) GetEverpayTxMessage(intent Intent) (*types.EverpayTxWithoutSig, string, error) {
	tx, err := l.GetEverpayTxWithoutSig(intent)
	if err != nil {
		return nil, "", err
	}
	return tx, TxMessage(tx), nil
}

// SendEverpayTx builds, signs and posts a transaction. Any failure aborts before submission
// except the submission itself; the ledger deduplicates by everHash.
func (l *EverpayLogic) SendEverpayTx(intent Intent) (*types.TransferOrWithdrawResult, error) {
	l.Infof("--- 开始处理 everpay %s 请求 for account %s ---", intent.Kind(), l.account.Address)

	l.Infof("步骤 1: 构建交易...")
	tx, err := l.GetEverpayTxWithoutSig(intent)
	if err != nil {
		return nil, err
	}
	l.Infof("交易构建成功: action=%s amount=%s fee=%s to=%s nonce=%s", tx.Action, tx.Amount, tx.Fee, tx.To, tx.Nonce)

	l.Infof("步骤 2: 生成待签名消息并签名...")
	message := TxMessage(tx)
	if l.account.Signer == nil {
		return nil, xerr.New(xerr.ErrSigningFailed, "no signer for account %s", l.account.Address)
	}
	sig, err := l.account.Signer.Sign(l.ctx, message)
	if err != nil {
		l.Errorf("签名失败: %v", err)
		return nil, xerr.Wrap(xerr.ErrSigningFailed, err, "sign everpay tx")
	}
	if sig == "" {
		l.Errorf("签名失败: 签名为空")
		return nil, xerr.New(xerr.ErrSigningFailed, "signer returned an empty signature")
	}
	everHash := EverHash(message)
	l.Infof("签名成功, everHash: %s", everHash)

	l.Infof("步骤 3: 提交交易到 everpay...")
	everpayTx := types.EverpayTx{
		EverpayTxWithoutSig: *tx,
		Sig:                 sig,
	}
	ack, err := l.svcCtx.Everpay.PostTx(l.ctx, &everpayTx)
	if err != nil {
		l.Errorf("提交交易失败 %s: %v", everHash, err)
		if !errors.Is(err, xerr.ErrNetworkUnavailable) {
			err = xerr.Wrap(xerr.ErrNetworkUnavailable, err, "post tx")
		}
		return nil, err
	}

	l.Infof("--- everpay %s 请求处理完成, everHash: %s, status: %s ---", intent.Kind(), everHash, ack.Status)
	return &types.TransferOrWithdrawResult{
		PostTxResult: *ack,
		EverpayTx:    everpayTx,
		EverHash:     everHash,
	}, nil
}

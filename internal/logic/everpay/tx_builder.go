package everpay

import (
	"fmt"
	"math/big"

	"everpay-go/internal/constant"
	"everpay-go/internal/infocache"
	"everpay-go/internal/types"
	"everpay-go/internal/unit"
	"everpay-go/internal/xerr"
)

// BuildInput is everything BuildTx needs. Express is only read for QuickWithdraw.
type BuildInput struct {
	Intent  Intent
	From    string
	Token   types.Token
	Info    types.EverpayInfo
	Express *types.ExpressInfo
	Nonce   string
}

// BuildTx computes fee, operative amount, receiver and data for an intent. It does no I/O.
func BuildTx(in BuildInput) (*types.EverpayTxWithoutSig, error) {
	var (
		action constant.Action
		to     string
		amount *big.Int
		fee    = big.NewInt(0)
		data   TxData = NoData{}
		err    error
	)

	switch it := in.Intent.(type) {
	case Transfer:
		action = constant.ActionTransfer
		to = it.To
		amount, err = unit.ToBaseUnitsInt(it.Amount, in.Token.Decimals)
		if err != nil {
			return nil, err
		}

	case QuickWithdraw:
		// 快速提现走 transfer，资金先转给 express 账户，由其在链上代付
		action = constant.ActionTransfer
		if in.Express == nil {
			return nil, xerr.New(xerr.ErrQuickWithdrawUnsupported, "express info unavailable")
		}
		entry, ok := infocache.FindExpressToken(in.Token.Tag(), *in.Express)
		if !ok {
			return nil, xerr.New(xerr.ErrQuickWithdrawUnsupported, "token %s not support quick withdraw", in.Token.Symbol)
		}

		limit, err := unit.ToBaseUnitsInt(entry.WalletBalance, in.Token.Decimals)
		if err != nil {
			return nil, err
		}
		var quickFee *big.Int
		if it.Fee != "" {
			quickFee, err = unit.ToBaseUnitsInt(it.Fee, in.Token.Decimals)
		} else {
			quickFee, err = unit.ParseBaseUnits(entry.WithdrawFee)
		}
		if err != nil {
			return nil, err
		}

		// amount 为全部数量，手续费只放入 data
		amount, err = unit.ToBaseUnitsInt(it.Amount, in.Token.Decimals)
		if err != nil {
			return nil, err
		}
		if amount.Cmp(quickFee) <= 0 {
			return nil, xerr.New(xerr.ErrAmountBelowFee, "amount %s <= quick withdraw fee %s", amount, quickFee)
		}
		if amount.Cmp(limit) > 0 {
			return nil, xerr.New(xerr.ErrInsufficientQuickLiquidity, "amount %s > express balance %s", amount, limit)
		}

		data = NewQuickWithdrawHint(it.ChainType, withdrawTo(it.To, in.From), quickFee.String())
		to = in.Express.Address

	case StandardWithdraw:
		action = constant.ActionWithdraw
		to = withdrawTo(it.To, in.From)
		if it.Fee != "" {
			fee, err = unit.ToBaseUnitsInt(it.Fee, in.Token.Decimals)
		} else {
			fee, err = burnFee(in.Token)
		}
		if err != nil {
			return nil, err
		}

		// 只有调用方指定了非原生链时才需要 targetChainType
		if it.ChainType != "" && in.Token.ChainType != it.ChainType && in.Token.SupportsChain(it.ChainType) {
			data = CrossChainHint{TargetChainType: it.ChainType}
		}

		// amount 为实际到账数量
		gross, err := unit.ToBaseUnitsInt(it.Amount, in.Token.Decimals)
		if err != nil {
			return nil, err
		}
		amount = new(big.Int).Sub(gross, fee)
		if amount.Sign() <= 0 {
			return nil, xerr.New(xerr.ErrAmountBelowFee, "amount %s <= burn fee %s", gross, fee)
		}

	default:
		return nil, fmt.Errorf("unknown intent %T", in.Intent)
	}

	encoded, err := EncodeTxData(data)
	if err != nil {
		return nil, err
	}

	symbol, _, _ := in.Intent.params()
	return &types.EverpayTxWithoutSig{
		TokenSymbol:  symbol,
		Action:       action,
		From:         in.From,
		To:           to,
		Amount:       amount.String(),
		Fee:          fee.String(),
		FeeRecipient: in.Info.FeeRecipient,
		Nonce:        in.Nonce,
		TokenID:      in.Token.ID,
		ChainType:    in.Token.ChainType,
		ChainID:      in.Token.ChainID,
		Data:         encoded,
		Version:      constant.TxVersion,
	}, nil
}

func burnFee(token types.Token) (*big.Int, error) {
	if token.BurnFee == "" {
		return big.NewInt(0), nil
	}
	return unit.ParseBaseUnits(token.BurnFee)
}

func withdrawTo(to, from string) string {
	if to != "" {
		return to
	}
	return from
}

package everpay

import (
	"strings"

	"everpay-go/internal/types"
	"everpay-go/internal/unit"
)

// Balance returns the account's balance of symbol in human units.
// An empty account falls back to the logic's own account.
func (l *EverpayLogic) Balance(symbol, account string) (string, error) {
	info, err := l.Info()
	if err != nil {
		return "", err
	}
	acc := l.accountOr(account)
	token := lookupToken(symbol, info)
	if err := CheckParams(Params{Account: acc, Token: token}, FieldAccount|FieldToken); err != nil {
		return "", err
	}

	res, err := l.svcCtx.Everpay.Balance(l.ctx, token.Tag(), acc)
	if err != nil {
		l.Errorf("查询余额失败 %s %s: %v", acc, token.Tag(), err)
		return "", err
	}
	return unit.ToHumanUnits(res.Balance.Amount, res.Balance.Decimals)
}

// Balances lists every balance of the account in human units.
func (l *EverpayLogic) Balances(account string) ([]types.BalanceItem, error) {
	if _, err := l.Info(); err != nil {
		return nil, err
	}
	acc := l.accountOr(account)
	if err := CheckParams(Params{Account: acc}, FieldAccount); err != nil {
		return nil, err
	}

	res, err := l.svcCtx.Everpay.Balances(l.ctx, acc)
	if err != nil {
		l.Errorf("查询余额列表失败 %s: %v", acc, err)
		return nil, err
	}

	items := make([]types.BalanceItem, 0, len(res.Balances))
	for _, b := range res.Balances {
		balance, err := unit.ToHumanUnits(b.Amount, b.Decimals)
		if err != nil {
			return nil, err
		}
		chainType, symbol, address := types.SplitTokenTag(b.Tag)
		items = append(items, types.BalanceItem{
			ChainType: chainType,
			Symbol:    strings.ToUpper(symbol),
			Address:   address,
			Balance:   balance,
		})
	}
	return items, nil
}

// TxsParams filters a history query. Zero values are not sent.
type TxsParams struct {
	Page   int
	Symbol string
	Action string
}

func (l *EverpayLogic) mergedTxsFilter(params TxsParams) (types.TxsFilter, error) {
	var filter types.TxsFilter
	if params.Page > 0 {
		filter.Page = params.Page
	}
	if params.Symbol != "" {
		info, err := l.Info()
		if err != nil {
			return filter, err
		}
		token := lookupToken(params.Symbol, info)
		if err := CheckParams(Params{Token: token}, FieldToken); err != nil {
			return filter, err
		}
		filter.TokenID = token.ID
	}
	if params.Action != "" {
		if err := CheckParams(Params{Action: params.Action}, FieldAction); err != nil {
			return filter, err
		}
		filter.Action = params.Action
	}
	return filter, nil
}

// Txs lists transactions of all accounts.
func (l *EverpayLogic) Txs(params TxsParams) (*types.TxsResult, error) {
	filter, err := l.mergedTxsFilter(params)
	if err != nil {
		return nil, err
	}
	return l.svcCtx.Everpay.Txs(l.ctx, filter)
}

// TxsByAccount lists transactions of one account, defaulting to the logic's account.
func (l *EverpayLogic) TxsByAccount(account string, params TxsParams) (*types.TxsResult, error) {
	acc := l.accountOr(account)
	if err := CheckParams(Params{Account: acc}, FieldAccount); err != nil {
		return nil, err
	}
	filter, err := l.mergedTxsFilter(params)
	if err != nil {
		return nil, err
	}
	filter.Account = acc
	return l.svcCtx.Everpay.Txs(l.ctx, filter)
}

func (l *EverpayLogic) TxByHash(everHash string) (*types.EverpayTransaction, error) {
	if err := CheckParams(Params{EverHash: everHash}, FieldEverHash); err != nil {
		return nil, err
	}
	return l.svcCtx.Everpay.TxByHash(l.ctx, everHash)
}

// MintedTxByChainTxHash finds the everpay mint created for an on-chain deposit.
func (l *EverpayLogic) MintedTxByChainTxHash(chainTxHash string) (*types.EverpayTransaction, error) {
	if err := CheckParams(Params{ChainTxHash: chainTxHash}, FieldChainTxHash); err != nil {
		return nil, err
	}
	return l.svcCtx.Everpay.MintedTxByChainTxHash(l.ctx, chainTxHash)
}

package everpay

import (
	"everpay-go/internal/constant"
	"everpay-go/internal/types"
	"everpay-go/internal/unit"
	"everpay-go/internal/xerr"
)

// Field selects which checks CheckParams runs.
type Field uint

const (
	FieldAccount Field = 1 << iota
	FieldToken
	FieldAmount
	FieldTo
	FieldEverHash
	FieldChainTxHash
	FieldAction
)

// Params are the values CheckParams inspects. Token is nil when the symbol did not resolve.
type Params struct {
	Account     string
	Token       *types.Token
	Amount      string
	To          string
	EverHash    string
	ChainTxHash string
	Action      string
}

// CheckParams validates the selected fields in a fixed order: account, token, amount,
// destination, then lookup hashes and action. It never touches the network.
func CheckParams(p Params, fields Field) error {
	if fields&FieldAccount != 0 && p.Account == "" {
		return xerr.New(xerr.ErrMissingAccount, "account is required")
	}
	if fields&FieldToken != 0 && p.Token == nil {
		return xerr.New(xerr.ErrTokenNotFound, "token not found")
	}
	if fields&FieldAmount != 0 && !unit.IsValidAmount(p.Amount) {
		return xerr.New(xerr.ErrInvalidAmount, "invalid amount %q", p.Amount)
	}
	if fields&FieldTo != 0 && p.To == "" {
		return xerr.New(xerr.ErrMissingDestination, "to is required")
	}
	if fields&FieldEverHash != 0 && p.EverHash == "" {
		return xerr.New(xerr.ErrMissingHash, "everHash is required")
	}
	if fields&FieldChainTxHash != 0 && p.ChainTxHash == "" {
		return xerr.New(xerr.ErrMissingHash, "chainTxHash is required")
	}
	if fields&FieldAction != 0 && !constant.IsValidAction(p.Action) {
		return xerr.New(xerr.ErrInvalidAction, "invalid action %q", p.Action)
	}
	return nil
}

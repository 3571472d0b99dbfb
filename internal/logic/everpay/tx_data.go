package everpay

import (
	"encoding/json"
	"fmt"

	"everpay-go/internal/constant"
)

// TxData is the auxiliary payload carried in a transaction's data field.
// It is one of NoData, CrossChainHint or QuickWithdrawHint.
type TxData interface {
	isTxData()
}

type NoData struct{}

// CrossChainHint tells the ledger which chain a multi-chain token is withdrawn to.
type CrossChainHint struct {
	TargetChainType string `json:"targetChainType"`
}

// QuickWithdrawHint tells the express provider where to relay a quick withdraw.
// Field order is part of the signed message.
type QuickWithdrawHint struct {
	AppID             string `json:"appId"`
	WithdrawAction    string `json:"withdrawAction"`
	WithdrawTo        string `json:"withdrawTo"`
	WithdrawChainType string `json:"withdrawChainType,omitempty"` // omitted when the caller names no chain
	WithdrawFee       string `json:"withdrawFee"` // base units
}

func (NoData) isTxData()            {}
func (CrossChainHint) isTxData()    {}
func (QuickWithdrawHint) isTxData() {}

// NewQuickWithdrawHint fills in the express app constants.
func NewQuickWithdrawHint(chainType, to, fee string) QuickWithdrawHint {
	return QuickWithdrawHint{
		AppID:             constant.ExpressAppID,
		WithdrawAction:    constant.ExpressWithdrawAction,
		WithdrawTo:        to,
		WithdrawChainType: chainType,
		WithdrawFee:       fee,
	}
}

// EncodeTxData serializes d for the data field; NoData and nil encode as "".
func EncodeTxData(d TxData) (string, error) {
	switch v := d.(type) {
	case nil, NoData:
		return "", nil
	case CrossChainHint, QuickWithdrawHint:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown tx data %T", d)
	}
}

// DecodeTxData parses a data field produced by EncodeTxData.
func DecodeTxData(s string) (TxData, error) {
	if s == "" {
		return NoData{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, fmt.Errorf("invalid tx data: %w", err)
	}
	if _, ok := fields["appId"]; ok {
		var q QuickWithdrawHint
		if err := json.Unmarshal([]byte(s), &q); err != nil {
			return nil, fmt.Errorf("invalid quick withdraw data: %w", err)
		}
		return q, nil
	}
	if _, ok := fields["targetChainType"]; ok {
		var c CrossChainHint
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("invalid cross chain data: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown tx data: %s", s)
}

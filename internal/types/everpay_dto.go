package types

import (
	"encoding/json"
	"strings"

	"everpay-go/internal/constant"
)

// Token is one entry of the everpay token list.
type Token struct {
	ID          string      `json:"id"`
	Symbol      string      `json:"symbol"`
	Decimals    int         `json:"decimals"`
	TotalSupply json.Number `json:"totalSupply"`
	ChainType   string      `json:"chainType"` // 多链资产为逗号分隔，例如 "arweave,ethereum"
	ChainID     string      `json:"chainID"`
	BurnFee     string      `json:"burnFee"` // base units
}

// Tag returns the composite key chainType-symbol-address. Ids on ethereum-like
// chains are lower-cased so tags compare case-insensitively.
func (t Token) Tag() string {
	chainTypes := strings.Split(t.ChainType, ",")
	ids := strings.Split(t.ID, ",")
	for i, id := range ids {
		if i < len(chainTypes) && constant.IsEthereumLike(chainTypes[i]) {
			ids[i] = strings.ToLower(id)
		}
	}
	return strings.ToLower(t.ChainType) + "-" + strings.ToLower(t.Symbol) + "-" + strings.Join(ids, ",")
}

// ChainTypes splits a multi-chain token's chain type list.
func (t Token) ChainTypes() []string {
	return strings.Split(t.ChainType, ",")
}

// SupportsChain reports whether chainType is one of the token's chains.
func (t Token) SupportsChain(chainType string) bool {
	for _, c := range t.ChainTypes() {
		if c == chainType {
			return true
		}
	}
	return false
}

// MatchTokenTag compares two token tags ignoring case.
func MatchTokenTag(a, b string) bool {
	return strings.EqualFold(a, b)
}

// SplitTokenTag breaks a tag into chain type, symbol and address.
func SplitTokenTag(tag string) (chainType, symbol, address string) {
	parts := strings.SplitN(tag, "-", 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	default:
		return tag, "", ""
	}
}

// EverpayInfo is the network metadata served by GET /info.
type EverpayInfo struct {
	EthLocker    string  `json:"ethLocker"`
	Owner        string  `json:"owner"`
	TxVersion    string  `json:"txVersion"`
	EthChainID   string  `json:"ethChainID"`
	FeeRecipient string  `json:"feeRecipient"`
	TokenList    []Token `json:"tokenList"`
}

// ExpressToken is the express wallet's state for one token.
type ExpressToken struct {
	TokenTag      string `json:"tokenTag"`
	WalletBalance string `json:"walletBalance"` // human units
	WithdrawFee   string `json:"withdrawFee"`   // base units
}

// ExpressInfo describes the quick withdraw liquidity provider.
type ExpressInfo struct {
	Address string         `json:"address"`
	Tokens  []ExpressToken `json:"tokens"`
}

// DexInfo describes the everpay swap service.
type DexInfo struct {
	Address      string   `json:"address"`
	FeeRecipient string   `json:"feeRecipient"`
	TokenList    []string `json:"tokenList"`
}

// EverpayTxWithoutSig is the unsigned transaction whose canonical message gets signed.
type EverpayTxWithoutSig struct {
	TokenSymbol  string          `json:"tokenSymbol"`
	Action       constant.Action `json:"action"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Amount       string          `json:"amount"`
	Fee          string          `json:"fee"`
	FeeRecipient string          `json:"feeRecipient"`
	Nonce        string          `json:"nonce"`
	TokenID      string          `json:"tokenID"`
	ChainType    string          `json:"chainType"`
	ChainID      string          `json:"chainID"`
	Data         string          `json:"data"`
	Version      string          `json:"version"`
}

// EverpayTx is a signed transaction as posted to the ledger.
type EverpayTx struct {
	EverpayTxWithoutSig
	Sig string `json:"sig"`
}

// EverpayTransaction is a ledger history record.
type EverpayTransaction struct {
	ID                string          `json:"id"`
	TokenSymbol       string          `json:"tokenSymbol"`
	Action            constant.Action `json:"action"`
	From              string          `json:"from"`
	To                string          `json:"to"`
	Amount            string          `json:"amount"`
	Fee               string          `json:"fee"`
	FeeRecipient      string          `json:"feeRecipient"`
	Nonce             int64           `json:"nonce"`
	TokenID           string          `json:"tokenID"`
	ChainType         string          `json:"chainType"`
	ChainID           string          `json:"chainID"`
	Data              string          `json:"data"`
	Version           string          `json:"version"`
	Sig               string          `json:"sig"`
	EverHash          string          `json:"everHash"`
	Status            string          `json:"status"`
	InternalStatus    string          `json:"internalStatus"`
	Timestamp         int64           `json:"timestamp"`
	TargetChainTxHash string          `json:"targetChainTxHash"`
}

// TxsResult is a page of history.
type TxsResult struct {
	Accid       string               `json:"accid,omitempty"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	Txs         []EverpayTransaction `json:"txs"`
}

// AccountBalance is a raw ledger balance in base units.
type AccountBalance struct {
	Tag      string `json:"tag"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
}

type BalanceResult struct {
	Accid   string         `json:"accid"`
	Balance AccountBalance `json:"balance"`
}

type BalancesResult struct {
	Accid    string           `json:"accid"`
	Balances []AccountBalance `json:"balances"`
}

// BalanceItem is a balance converted to human units.
type BalanceItem struct {
	ChainType string `json:"chainType"`
	Symbol    string `json:"symbol"`
	Address   string `json:"address"`
	Balance   string `json:"balance"`
}

// PostTxResult is the ledger's acknowledgement of a submitted transaction.
type PostTxResult struct {
	Status string `json:"status"`
}

// TransferOrWithdrawResult merges the ack with what was submitted.
type TransferOrWithdrawResult struct {
	PostTxResult
	EverpayTx EverpayTx `json:"everpayTx"`
	EverHash  string    `json:"everHash"`
}

// PendingTx is an on-chain deposit that has been broadcast but not confirmed.
type PendingTx struct {
	Hash      string `json:"hash"`
	ChainType string `json:"chainType"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"` // base units
	Nonce     uint64 `json:"nonce"`
}

// TxsFilter narrows a history query.
type TxsFilter struct {
	Page    int    `json:"page,omitempty"`
	TokenID string `json:"tokenId,omitempty"`
	Action  string `json:"action,omitempty"`
	Account string `json:"account,omitempty"`
}

// DepositEvent is value that reached the everpay locker in a mined deposit.
type DepositEvent struct {
	EventType string `json:"eventType"` // NativeTransfer or Transfer
	From      string `json:"from"`
	To        string `json:"to"`
	TokenAddr string `json:"tokenAddr"` // zero address for the native coin
	Amount    string `json:"amount"`    // base units
}

// DepositReceipt is the on-chain state of a deposit transaction.
type DepositReceipt struct {
	TxHash      string         `json:"txHash"`
	Pending     bool           `json:"pending"`
	Success     bool           `json:"success"`
	BlockNumber uint64         `json:"blockNumber,omitempty"`
	Events      []DepositEvent `json:"events,omitempty"`
}

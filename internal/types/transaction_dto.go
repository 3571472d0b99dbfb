package types

// TransferReq defines the request for POST /everpay/transfer.
type TransferReq struct {
	Account string `json:"account,optional"`
	Symbol  string `json:"symbol,optional"`
	Amount  string `json:"amount,optional"` // human units, e.g. "1.5"
	To      string `json:"to,optional"`
}

// WithdrawReq defines the request for POST /everpay/withdraw.
type WithdrawReq struct {
	Account   string `json:"account,optional"`
	Symbol    string `json:"symbol,optional"`
	Amount    string `json:"amount,optional"`
	Fee       string `json:"fee,optional"`        // human units; empty uses the burn fee or express fee
	ChainType string `json:"chain_type,optional"` // target chain for multi-chain tokens
	To        string `json:"to,optional"`         // defaults to the account itself
	QuickMode bool   `json:"quick_mode,optional"`
}

// TxMessageReq previews the canonical message of a transfer or withdraw without signing it.
type TxMessageReq struct {
	Type string `json:"type,options=transfer|withdraw"`
	WithdrawReq
}

// TxMessageResp defines the response of POST /everpay/message.
type TxMessageResp struct {
	Message  string              `json:"message"`
	Tx       EverpayTxWithoutSig `json:"tx"`
	EverHash string              `json:"ever_hash"`
}

// DepositReq defines the request for POST /everpay/deposit.
type DepositReq struct {
	Account string `json:"account,optional"`
	Symbol  string `json:"symbol,optional"`
	Amount  string `json:"amount,optional"`
}

// DepositResp defines the response of a deposit broadcast.
type DepositResp struct {
	PendingTx
	ExplorerURL string `json:"explorer_url,omitempty"`
	Message     string `json:"message"`
	Status      string `json:"status"`
}

// BalanceReq defines the request for POST /everpay/balance.
type BalanceReq struct {
	Account string `json:"account,optional"`
	Symbol  string `json:"symbol,optional"`
}

// BalanceResp defines the response of POST /everpay/balance.
type BalanceResp struct {
	Account string `json:"account"`
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

// BalancesReq defines the request for POST /everpay/balances.
type BalancesReq struct {
	Account string `json:"account,optional"`
}

// BalancesResp defines the response of POST /everpay/balances.
type BalancesResp struct {
	Account  string        `json:"account"`
	Balances []BalanceItem `json:"balances"`
}

// TxsReq defines the request for POST /everpay/txs. An empty account lists all transactions.
type TxsReq struct {
	Account string `json:"account,optional"`
	Page    int    `json:"page,optional"`
	Symbol  string `json:"symbol,optional"`
	Action  string `json:"action,optional"`
}

// TxByHashReq defines the request for POST /everpay/tx.
type TxByHashReq struct {
	EverHash string `json:"ever_hash,optional"`
}

// MintedTxReq defines the request for POST /everpay/minted_tx.
type MintedTxReq struct {
	ChainTxHash string `json:"chain_tx_hash,optional"`
}

// InfoRefreshReq drops one cached info snapshot so the next read refetches it.
type InfoRefreshReq struct {
	Kind string `json:"kind,options=everpay|express|dex"`
}

// DepositStatusReq defines the request for POST /everpay/deposit_status.
type DepositStatusReq struct {
	ChainTxHash string `json:"chain_tx_hash,optional"`
}

// DepositStatusResp joins the chain receipt with the everpay mint, when either is known.
type DepositStatusResp struct {
	Receipt *DepositReceipt     `json:"receipt,omitempty"`
	Minted  *EverpayTransaction `json:"minted,omitempty"`
}

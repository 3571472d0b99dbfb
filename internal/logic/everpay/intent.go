package everpay

// Intent is what the caller wants to do. It is one of Transfer, StandardWithdraw or QuickWithdraw.
type Intent interface {
	Kind() string
	params() (symbol, amount, to string)
}

// Transfer moves funds between everpay accounts. Fee is always zero.
type Transfer struct {
	Symbol string
	Amount string // human units
	To     string
}

// StandardWithdraw burns funds on everpay and releases them on chain, minus the burn fee.
type StandardWithdraw struct {
	Symbol    string
	Amount    string // human units, fee included
	Fee       string // human units; empty uses the token's burn fee
	ChainType string // target chain; empty uses the token's first chain
	To        string // empty withdraws to the sender
}

// QuickWithdraw pays the express provider, which relays the funds on chain immediately.
type QuickWithdraw struct {
	Symbol    string
	Amount    string // human units, the full amount sent to the provider
	Fee       string // human units; empty uses the provider's fee
	ChainType string
	To        string
}

func (t Transfer) Kind() string         { return "transfer" }
func (w StandardWithdraw) Kind() string { return "withdraw" }
func (q QuickWithdraw) Kind() string    { return "quick_withdraw" }

func (t Transfer) params() (string, string, string)         { return t.Symbol, t.Amount, t.To }
func (w StandardWithdraw) params() (string, string, string) { return w.Symbol, w.Amount, w.To }
func (q QuickWithdraw) params() (string, string, string)    { return q.Symbol, q.Amount, q.To }

// WithdrawIntent picks the withdraw variant for quickMode.
func WithdrawIntent(symbol, amount, fee, chainType, to string, quickMode bool) Intent {
	if quickMode {
		return QuickWithdraw{Symbol: symbol, Amount: amount, Fee: fee, ChainType: chainType, To: to}
	}
	return StandardWithdraw{Symbol: symbol, Amount: amount, Fee: fee, ChainType: chainType, To: to}
}

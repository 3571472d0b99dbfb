package constant

import "time"

// TxVersion is the canonical message format version stamped on every transaction.
const TxVersion = "v1"

// InfoTTL is how long a fetched info snapshot stays fresh.
const InfoTTL = 3 * time.Minute

// Action is the everpay transaction action tag.
type Action string

const (
	ActionTransfer Action = "transfer"
	ActionWithdraw Action = "burn"
	ActionDeposit  Action = "mint"
)

// IsValidAction checks a history filter action.
func IsValidAction(action string) bool {
	switch Action(action) {
	case ActionTransfer, ActionWithdraw, ActionDeposit:
		return true
	}
	return false
}

// InfoKind names one slot of the info cache.
type InfoKind string

const (
	InfoKindEverpay InfoKind = "everpay"
	InfoKindExpress InfoKind = "express"
	InfoKindDex     InfoKind = "dex"
)

const (
	EverpayHost    = "https://api.everpay.io"
	EverpayDevHost = "https://api-dev.everpay.io"
	ExpressHost    = "https://express.everpay.io"
	ExpressDevHost = "https://express-dev.everpay.io"
	DexHost        = "https://swap.everpay.io"
	DexDevHost     = "https://swap-dev.everpay.io"
)

// quick withdraw payload constants understood by the express service
const (
	ExpressAppID          = "express"
	ExpressWithdrawAction = "pay"
)

// ZeroAddress is the token id everpay uses for a chain's native coin.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

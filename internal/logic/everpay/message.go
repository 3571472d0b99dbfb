package everpay

import (
	"strings"

	"everpay-go/internal/types"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxMessageKeys is the fixed field order of the canonical message (version v1).
var TxMessageKeys = []string{
	"tokenSymbol", "action", "from", "to", "amount", "fee", "feeRecipient",
	"nonce", "tokenID", "chainType", "chainID", "data", "version",
}

// TxMessage renders tx as "key:value" lines joined by "\n" in TxMessageKeys order.
// This string is what gets signed; changing the format breaks every signature.
func TxMessage(tx *types.EverpayTxWithoutSig) string {
	values := []string{
		tx.TokenSymbol, string(tx.Action), tx.From, tx.To, tx.Amount, tx.Fee, tx.FeeRecipient,
		tx.Nonce, tx.TokenID, tx.ChainType, tx.ChainID, tx.Data, tx.Version,
	}

	var sb strings.Builder
	for i, key := range TxMessageKeys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(key)
		sb.WriteByte(':')
		sb.WriteString(values[i])
	}
	return sb.String()
}

// EverHash is keccak256 of the EIP-191 personal message prefix plus message, 0x hex.
func EverHash(message string) string {
	return hexutil.Encode(accounts.TextHash([]byte(message)))
}

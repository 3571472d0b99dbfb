package chain

import "fmt"

// ExplorerTxURL builds a block explorer link for a deposit. Unknown chains get an empty link.
func ExplorerTxURL(chainType string, chainID int64, txHash string) string {
	switch {
	case chainType == "ethereum" && chainID == 1:
		return fmt.Sprintf("https://etherscan.io/tx/%s", txHash)
	case chainType == "ethereum" && chainID == 5:
		return fmt.Sprintf("https://goerli.etherscan.io/tx/%s", txHash)
	case chainType == "ethereum" && chainID == 11155111:
		return fmt.Sprintf("https://sepolia.etherscan.io/tx/%s", txHash)
	case chainType == "moonbase":
		return fmt.Sprintf("https://moonbase.moonscan.io/tx/%s", txHash)
	case chainType == "bsc" && chainID == 56:
		return fmt.Sprintf("https://bscscan.com/tx/%s", txHash)
	case chainType == "bsc" && chainID == 97:
		return fmt.Sprintf("https://testnet.bscscan.com/tx/%s", txHash)
	case chainType == "conflux":
		return fmt.Sprintf("https://evm.confluxscan.io/tx/%s", txHash)
	default:
		return ""
	}
}

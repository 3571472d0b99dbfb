package constant

import "strings"

type ChainType string

const (
	ChainTypeEthereum ChainType = "ethereum"
	ChainTypeMoonbase ChainType = "moonbase"
	ChainTypeConflux  ChainType = "conflux"
	ChainTypeBsc      ChainType = "bsc"
	ChainTypeArweave  ChainType = "arweave"
)

// SupportedChains lists the chain types a local wallet can be initialized for.
// Arweave accounts sign with RSA keys and are not created here.
var SupportedChains = []ChainType{
	ChainTypeEthereum,
	ChainTypeMoonbase,
	ChainTypeConflux,
	ChainTypeBsc,
}

// IsChainSupported checks if a given chain type is in the list of supported chains.
func IsChainSupported(chain string) bool {
	for _, supportedChain := range SupportedChains {
		if strings.EqualFold(string(supportedChain), chain) {
			return true
		}
	}
	return false
}

// IsEthereumLike reports whether addresses on chain are hex and case-insensitive.
func IsEthereumLike(chain string) bool {
	return IsChainSupported(chain)
}

package config

import (
	"time"

	"github.com/zeromicro/go-zero/rest"
)

type ChainConf struct {
	Name      string `json:"Name"`
	RpcUrl    string `json:"RpcUrl"`
	ChainId   int64  `json:"ChainId"`
	ChainType string `json:"ChainType,optional"`
}

type EverpayConf struct {
	// Empty hosts fall back to the production or dev endpoints depending on Debug.
	ApiHost     string        `json:",optional"`
	ExpressHost string        `json:",optional"`
	DexHost     string        `json:",optional"`
	Debug       bool          `json:",default=false"`
	InfoTTL     time.Duration `json:",default=3m"`
	Timeout     time.Duration `json:",default=10s"`
	// Default account used when a request does not name one.
	Account    string `json:",optional"`
	PrivateKey string `json:",optional"`
	// Key into Chains used to broadcast deposits.
	DepositChain string `json:",optional"`
}

type Config struct {
	rest.RestConf
	Postgres struct {
		DSN string `json:",optional"`
	}
	Everpay EverpayConf
	// Chains maps a chain name (e.g., "ETH") to its configuration.
	Chains map[string]ChainConf `json:",optional"`
}

package types

// WalletInitReq defines the request body for initializing a new everpay account.
// 钱包私钥保存在本地数据库，签名时按地址读取
type WalletInitReq struct {
	// The chain type the account signs for, e.g. "ethereum".
	ChainType string `json:"chain_type"`
	// A user-defined name for the wallet.
	Name string `json:"name,optional"`
	// The user's phone number (optional).
	PhoneNumber string `json:"phone_number,optional"`
	// The user's email address (optional).
	Email string `json:"email,optional"`
}

// WalletInitResp defines the response body for a successful wallet initialization.
type WalletInitResp struct {
	// The chain type the account signs for.
	ChainType string `json:"chain_type"`
	// The everpay account, which is the public address of the new key.
	Address string `json:"address"`
}

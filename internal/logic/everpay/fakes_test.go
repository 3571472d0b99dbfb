package everpay

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"everpay-go/internal/infocache"
	"everpay-go/internal/nonce"
	"everpay-go/internal/signer"
	"everpay-go/internal/svc"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testFeeAddress = "0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1"
	testExpress    = "0xE3ee8bD3aBf9C2A7A2C0F5C25B1A0b8c6aF1a2C4"
	testLocker     = "0x38741a69785e84399fcf7c5ad61d572f7ecb1dab"
	testReceiver   = "0x26361130d5d6E798E9319114643AF8c868412859"
)

var (
	usdtToken = types.Token{
		ID:        "0xdac17f958d2ee523a2206206994597c13d831ec7",
		Symbol:    "USDT",
		Decimals:  6,
		ChainType: "ethereum",
		ChainID:   "1",
		BurnFee:   "1000000",
	}
	arToken = types.Token{
		ID:        "AR,0x4fadc7a98f2dc96510e42dd1a74141eeae0c1543",
		Symbol:    "AR",
		Decimals:  12,
		ChainType: "arweave,ethereum",
		ChainID:   "0,1",
		BurnFee:   "0",
	}
	ethToken = types.Token{
		ID:        "0x0000000000000000000000000000000000000000",
		Symbol:    "ETH",
		Decimals:  18,
		ChainType: "ethereum",
		ChainID:   "1",
		BurnFee:   "0",
	}
)

func testInfo() types.EverpayInfo {
	return types.EverpayInfo{
		EthLocker:    testLocker,
		Owner:        "0xowner",
		TxVersion:    "v1",
		EthChainID:   "1",
		FeeRecipient: testFeeAddress,
		TokenList:    []types.Token{usdtToken, arToken, ethToken},
	}
}

func testExpressInfo(walletBalance string) types.ExpressInfo {
	return types.ExpressInfo{
		Address: testExpress,
		Tokens: []types.ExpressToken{
			{TokenTag: usdtToken.Tag(), WalletBalance: walletBalance, WithdrawFee: "500000"},
		},
	}
}

// fakeLedger records every call and answers from fixed fixtures.
type fakeLedger struct {
	mu sync.Mutex

	info    types.EverpayInfo
	express types.ExpressInfo
	infoErr error
	postErr error

	infoCalls    int
	expressCalls int
	posted       []types.EverpayTx
	txsFilters   []types.TxsFilter
	balanceTags  []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{info: testInfo(), express: testExpressInfo("1000")}
}

func (f *fakeLedger) Info(context.Context) (types.EverpayInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeLedger) ExpressInfo(context.Context) (types.ExpressInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expressCalls++
	return f.express, nil
}

func (f *fakeLedger) DexInfo(context.Context) (types.DexInfo, error) {
	return types.DexInfo{Address: "0xdex"}, nil
}

func (f *fakeLedger) Balance(_ context.Context, tokenTag, account string) (*types.BalanceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceTags = append(f.balanceTags, tokenTag)
	return &types.BalanceResult{
		Accid:   account,
		Balance: types.AccountBalance{Tag: tokenTag, Amount: "1500000", Decimals: 6},
	}, nil
}

func (f *fakeLedger) Balances(_ context.Context, account string) (*types.BalancesResult, error) {
	return &types.BalancesResult{
		Accid: account,
		Balances: []types.AccountBalance{
			{Tag: usdtToken.Tag(), Amount: "99000000", Decimals: 6},
			{Tag: "ethereum-eth-0x0000000000000000000000000000000000000000", Amount: "1000000000000000000", Decimals: 18},
		},
	}, nil
}

func (f *fakeLedger) Txs(_ context.Context, filter types.TxsFilter) (*types.TxsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txsFilters = append(f.txsFilters, filter)
	return &types.TxsResult{Accid: filter.Account, CurrentPage: 1, TotalPages: 1}, nil
}

func (f *fakeLedger) TxByHash(_ context.Context, everHash string) (*types.EverpayTransaction, error) {
	return &types.EverpayTransaction{EverHash: everHash, Status: "confirmed"}, nil
}

func (f *fakeLedger) MintedTxByChainTxHash(_ context.Context, chainTxHash string) (*types.EverpayTransaction, error) {
	return &types.EverpayTransaction{ID: chainTxHash, Action: "mint"}, nil
}

func (f *fakeLedger) PostTx(_ context.Context, tx *types.EverpayTx) (*types.PostTxResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.posted = append(f.posted, *tx)
	return &types.PostTxResult{Status: "ok"}, nil
}

func (f *fakeLedger) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posted)
}

// fakeBroadcaster records deposits instead of sending them.
type fakeBroadcaster struct {
	to    string
	value *big.Int
	token types.Token
	err   error
}

func (b *fakeBroadcaster) SendValue(_ context.Context, to string, value *big.Int, token types.Token) (*types.PendingTx, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.to, b.value, b.token = to, value, token
	return &types.PendingTx{Hash: "0xchainhash", ChainType: "ethereum", To: to, Value: value.String()}, nil
}

func newTestSvcCtx(ledger *fakeLedger) *svc.ServiceContext {
	return &svc.ServiceContext{
		Everpay:   ledger,
		InfoCache: infocache.New(),
		Nonce:     nonce.Fixed("1700000000000"),
	}
}

func newTestLogic(t *testing.T, ledger *fakeLedger) (*EverpayLogic, *signer.KeySigner) {
	t.Helper()
	s, err := signer.NewKeySigner(testPrivateKey)
	require.NoError(t, err)
	account := Account{Address: s.Address(), Signer: s}
	return NewEverpayLogic(context.Background(), newTestSvcCtx(ledger), account), s
}

var errBoom = xerr.New(xerr.ErrNetworkUnavailable, "boom")

package everpay

import (
	"context"

	"everpay-go/internal/chain"
	"everpay-go/internal/infocache"
	"everpay-go/internal/signer"
	"everpay-go/internal/svc"
	"everpay-go/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

// Account is who a call acts for: the everpay address plus the capabilities
// that may act on its behalf. Either capability may be nil for read-only use.
type Account struct {
	Address     string
	Signer      signer.Signer
	Broadcaster chain.Broadcaster
}

type EverpayLogic struct {
	ctx     context.Context
	svcCtx  *svc.ServiceContext
	account Account
	logx.Logger
}

func NewEverpayLogic(ctx context.Context, svcCtx *svc.ServiceContext, account Account) *EverpayLogic {
	return &EverpayLogic{
		ctx:     ctx,
		svcCtx:  svcCtx,
		account: account,
		Logger:  logx.WithContext(ctx),
	}
}

// Info returns the cached everpay network info.
func (l *EverpayLogic) Info() (types.EverpayInfo, error) {
	return l.svcCtx.InfoCache.Everpay(l.ctx, l.svcCtx.Everpay.Info)
}

// ExpressInfo returns the cached quick withdraw provider info.
func (l *EverpayLogic) ExpressInfo() (types.ExpressInfo, error) {
	return l.svcCtx.InfoCache.Express(l.ctx, l.svcCtx.Everpay.ExpressInfo)
}

// DexInfo returns the cached swap info.
func (l *EverpayLogic) DexInfo() (types.DexInfo, error) {
	return l.svcCtx.InfoCache.Dex(l.ctx, l.svcCtx.Everpay.DexInfo)
}

func (l *EverpayLogic) accountOr(account string) string {
	if account != "" {
		return account
	}
	return l.account.Address
}

// lookupToken resolves symbol, returning nil so CheckParams can report it in order.
func lookupToken(symbol string, info types.EverpayInfo) *types.Token {
	token, err := infocache.ResolveToken(symbol, info.TokenList)
	if err != nil {
		return nil
	}
	return &token
}

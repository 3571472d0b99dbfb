package handler

import (
	"errors"
	"net/http"

	"everpay-go/internal/chain"
	"everpay-go/internal/constant"
	"everpay-go/internal/logic/everpay"
	"everpay-go/internal/svc"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// signingAccount resolves the account a request acts for and attaches its signer.
// An empty address is left for the logic to reject.
func signingAccount(svcCtx *svc.ServiceContext, address string) everpay.Account {
	if address == "" {
		address = svcCtx.DefaultAccount()
	}
	if address == "" {
		return everpay.Account{}
	}
	return everpay.Account{Address: address, Signer: svcCtx.AccountSigner(address)}
}

func InfoHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.Info()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func ExpressInfoHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.ExpressInfo()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func DexInfoHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.DexInfo()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// InfoRefreshHandler 清除 info 缓存
func InfoRefreshHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.InfoRefreshReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}
		if err := svcCtx.InfoCache.Invalidate(constant.InfoKind(req.Kind)); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		logx.WithContext(r.Context()).Infof("info cache %s invalidated", req.Kind)
		httpx.Ok(w)
	}
}

func BalanceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BalanceReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{Address: svcCtx.DefaultAccount()})
		balance, err := l.Balance(req.Symbol, req.Account)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		account := req.Account
		if account == "" {
			account = svcCtx.DefaultAccount()
		}
		httpx.OkJsonCtx(r.Context(), w, &types.BalanceResp{
			Account: account,
			Symbol:  req.Symbol,
			Balance: balance,
		})
	}
}

func BalancesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BalancesReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{Address: svcCtx.DefaultAccount()})
		balances, err := l.Balances(req.Account)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		account := req.Account
		if account == "" {
			account = svcCtx.DefaultAccount()
		}
		httpx.OkJsonCtx(r.Context(), w, &types.BalancesResp{
			Account:  account,
			Balances: balances,
		})
	}
}

// TxsHandler lists history; with an account it lists only that account's transactions.
func TxsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TxsReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		params := everpay.TxsParams{Page: req.Page, Symbol: req.Symbol, Action: req.Action}
		var (
			resp *types.TxsResult
			err  error
		)
		if req.Account != "" {
			resp, err = l.TxsByAccount(req.Account, params)
		} else {
			resp, err = l.Txs(params)
		}
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func TxByHashHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TxByHashReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.TxByHash(req.EverHash)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func MintedTxHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MintedTxReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.MintedTxByChainTxHash(req.ChainTxHash)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// TxMessageHandler returns the message a transfer or withdraw would sign, without signing it.
func TxMessageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TxMessageReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		account := req.Account
		if account == "" {
			account = svcCtx.DefaultAccount()
		}
		var intent everpay.Intent = everpay.Transfer{Symbol: req.Symbol, Amount: req.Amount, To: req.To}
		if req.Type == "withdraw" {
			intent = everpay.WithdrawIntent(req.Symbol, req.Amount, req.Fee, req.ChainType, req.To, req.QuickMode)
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{Address: account})
		tx, message, err := l.GetEverpayTxMessage(intent)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.TxMessageResp{
			Message:  message,
			Tx:       *tx,
			EverHash: everpay.EverHash(message),
		})
	}
}

func TransferHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logx.WithContext(r.Context()).Infof("TransferHandler")
		var req types.TransferReq
		if err := httpx.Parse(r, &req); err != nil {
			logx.WithContext(r.Context()).Errorf("failed to parse request body: %v", err)
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}
		logx.WithContext(r.Context()).Infof("Request body parsed successfully: %+v", req)

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, signingAccount(svcCtx, req.Account))
		resp, err := l.Transfer(req.Symbol, req.Amount, req.To)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func WithdrawHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logx.WithContext(r.Context()).Infof("WithdrawHandler")
		var req types.WithdrawReq
		if err := httpx.Parse(r, &req); err != nil {
			logx.WithContext(r.Context()).Errorf("failed to parse request body: %v", err)
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}
		logx.WithContext(r.Context()).Infof("Request body parsed successfully: %+v", req)

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, signingAccount(svcCtx, req.Account))
		resp, err := l.Withdraw(req.Symbol, req.Amount, req.Fee, req.ChainType, req.To, req.QuickMode)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// DepositHandler 链上充值到 everpay locker
func DepositHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logx.WithContext(r.Context()).Infof("DepositHandler")
		var req types.DepositReq
		if err := httpx.Parse(r, &req); err != nil {
			logx.WithContext(r.Context()).Errorf("failed to parse request body: %v", err)
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		account := signingAccount(svcCtx, req.Account)
		if account.Address != "" {
			b, err := svcCtx.AccountBroadcaster(r.Context(), account.Address)
			switch {
			case err == nil:
				account.Broadcaster = b
			case !errors.Is(err, xerr.ErrBroadcastUnavailable):
				httpx.ErrorCtx(r.Context(), w, err)
				return
			}
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, account)
		pending, err := l.Deposit(req.Symbol, req.Amount)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.DepositResp{
			PendingTx:   *pending,
			ExplorerURL: chain.ExplorerTxURL(pending.ChainType, svcCtx.DepositChain.ChainId, pending.Hash),
			Message:     "deposit broadcast, everpay mints after chain confirmation",
			Status:      "pending",
		})
	}
}

func DepositStatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DepositStatusReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := everpay.NewEverpayLogic(r.Context(), svcCtx, everpay.Account{})
		resp, err := l.DepositStatus(req.ChainTxHash)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

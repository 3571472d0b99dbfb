package handler

import (
	"net/http"
	"time"

	"everpay-go/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			// --- Wallet Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/wallet_init",
				Handler: WalletInitHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallets",
				Handler: WalletListHandler(serverCtx),
			},
			// --- Info Routes ---
			{
				Method:  http.MethodGet,
				Path:    "/everpay/info",
				Handler: InfoHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/everpay/express_info",
				Handler: ExpressInfoHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/everpay/dex_info",
				Handler: DexInfoHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/info/refresh",
				Handler: InfoRefreshHandler(serverCtx),
			},
			// --- Query Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/everpay/balance",
				Handler: BalanceHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/balances",
				Handler: BalancesHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/txs",
				Handler: TxsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/tx",
				Handler: TxByHashHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/minted_tx",
				Handler: MintedTxHandler(serverCtx),
			},
			// --- Transaction Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/everpay/message",
				Handler: TxMessageHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/transfer",
				Handler: TransferHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/withdraw",
				Handler: WithdrawHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/deposit",
				Handler: DepositHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/everpay/deposit_status",
				Handler: DepositStatusHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/"),
		rest.WithTimeout(30000*time.Millisecond),
	)
}

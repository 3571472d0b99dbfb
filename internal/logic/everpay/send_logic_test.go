package everpay

import (
	"context"
	"errors"
	"strings"
	"testing"

	"everpay-go/internal/signer"
	"everpay-go/internal/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEverpayTx_StandardWithdraw(t *testing.T) {
	ledger := newFakeLedger()
	l, s := newTestLogic(t, ledger)

	res, err := l.Withdraw("USDT", "100", "", "", "", false)
	require.NoError(t, err)

	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "burn", string(res.EverpayTx.Action))
	assert.Equal(t, "99000000", res.EverpayTx.Amount)
	assert.Equal(t, "1000000", res.EverpayTx.Fee)
	assert.Equal(t, s.Address(), res.EverpayTx.To)
	assert.Equal(t, "1700000000000", res.EverpayTx.Nonce)

	require.Equal(t, 1, ledger.postCount())
	assert.Equal(t, res.EverpayTx, ledger.posted[0])

	msg := TxMessage(&res.EverpayTx.EverpayTxWithoutSig)
	assert.Equal(t, EverHash(msg), res.EverHash)
	addr, err := signer.RecoverAddress(msg, res.EverpayTx.Sig)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), addr)
}

func TestSendEverpayTx_QuickWithdraw(t *testing.T) {
	ledger := newFakeLedger()
	l, _ := newTestLogic(t, ledger)

	res, err := l.Withdraw("USDT", "50", "", "ethereum", testReceiver, true)
	require.NoError(t, err)

	tx := res.EverpayTx
	assert.Equal(t, "transfer", string(tx.Action))
	assert.Equal(t, "0", tx.Fee)
	assert.Equal(t, "50000000", tx.Amount)
	assert.Equal(t, testExpress, tx.To)
	assert.Contains(t, tx.Data, `"withdrawTo":"`+testReceiver+`"`)
	assert.Contains(t, tx.Data, `"withdrawChainType":"ethereum"`)
	assert.Contains(t, tx.Data, `"withdrawFee":"500000"`)
	assert.Equal(t, 1, ledger.expressCalls)
}

func TestSendEverpayTx_NothingPostedOnBuildError(t *testing.T) {
	cases := []struct {
		name    string
		express string
		run     func(l *EverpayLogic) error
		want    error
	}{
		{"quick below fee", "1000", func(l *EverpayLogic) error {
			_, err := l.Withdraw("USDT", "0.5", "", "", "", true)
			return err
		}, xerr.ErrAmountBelowFee},
		{"quick liquidity", "10", func(l *EverpayLogic) error {
			_, err := l.Withdraw("USDT", "50", "", "", "", true)
			return err
		}, xerr.ErrInsufficientQuickLiquidity},
		{"quick unsupported", "1000", func(l *EverpayLogic) error {
			_, err := l.Withdraw("AR", "1", "", "", "", true)
			return err
		}, xerr.ErrQuickWithdrawUnsupported},
		{"burn below fee", "1000", func(l *EverpayLogic) error {
			_, err := l.Withdraw("USDT", "1", "", "", "", false)
			return err
		}, xerr.ErrAmountBelowFee},
		{"unknown token", "1000", func(l *EverpayLogic) error {
			_, err := l.Transfer("DOGE", "1", testReceiver)
			return err
		}, xerr.ErrTokenNotFound},
		{"invalid amount", "1000", func(l *EverpayLogic) error {
			_, err := l.Transfer("USDT", "1e6", testReceiver)
			return err
		}, xerr.ErrInvalidAmount},
		{"missing to", "1000", func(l *EverpayLogic) error {
			_, err := l.Transfer("USDT", "1", "")
			return err
		}, xerr.ErrMissingDestination},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ledger := newFakeLedger()
			ledger.express = testExpressInfo(c.express)
			l, _ := newTestLogic(t, ledger)

			err := c.run(l)
			assert.ErrorIs(t, err, c.want)
			assert.Equal(t, 0, ledger.postCount())
		})
	}
}

func TestSendEverpayTx_ValidationOrder(t *testing.T) {
	ledger := newFakeLedger()
	l := NewEverpayLogic(context.Background(), newTestSvcCtx(ledger), Account{})

	// no account wins over every other problem
	_, err := l.Transfer("DOGE", "bad", "")
	assert.ErrorIs(t, err, xerr.ErrMissingAccount)

	l, _ = newTestLogic(t, ledger)
	_, err = l.Transfer("DOGE", "bad", "")
	assert.ErrorIs(t, err, xerr.ErrTokenNotFound)

	_, err = l.Transfer("USDT", "bad", "")
	assert.ErrorIs(t, err, xerr.ErrInvalidAmount)

	_, err = l.Transfer("USDT", "1", "")
	assert.ErrorIs(t, err, xerr.ErrMissingDestination)
}

func TestSendEverpayTx_CaseInsensitiveSymbol(t *testing.T) {
	ledger := newFakeLedger()
	l, _ := newTestLogic(t, ledger)

	res, err := l.Transfer("usdt", "1", testReceiver)
	require.NoError(t, err)
	assert.Equal(t, usdtToken.ID, res.EverpayTx.TokenID)
	assert.Equal(t, "1000000", res.EverpayTx.Amount)
}

func TestSendEverpayTx_SigningFailed(t *testing.T) {
	ledger := newFakeLedger()
	svcCtx := newTestSvcCtx(ledger)

	failing := signer.Func(func(context.Context, string) (string, error) {
		return "", errors.New("device locked")
	})
	l := NewEverpayLogic(context.Background(), svcCtx, Account{Address: sender, Signer: failing})
	_, err := l.Transfer("USDT", "1", testReceiver)
	assert.ErrorIs(t, err, xerr.ErrSigningFailed)
	assert.True(t, strings.Contains(err.Error(), "device locked"))

	empty := signer.Func(func(context.Context, string) (string, error) { return "", nil })
	l = NewEverpayLogic(context.Background(), svcCtx, Account{Address: sender, Signer: empty})
	_, err = l.Transfer("USDT", "1", testReceiver)
	assert.ErrorIs(t, err, xerr.ErrSigningFailed)

	l = NewEverpayLogic(context.Background(), svcCtx, Account{Address: sender})
	_, err = l.Transfer("USDT", "1", testReceiver)
	assert.ErrorIs(t, err, xerr.ErrSigningFailed)

	assert.Equal(t, 0, ledger.postCount())
}

func TestSendEverpayTx_PostFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.postErr = errors.New("connection reset")
	l, _ := newTestLogic(t, ledger)

	_, err := l.Transfer("USDT", "1", testReceiver)
	assert.ErrorIs(t, err, xerr.ErrNetworkUnavailable)
	assert.Equal(t, xerr.CodeNetworkUnavailable, xerr.CodeOf(err))

	// the cache is not touched by a failed submission
	assert.Equal(t, 1, ledger.infoCalls)
	_, err = l.Transfer("USDT", "1", testReceiver)
	assert.Error(t, err)
	assert.Equal(t, 1, ledger.infoCalls)
}

func TestSendEverpayTx_InfoUnavailable(t *testing.T) {
	ledger := newFakeLedger()
	ledger.infoErr = errBoom
	l, _ := newTestLogic(t, ledger)

	_, err := l.Transfer("USDT", "1", testReceiver)
	assert.ErrorIs(t, err, xerr.ErrNetworkUnavailable)
	assert.Equal(t, 0, ledger.postCount())
}

func TestGetEverpayTxMessage(t *testing.T) {
	ledger := newFakeLedger()
	l, _ := newTestLogic(t, ledger)

	tx, msg, err := l.GetEverpayTxMessage(Transfer{Symbol: "USDT", Amount: "1.5", To: testReceiver})
	require.NoError(t, err)
	assert.Equal(t, TxMessage(tx), msg)
	assert.Contains(t, msg, "amount:1500000\n")
	assert.Contains(t, msg, "nonce:1700000000000\n")
	assert.Equal(t, 0, ledger.postCount())

	// same inputs and nonce give the same message
	_, again, err := l.GetEverpayTxMessage(Transfer{Symbol: "USDT", Amount: "1.5", To: testReceiver})
	require.NoError(t, err)
	assert.Equal(t, msg, again)
}

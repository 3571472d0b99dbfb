package xerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for everpay client operations. Use errors.Is to test for them;
// every CodeError returned by this module unwraps to one of these.
var (
	// ErrInvalidAmount indicates an amount that is empty, malformed, negative or too precise.
	ErrInvalidAmount = errors.New("everpay: invalid amount")

	// ErrTokenNotFound indicates the symbol is not in the everpay token list.
	ErrTokenNotFound = errors.New("everpay: token not found")

	// ErrMissingAccount indicates the operation needs an account and none was given.
	ErrMissingAccount = errors.New("everpay: missing account")

	// ErrMissingDestination indicates a transfer or withdraw without a receiver.
	ErrMissingDestination = errors.New("everpay: missing destination")

	// ErrAmountBelowFee indicates the amount does not cover the withdraw fee.
	ErrAmountBelowFee = errors.New("everpay: withdraw amount less than fee")

	// ErrInsufficientQuickLiquidity indicates the express wallet cannot cover the quick withdraw.
	ErrInsufficientQuickLiquidity = errors.New("everpay: insufficient quick withdrawal amount")

	// ErrQuickWithdrawUnsupported indicates the token has no express entry.
	ErrQuickWithdrawUnsupported = errors.New("everpay: token not support quick withdraw")

	// ErrNetworkUnavailable indicates a fetch or submission against a remote boundary failed.
	ErrNetworkUnavailable = errors.New("everpay: network unavailable")

	// ErrSigningFailed indicates the signer returned an error or an empty signature.
	ErrSigningFailed = errors.New("everpay: signing failed")

	// ErrMissingHash indicates a lookup by hash without a hash.
	ErrMissingHash = errors.New("everpay: missing hash")

	// ErrInvalidAction indicates an unknown history action filter.
	ErrInvalidAction = errors.New("everpay: invalid action")

	// ErrWalletNotFound indicates no stored wallet for the account.
	ErrWalletNotFound = errors.New("everpay: wallet not found")

	// ErrBroadcastUnavailable indicates deposits are not configured.
	ErrBroadcastUnavailable = errors.New("everpay: on-chain broadcast not configured")

	// ErrInvalidRequest indicates a malformed request or an unsupported option.
	ErrInvalidRequest = errors.New("everpay: invalid request")

	// ErrTokenNotOnChain indicates the token has no contract on the deposit chain.
	ErrTokenNotOnChain = errors.New("everpay: token not on chain")

	// ErrInvalidAddress indicates a malformed on-chain address.
	ErrInvalidAddress = errors.New("everpay: invalid address")
)

// Code is a stable, machine readable error code.
type Code string

const (
	CodeInvalidAmount              Code = "INVALID_AMOUNT"
	CodeTokenNotFound              Code = "TOKEN_NOT_FOUND"
	CodeMissingAccount             Code = "MISSING_ACCOUNT"
	CodeMissingDestination         Code = "MISSING_DESTINATION"
	CodeAmountBelowFee             Code = "AMOUNT_BELOW_FEE"
	CodeInsufficientQuickLiquidity Code = "INSUFFICIENT_QUICK_LIQUIDITY"
	CodeQuickWithdrawUnsupported   Code = "QUICK_WITHDRAW_UNSUPPORTED"
	CodeNetworkUnavailable         Code = "NETWORK_UNAVAILABLE"
	CodeSigningFailed              Code = "SIGNING_FAILED"
	CodeMissingHash                Code = "MISSING_HASH"
	CodeInvalidAction              Code = "INVALID_ACTION"
	CodeWalletNotFound             Code = "WALLET_NOT_FOUND"
	CodeBroadcastUnavailable       Code = "BROADCAST_UNAVAILABLE"
	CodeInvalidRequest             Code = "INVALID_REQUEST"
	CodeTokenNotOnChain            Code = "TOKEN_NOT_ON_CHAIN"
	CodeInvalidAddress             Code = "INVALID_ADDRESS"
)

var codes = map[error]Code{
	ErrInvalidAmount:              CodeInvalidAmount,
	ErrTokenNotFound:              CodeTokenNotFound,
	ErrMissingAccount:             CodeMissingAccount,
	ErrMissingDestination:         CodeMissingDestination,
	ErrAmountBelowFee:             CodeAmountBelowFee,
	ErrInsufficientQuickLiquidity: CodeInsufficientQuickLiquidity,
	ErrQuickWithdrawUnsupported:   CodeQuickWithdrawUnsupported,
	ErrNetworkUnavailable:         CodeNetworkUnavailable,
	ErrSigningFailed:              CodeSigningFailed,
	ErrMissingHash:                CodeMissingHash,
	ErrInvalidAction:              CodeInvalidAction,
	ErrWalletNotFound:             CodeWalletNotFound,
	ErrBroadcastUnavailable:       CodeBroadcastUnavailable,
	ErrInvalidRequest:             CodeInvalidRequest,
	ErrTokenNotOnChain:            CodeTokenNotOnChain,
	ErrInvalidAddress:             CodeInvalidAddress,
}

// CodeError carries a code, a human readable message and the cause.
type CodeError struct {
	Code Code
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *CodeError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel with a formatted message.
func New(sentinel error, format string, args ...any) *CodeError {
	return &CodeError{
		Code: CodeOf(sentinel),
		Msg:  fmt.Sprintf(format, args...),
		Err:  sentinel,
	}
}

// Wrap attaches a sentinel to a lower level cause, keeping both reachable by errors.Is.
func Wrap(sentinel error, cause error, format string, args ...any) *CodeError {
	var err error = sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &CodeError{
		Code: CodeOf(sentinel),
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// CodeOf returns the code of the first sentinel err wraps, or "" when none.
func CodeOf(err error) Code {
	var ce *CodeError
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// IsRemote reports whether err came from a remote boundary rather than local validation.
func IsRemote(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable) || errors.Is(err, ErrSigningFailed) ||
		errors.Is(err, ErrBroadcastUnavailable)
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"everpay-go/internal/xerr"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Code xerr.Code `json:"code,omitempty"`
	Msg  string    `json:"msg"`
}

// ErrorHandler maps errors to HTTP responses; install it with httpx.SetErrorHandlerCtx.
// Failures at a remote boundary are 502, other coded errors are 400 and uncoded ones are 500.
func ErrorHandler(_ context.Context, err error) (int, any) {
	body := ErrorBody{Code: xerr.CodeOf(err), Msg: err.Error()}
	var ce *xerr.CodeError
	if errors.As(err, &ce) {
		body.Msg = ce.Error()
	}
	if xerr.IsRemote(err) {
		return http.StatusBadGateway, body
	}
	if body.Code == "" {
		return http.StatusInternalServerError, body
	}
	return http.StatusBadRequest, body
}

func parseError(err error) error {
	return xerr.Wrap(xerr.ErrInvalidRequest, err, "parse request")
}

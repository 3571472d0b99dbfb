package infocache

import (
	"strings"

	"everpay-go/internal/types"
	"everpay-go/internal/xerr"
)

// ResolveToken finds symbol in tokens ignoring case.
func ResolveToken(symbol string, tokens []types.Token) (types.Token, error) {
	if symbol != "" {
		for _, t := range tokens {
			if strings.EqualFold(t.Symbol, symbol) {
				return t, nil
			}
		}
	}
	return types.Token{}, xerr.New(xerr.ErrTokenNotFound, "token %q not found", symbol)
}

// FindExpressToken returns the express entry whose tag matches tag.
func FindExpressToken(tag string, info types.ExpressInfo) (types.ExpressToken, bool) {
	for _, t := range info.Tokens {
		if types.MatchTokenTag(tag, t.TokenTag) {
			return t, true
		}
	}
	return types.ExpressToken{}, false
}

// Package unit converts between human readable token amounts and base-unit integers.
//
// All arithmetic is exact: amounts are parsed with shopspring/decimal and never pass
// through binary floating point, so an 18-decimal token round-trips without drift.
package unit

import (
	"math/big"
	"regexp"
	"strings"

	"everpay-go/internal/xerr"

	"github.com/shopspring/decimal"
)

// MaxDecimals bounds the precision accepted for a token.
const MaxDecimals = 36

var (
	humanAmountRegex = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)$`)
	baseAmountRegex  = regexp.MustCompile(`^\d+$`)
)

// ToBaseUnits scales a human amount such as "1.5" to base units ("1500000" for 6 decimals).
// More fractional digits than decimals is an error rather than a silent truncation.
func ToBaseUnits(human string, decimals int) (string, error) {
	v, err := ToBaseUnitsInt(human, decimals)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// ToBaseUnitsInt is ToBaseUnits returning the integer value.
func ToBaseUnitsInt(human string, decimals int) (*big.Int, error) {
	if err := checkDecimals(decimals); err != nil {
		return nil, err
	}
	d, err := parseHuman(human)
	if err != nil {
		return nil, err
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, xerr.New(xerr.ErrInvalidAmount, "amount %s has more than %d decimal places", human, decimals)
	}
	return shifted.BigInt(), nil
}

// ToHumanUnits scales a base-unit integer back to a normalized human amount.
func ToHumanUnits(base string, decimals int) (string, error) {
	if err := checkDecimals(decimals); err != nil {
		return "", err
	}
	if !baseAmountRegex.MatchString(base) {
		return "", xerr.New(xerr.ErrInvalidAmount, "invalid base amount %q", base)
	}
	d, err := decimal.NewFromString(base)
	if err != nil {
		return "", xerr.Wrap(xerr.ErrInvalidAmount, err, "invalid base amount %q", base)
	}
	return d.Shift(-int32(decimals)).String(), nil
}

// Normalize returns the canonical form of a human amount: no leading or trailing zeros.
func Normalize(human string) (string, error) {
	d, err := parseHuman(human)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// ParseBaseUnits parses a base-unit integer string.
func ParseBaseUnits(base string) (*big.Int, error) {
	if !baseAmountRegex.MatchString(base) {
		return nil, xerr.New(xerr.ErrInvalidAmount, "invalid base amount %q", base)
	}
	v, ok := new(big.Int).SetString(base, 10)
	if !ok {
		return nil, xerr.New(xerr.ErrInvalidAmount, "invalid base amount %q", base)
	}
	return v, nil
}

// IsValidAmount reports whether human is a non-negative decimal string.
func IsValidAmount(human string) bool {
	_, err := parseHuman(human)
	return err == nil
}

func parseHuman(human string) (decimal.Decimal, error) {
	if !humanAmountRegex.MatchString(human) {
		return decimal.Zero, xerr.New(xerr.ErrInvalidAmount, "invalid amount %q", human)
	}
	if strings.HasPrefix(human, ".") {
		human = "0" + human
	}
	d, err := decimal.NewFromString(human)
	if err != nil {
		return decimal.Zero, xerr.Wrap(xerr.ErrInvalidAmount, err, "invalid amount %q", human)
	}
	return d, nil
}

func checkDecimals(decimals int) error {
	if decimals < 0 || decimals > MaxDecimals {
		return xerr.New(xerr.ErrInvalidAmount, "decimals %d out of range", decimals)
	}
	return nil
}

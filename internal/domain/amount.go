package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses user-entered amount text into an exact decimal.
// A comma is accepted as the decimal separator. Anything that is not a
// strictly positive decimal fails with ErrBadAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty", ErrBadAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrBadAmount, text)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not positive", ErrBadAmount, text)
	}
	return d, nil
}

// Package coupon implements the storefront's single-code tiered discount.
package coupon

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Code is the only coupon the store recognises, compared after trimming and
// lower-casing the input.
const Code = "madamchoice10"

// tier maps a minimum cart total to a discount fraction.
type tier struct {
	min      decimal.Decimal
	discount decimal.Decimal
}

// tiers is evaluated top to bottom; the first tier whose minimum the total
// reaches wins. The last tier has no minimum, so any matched code gets at
// least 5%.
var tiers = []tier{
	{min: decimal.NewFromInt(900), discount: decimal.RequireFromString("0.10")},
	{min: decimal.NewFromInt(500), discount: decimal.RequireFromString("0.08")},
	{min: decimal.Zero, discount: decimal.RequireFromString("0.05")},
}

var hundred = decimal.NewFromInt(100)

const (
	// MaxIntegerDigits bounds a total to less than ten billion.
	MaxIntegerDigits = 10
	// MaxScale is the number of decimal places a total may carry.
	MaxScale = 10
)

var (
	ErrNegativeTotal   = errors.New("total must not be negative")
	ErrTotalOutOfRange = errors.New("total is out of range")
)

// ValidateTotal rejects totals Apply will not price. It only inspects the
// coefficient and exponent, so oversized inputs such as 1e2000000 are
// refused without being expanded.
func ValidateTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return ErrNegativeTotal
	}
	exp := int(total.Exponent())
	if exp < -MaxScale || exp > MaxIntegerDigits {
		return ErrTotalOutOfRange
	}
	// 128 bits covers every coefficient within the digit and scale limits.
	if total.Coefficient().BitLen() > 128 {
		return ErrTotalOutOfRange
	}
	if total.NumDigits()+exp > MaxIntegerDigits {
		return ErrTotalOutOfRange
	}
	return nil
}

// Result is the outcome of pricing a total against a coupon code.
type Result struct {
	OriginalTotal   decimal.Decimal
	DiscountPercent int64
	DiscountedTotal decimal.Decimal
}

// Apply prices total against code. It has no side effects. Callers accepting
// untrusted totals check them with ValidateTotal first.
//
// DiscountedTotal is rounded to two decimal places, half away from zero.
func Apply(total decimal.Decimal, code string) Result {
	discount := discountFor(total, code)

	return Result{
		OriginalTotal:   total,
		DiscountPercent: discount.Mul(hundred).IntPart(),
		DiscountedTotal: total.Sub(total.Mul(discount)).Round(2),
	}
}

// Normalize trims surrounding whitespace and lower-cases a coupon code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func discountFor(total decimal.Decimal, code string) decimal.Decimal {
	if Normalize(code) != Code {
		return decimal.Zero
	}
	for _, t := range tiers {
		if total.GreaterThanOrEqual(t.min) {
			return t.discount
		}
	}
	// Negative totals are rejected at the boundary; price them at the base tier.
	return tiers[len(tiers)-1].discount
}

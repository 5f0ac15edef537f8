// Package tax computes line and trade amounts for consumption tax.
//
// Tax per line is truncated toward zero after applying the rate, following
// the line-level rounding convention used by Japanese point-of-sale systems.
// All arithmetic is exact: rates are decimals and every integer result is
// checked against the int64 range.
package tax

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
)

var rates = map[models.TaxCode]decimal.Decimal{
	models.TaxCodeStandard: decimal.RequireFromString("0.10"),
	models.TaxCodeReduced:  decimal.RequireFromString("0.08"),
	models.TaxCodeExempt:   decimal.Zero,
}

// LineAmounts holds the derived amounts of one trade line.
type LineAmounts struct {
	ExTax int64
	Tax   int64
	Incl  int64
}

// Totals holds the derived amounts of a whole trade.
type Totals struct {
	ExTax  int64
	Tax    int64
	Amount int64
}

// Rate returns the rate for a tax category.
func Rate(code models.TaxCode) (decimal.Decimal, bool) {
	r, ok := rates[code]
	return r, ok
}

// ValidTaxCategory reports whether code is one of the recognized categories.
func ValidTaxCategory(code string) bool {
	_, ok := rates[models.TaxCode(code)]
	return ok
}

// ComputeLineAmounts returns the tax-exclusive subtotal, the truncated tax and
// the tax-inclusive subtotal for price*qty under the given tax category.
func ComputeLineAmounts(price, qty int64, code models.TaxCode) (LineAmounts, error) {
	rate, ok := rates[code]
	if !ok {
		return LineAmounts{}, apperrors.WithMessage(apperrors.ErrInvalidTaxCategory,
			fmt.Sprintf("unsupported tax category %q", string(code)))
	}
	if price < 0 {
		return LineAmounts{}, apperrors.WithMessage(apperrors.ErrValidation, "price must not be negative")
	}
	if qty < 1 {
		return LineAmounts{}, apperrors.WithMessage(apperrors.ErrValidation, "qty must be at least 1")
	}

	exTax, ok := mulInt64(price, qty)
	if !ok {
		return LineAmounts{}, apperrors.WithMessage(apperrors.ErrAmountOverflow,
			fmt.Sprintf("line subtotal %d x %d exceeds the representable range", price, qty))
	}

	// exTax is non-negative, so Floor truncates toward zero. rate < 1 keeps tax within int64.
	lineTax := decimal.NewFromInt(exTax).Mul(rate).Floor().IntPart()

	incl, ok := addInt64(exTax, lineTax)
	if !ok {
		return LineAmounts{}, apperrors.WithMessage(apperrors.ErrAmountOverflow,
			"tax-inclusive line amount exceeds the representable range")
	}

	return LineAmounts{ExTax: exTax, Tax: lineTax, Incl: incl}, nil
}

// ComputeTradeTotals sums each field across lines. An empty slice yields zeros.
func ComputeTradeTotals(lines []LineAmounts) (Totals, error) {
	var t Totals
	for i, l := range lines {
		var okEx, okTax, okAmt bool
		t.ExTax, okEx = addInt64(t.ExTax, l.ExTax)
		t.Tax, okTax = addInt64(t.Tax, l.Tax)
		t.Amount, okAmt = addInt64(t.Amount, l.Incl)
		if !okEx || !okTax || !okAmt {
			return Totals{}, apperrors.WithMessage(apperrors.ErrAmountOverflow,
				fmt.Sprintf("trade total exceeds the representable range at line %d", i+1))
		}
	}
	return t, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

func addInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

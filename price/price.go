// Package price formats and computes ticket amounts in euros using French
// number conventions.
package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	groupSeparator   = "\u202f"
	decimalSeparator = ","
	currencySuffix   = "\u00a0€"
)

// Format renders amount as e.g. "1 234,56 €", rounded half away from zero
// to cents.
func Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	intPart, fracPart, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	b.WriteString(decimalSeparator)
	b.WriteString(fracPart)
	b.WriteString(currencySuffix)

	return b.String()
}

// CalculateTotal returns the line total for quantity tickets at unitPrice.
func CalculateTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

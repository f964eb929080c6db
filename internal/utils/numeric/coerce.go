package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Coerce parses s as a decimal amount. Surrounding whitespace is ignored and an
// empty or non-numeric string yields zero, so aggregations never fail on user input.
func Coerce(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether s parses as a decimal.
func IsNumeric(s string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}

// Sum adds all values together.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGrouped(t *testing.T) {
	testCases := map[string]string{
		"0":           "0",
		"999":         "999",
		"1000":        "1,000",
		"-1234567.5":  "-1,234,567.5",
		"5000000":     "5,000,000",
		"123456.0001": "123,456.0001",
	}
	for in, want := range testCases {
		assert.Equal(t, want, FormatGrouped(decimal.RequireFromString(in)), in)
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}

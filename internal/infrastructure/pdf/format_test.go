package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "0,00 €",
		"3.5":         "3,50 €",
		"1200":        "1.200,00 €",
		"25000":       "25.000,00 €",
		"1234567.891": "1.234.567,89 €",
		"-3.5":        "-3,50 €",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

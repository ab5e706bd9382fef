package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-ventas-api/internal/domain/invoice"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "Q0.00",
		"5":          "Q5.00",
		"999.999":    "Q1,000.00",
		"1234.5":     "Q1,234.50",
		"1000000":    "Q1,000,000.00",
		"-3":         "-Q3.00",
		"123456.789": "Q123,456.79",
	}
	for in, want := range cases {
		got := invoice.FormatCurrency("Q", decimal.RequireFromString(in))
		assert.Equal(t, want, got, "monto %s", in)
	}
}

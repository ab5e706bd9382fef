package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formatea un monto con símbolo, separador de miles "," y dos decimales.
// Ej: ("Q", 1234.5) → "Q1,234.50"; ("Q", -3) → "-Q3.00".
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := symbol + groupThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserta comas de miles en un entero sin signo.
// Ej: "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// Package sales contiene las reglas puras de una venta: cálculo de subtotales y total.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
)

// CurrencyScale decimales de la moneda (quetzales).
const CurrencyScale int32 = 2

// maxAmount límite de NUMERIC(14,2).
var maxAmount = decimal.New(1, 12)

// LineAmount cantidad y precio unitario de una línea.
type LineAmount struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Totals resultado del cálculo: un subtotal por línea (mismo orden) y el total.
type Totals struct {
	Subtotals []decimal.Decimal
	Total     decimal.Decimal
}

// RoundMoney redondea a la escala de la moneda, mitad hacia arriba.
// decimal.Round redondea la mitad alejándose de cero; con montos no negativos equivale a half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// CalculateTotals calcula subtotal = round(cantidad × precio) por línea y total = round(Σ subtotales).
// El redondeo se aplica una vez por subtotal y una vez al total.
func CalculateTotals(lines []LineAmount) (Totals, error) {
	out := Totals{Subtotals: make([]decimal.Decimal, len(lines)), Total: decimal.Zero}
	sum := decimal.Zero
	for i, l := range lines {
		subtotal := RoundMoney(decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice))
		if subtotal.Abs().GreaterThanOrEqual(maxAmount) {
			return Totals{}, domain.ErrAmountOverflow
		}
		out.Subtotals[i] = subtotal
		sum = sum.Add(subtotal)
	}
	out.Total = RoundMoney(sum)
	if out.Total.Abs().GreaterThanOrEqual(maxAmount) {
		return Totals{}, domain.ErrAmountOverflow
	}
	return out, nil
}

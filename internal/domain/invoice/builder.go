package invoice

import (
	"strconv"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// Textos fijos de la factura.
const (
	FinalConsumerName  = "Consumidor Final (CF)"
	FinalConsumerTaxID = "CF"
	UnknownEmployee    = "Empleado desconocido"
	UnknownProduct     = "N/A"

	closingText = "Gracias por su compra"
	footerText  = "Factura generada por Sistema POS. "
	footerLegal = "© 2024 Todos los derechos reservados."
)

// Issuer datos del emisor impresos en el encabezado.
type Issuer struct {
	Name           string
	Address        string
	Phone          string
	CurrencySymbol string
	Location       *time.Location // zona horaria para la fecha impresa; nil = UTC
}

// Build arma el árbol de layout de la factura. Función pura: no lee reloj ni almacén.
func Build(snap *entity.SaleSnapshot, issuer Issuer) Document {
	loc := issuer.Location
	if loc == nil {
		loc = time.UTC
	}

	clientName, clientTaxID := FinalConsumerName, FinalConsumerTaxID
	if snap.Client != nil {
		clientName = nonEmpty(snap.Client.Name, FinalConsumerName)
		clientTaxID = nonEmpty(snap.Client.TaxID, FinalConsumerTaxID)
	}
	number := strconv.FormatInt(snap.Number, 10)

	subtitle := make([]string, 0, 2)
	if issuer.Address != "" {
		subtitle = append(subtitle, "Dirección: "+issuer.Address)
	}
	if issuer.Phone != "" {
		subtitle = append(subtitle, "Tel: "+issuer.Phone)
	}

	return Document{
		Title:     "Factura No. " + number,
		Author:    issuer.Name,
		CreatedAt: snap.Date.UTC(),
		Sections: []Section{
			HeaderSection{Title: issuer.Name, Subtitle: subtitle},
			FieldRowSection{Italic: true, Fields: []Field{
				{Label: "Fecha", Value: snap.Date.In(loc).Format("02/01/2006")},
				{Label: "Factura No.", Value: number},
			}},
			FieldRowSection{Bold: true, Fields: []Field{
				{Label: "Cliente", Value: clientName},
				{Label: "NIT", Value: clientTaxID},
			}},
			TextSection{
				Text:   "Atendido por: " + nonEmpty(snap.EmployeeName, UnknownEmployee),
				Size:   12,
				Italic: true,
			},
			SpacerSection{Height: 5},
			itemsTable(snap, issuer.CurrencySymbol),
			SpacerSection{Height: 5},
			TextSection{Text: closingText, Size: 14, Bold: true, Align: AlignCenter},
			FooterSection{Spans: []Span{
				{Text: footerText},
				{Text: footerLegal, Italic: true},
			}},
		},
	}
}

func itemsTable(snap *entity.SaleSnapshot, symbol string) TableSection {
	t := TableSection{
		Columns: []Column{
			{Title: "Producto", Width: 6, Align: AlignLeft},
			{Title: "Cantidad", Width: 2, Align: AlignCenter},
			{Title: "Precio Unitario", Width: 2, Align: AlignRight},
			{Title: "Subtotal", Width: 2, Align: AlignRight},
		},
		Rows: make([]Row, 0, len(snap.Lines)),
	}
	header := Row{Style: StyleHeader, Cells: make([]Cell, 0, len(t.Columns))}
	for _, c := range t.Columns {
		header.Cells = append(header.Cells, Cell{Text: c.Title, Align: AlignCenter})
	}
	t.Header = header

	for _, l := range snap.Lines {
		t.Rows = append(t.Rows, Row{Style: StyleBody, Cells: []Cell{
			{Text: nonEmpty(l.ProductName, UnknownProduct), Align: AlignLeft},
			{Text: strconv.FormatInt(l.Quantity, 10), Align: AlignCenter},
			{Text: FormatCurrency(symbol, l.UnitPrice), Align: AlignRight},
			{Text: FormatCurrency(symbol, l.Subtotal), Align: AlignRight},
		}})
	}

	t.Total = Row{Style: StyleTotal, Cells: []Cell{
		{Text: "TOTAL", Span: 3, Align: AlignRight},
		{Text: FormatCurrency(symbol, snap.Total), Align: AlignRight},
	}}
	return t
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

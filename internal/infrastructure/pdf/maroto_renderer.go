// Package pdf renderiza el árbol de layout de la factura con Maroto v2.
//
// El renderer recorre invoice.Document una sola vez, nodo por nodo, y no conoce ventas,
// clientes ni productos: todo lo que imprime ya viene resuelto en el árbol.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/invoice"
)

const (
	gridSize       = 12
	defaultFontPts = 10.0
)

var (
	colorBlack    = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeaderBg = &props.Color{Red: 200, Green: 200, Blue: 200}
	colorTotalBg  = &props.Color{Red: 230, Green: 230, Blue: 230}
	colorCellEdge = &props.Color{Red: 160, Green: 160, Blue: 160}
)

var _ sales.InvoiceRenderer = (*MarotoRenderer)(nil)

// fixedModDate sustituye la fecha de modificación que gofpdf toma del reloj.
var fixedModDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// gofpdf guarda estas opciones en variables globales; se fijan una vez porque los renders son concurrentes.
// Sin orden de catálogo el diccionario /Font sale en el orden de iteración de un map.
func init() {
	gofpdf.SetDefaultCatalogSort(true)
	gofpdf.SetDefaultModificationDate(fixedModDate)
}

// MarotoRenderer implementa sales.InvoiceRenderer produciendo PDF A4.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// ContentType tipo MIME del documento generado.
func (r *MarotoRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF. La fecha de creación se toma de doc.CreatedAt para que el mismo árbol
// produzca siempre los mismos bytes.
func (r *MarotoRenderer) Render(ctx context.Context, doc invoice.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: defaultFontPts}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		WithCreationDate(doc.CreatedAt).
		Build()

	m := maroto.New(cfg)
	for _, s := range doc.Sections {
		rows, err := sectionRows(s)
		if err != nil {
			return nil, err
		}
		m.AddRows(rows...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func sectionRows(s invoice.Section) ([]core.Row, error) {
	switch v := s.(type) {
	case invoice.HeaderSection:
		return headerRows(v), nil
	case invoice.FieldRowSection:
		return []core.Row{fieldRow(v)}, nil
	case invoice.TextSection:
		return []core.Row{textRow(v)}, nil
	case invoice.SpacerSection:
		return []core.Row{row.New(v.Height)}, nil
	case invoice.TableSection:
		return tableRows(v), nil
	case invoice.FooterSection:
		return footerRows(v), nil
	default:
		return nil, fmt.Errorf("pdf: sección no soportada %T", s)
	}
}

// headerRows: emisor centrado con línea inferior.
func headerRows(h invoice.HeaderSection) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(gridSize).Add(text.New(h.Title, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Top: 2,
		}))),
	}
	for _, sub := range h.Subtitle {
		rows = append(rows, row.New(6).Add(col.New(gridSize).Add(text.New(sub, props.Text{
			Size: 10, Align: align.Center, Color: colorGray, Top: 1,
		}))))
	}
	rows = append(rows, line.NewRow(4, props.Line{Color: colorBlack, Thickness: 0.4}))
	return rows
}

func fieldRow(f invoice.FieldRowSection) core.Row {
	style := fontStyle(f.Bold, f.Italic)
	widths := splitGrid(len(f.Fields))
	cols := make([]core.Col, 0, len(f.Fields))
	for i, field := range f.Fields {
		cols = append(cols, col.New(widths[i]).Add(text.New(field.Text(), props.Text{
			Style: style, Size: 11, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func textRow(t invoice.TextSection) core.Row {
	size := t.Size
	if size == 0 {
		size = defaultFontPts
	}
	return row.New(size*0.6 + 2).Add(col.New(gridSize).Add(text.New(t.Text, props.Text{
		Style: fontStyle(t.Bold, t.Italic), Size: size, Align: toAlign(t.Align), Top: 1,
	})))
}

// tableRows: encabezado, filas de detalle y total. Cada celda toma el ancho de las columnas que cubre.
func tableRows(t invoice.TableSection) []core.Row {
	rows := make([]core.Row, 0, len(t.Rows)+2)
	rows = append(rows, tableRow(t.Columns, t.Header))
	for _, r := range t.Rows {
		rows = append(rows, tableRow(t.Columns, r))
	}
	if len(t.Total.Cells) > 0 {
		rows = append(rows, tableRow(t.Columns, t.Total))
	}
	return rows
}

func tableRow(columns []invoice.Column, r invoice.Row) core.Row {
	cellStyle := &props.Cell{BorderType: border.Full, BorderColor: colorCellEdge, BorderThickness: 0.2}
	fs := fontstyle.Normal
	switch r.Style {
	case invoice.StyleHeader:
		cellStyle.BackgroundColor = colorHeaderBg
		fs = fontstyle.Bold
	case invoice.StyleTotal:
		cellStyle.BackgroundColor = colorTotalBg
		fs = fontstyle.Bold
	}

	cols := make([]core.Col, 0, len(r.Cells))
	idx := 0
	for _, c := range r.Cells {
		span := c.Span
		if span < 1 {
			span = 1
		}
		width := 0
		for i := idx; i < idx+span && i < len(columns); i++ {
			width += columns[i].Width
		}
		idx += span
		cols = append(cols, col.New(width).WithStyle(cellStyle).Add(text.New(c.Text, props.Text{
			Style: fs, Size: 10, Align: toAlign(c.Align), Top: 1.5, Left: 1.5, Right: 1.5,
		})))
	}
	return row.New(8).Add(cols...)
}

// footerRows: fragmentos del pie en una misma fila, cada uno con su estilo.
func footerRows(f invoice.FooterSection) []core.Row {
	widths := splitGrid(len(f.Spans))
	cols := make([]core.Col, 0, len(f.Spans))
	for i, s := range f.Spans {
		a := align.Center
		if len(f.Spans) > 1 {
			switch i {
			case 0:
				a = align.Right
			case len(f.Spans) - 1:
				a = align.Left
			}
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(s.Text, props.Text{
			Style: fontStyle(false, s.Italic), Size: 8, Align: a, Color: colorGray, Top: 2,
		})))
	}
	return []core.Row{
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2}),
		row.New(8).Add(cols...),
	}
}

// splitGrid reparte la grilla de 12 en n columnas; el resto va a la última.
func splitGrid(n int) []int {
	if n <= 0 {
		return nil
	}
	w := gridSize / n
	if w == 0 {
		w = 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = w
	}
	if rest := gridSize - w*n; rest > 0 {
		out[n-1] += rest
	}
	return out
}

func fontStyle(bold, italic bool) fontstyle.Type {
	switch {
	case bold && italic:
		return fontstyle.BoldItalic
	case bold:
		return fontstyle.Bold
	case italic:
		return fontstyle.Italic
	default:
		return fontstyle.Normal
	}
}

func toAlign(a invoice.Align) align.Type {
	switch a {
	case invoice.AlignCenter:
		return align.Center
	case invoice.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

// Package invoice construye la factura de una venta como un árbol declarativo de nodos de layout.
//
// El árbol es dato puro: se arma una sola vez desde un entity.SaleSnapshot y un renderer
// (por ejemplo el de PDF) lo recorre para producir bytes. Mismo snapshot, mismo árbol.
//
//	┌──────────────────────────────────────────────┐
//	│ HeaderSection: emisor, dirección, teléfono   │
//	│ FieldRowSection: Fecha | Factura No.         │
//	│ FieldRowSection: Cliente | NIT               │
//	│ TextSection: Atendido por                    │
//	│ TableSection: Producto | Cant. | P.U. | Sub. │
//	│ TextSection: Gracias por su compra           │
//	│ FooterSection                                │
//	└──────────────────────────────────────────────┘
package invoice

import "time"

// Align alineación horizontal de un texto o celda.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// CellStyle estilo visual de una fila de tabla.
type CellStyle int

const (
	StyleHeader CellStyle = iota // fondo gris, texto en negrita
	StyleBody
	StyleTotal // fondo gris claro, texto en negrita
)

// Document raíz del árbol de layout.
type Document struct {
	Title     string
	Author    string
	CreatedAt time.Time // fija la fecha de creación del PDF para que la salida sea determinista
	Sections  []Section
}

// Section nodo de primer nivel del documento.
type Section interface {
	section()
}

// HeaderSection bloque del emisor con borde inferior.
type HeaderSection struct {
	Title    string
	Subtitle []string
}

// Field par etiqueta/valor, se muestra como "Etiqueta: valor".
type Field struct {
	Label string
	Value string
}

// Text devuelve el campo ya formateado.
func (f Field) Text() string { return f.Label + ": " + f.Value }

// FieldRowSection fila con campos repartidos en columnas iguales.
type FieldRowSection struct {
	Fields []Field
	Bold   bool
	Italic bool
}

// TextSection línea de texto suelta.
type TextSection struct {
	Text   string
	Size   float64
	Bold   bool
	Italic bool
	Align  Align
}

// SpacerSection espacio vertical en milímetros.
type SpacerSection struct {
	Height float64
}

// Column definición de columna; Width en unidades de la grilla de 12.
type Column struct {
	Title string
	Width int
	Align Align
}

// Cell celda de una fila. Span indica cuántas columnas ocupa (0 o 1 = una).
type Cell struct {
	Text  string
	Span  int
	Align Align
}

// Row fila de tabla con su estilo.
type Row struct {
	Style CellStyle
	Cells []Cell
}

// TableSection tabla con definición de columnas, fila de encabezado, filas de datos y fila de total.
type TableSection struct {
	Columns []Column
	Header  Row
	Rows    []Row
	Total   Row
}

// Span fragmento de texto del pie.
type Span struct {
	Text   string
	Italic bool
}

// FooterSection pie de página.
type FooterSection struct {
	Spans []Span
}

func (HeaderSection) section()   {}
func (FieldRowSection) section() {}
func (TextSection) section()     {}
func (SpacerSection) section()   {}
func (TableSection) section()    {}
func (FooterSection) section()   {}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_UTF8(t *testing.T) {
	in := "codigo;nombre;precio;existencia\nB-2;Café molido;12,50;3\nA-1;Azúcar;5.00;10\n"

	products, err := parseCatalog(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A-1", products[0].code)
	assert.Equal(t, "Café molido", products[1].name)
	assert.Equal(t, "12.50", products[1].price.StringFixed(2))
	assert.Equal(t, int64(3), products[1].stock)
}

func TestParseCatalog_Latin1(t *testing.T) {
	utf := "codigo;nombre;precio;existencia\nP-1;Jabón;2;1\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	products, err := parseCatalog(strings.NewReader(latin))

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Jabón", products[0].name)
}

func TestParseCatalog_IDEstablePorCodigo(t *testing.T) {
	in := "h;h;h;h\nX;Uno;1;1\n"

	a, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	b, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, a[0].id, b[0].id)
}

func TestParseCatalog_CodigoRepetidoConservaUltimo(t *testing.T) {
	in := "h;h;h;h\nX;Viejo;1;1\nX;Nuevo;2;5\n"

	products, err := parseCatalog(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Nuevo", products[0].name)
}

func TestParseCatalog_FilaInvalida(t *testing.T) {
	cases := map[string]string{
		"precio negativo":     "h;h;h;h\nX;Uno;-1;1\n",
		"existencia negativa": "h;h;h;h\nX;Uno;1;-2\n",
		"sin nombre":          "h;h;h;h\nX;;1;1\n",
		"columnas faltantes":  "h;h;h;h\nX;Uno\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	products, err := parseCatalog(strings.NewReader("h;h;h;h\nX;D'Angelo;3;4\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, products))

	assert.Contains(t, buf.String(), "'D''Angelo', 3.00, 4)")
	assert.Contains(t, buf.String(), "ON CONFLICT (code) DO UPDATE")
}

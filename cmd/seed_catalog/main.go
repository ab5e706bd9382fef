// seed_catalog genera un script SQL para poblar el catálogo de productos
// a partir de un CSV exportado por el sistema de inventario anterior.
//
// Uso: go run ./cmd/seed_catalog [ruta/productos.csv]
// Formato: codigo;nombre;precio;existencia (la primera fila es encabezado).
// Acepta archivos en UTF-8 o ISO-8859-1.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace espacio de nombres para derivar el UUID de cada producto desde su código.
var catalogNamespace = uuid.MustParse("6f1c2a8e-3b7d-4f0e-9a51-0c2d8e4b7a19")

type seedProduct struct {
	id    string
	code  string
	name  string
	price decimal.Decimal
	stock int64
}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	products, err := parseCatalog(bytes.NewReader(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", outPath, len(products))
}

// decodeInput convierte a UTF-8 si el contenido no lo es (exportaciones ISO-8859-1).
func decodeInput(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
}

// parseCatalog lee el CSV y devuelve los productos ordenados por código.
// Un código repetido conserva la última fila.
func parseCatalog(r io.Reader) ([]seedProduct, error) {
	in, err := decodeInput(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	byCode := make(map[string]seedProduct)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban 4 columnas, hay %d", line, len(rec))
		}
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if code == "" || name == "" {
			return nil, fmt.Errorf("línea %d: código y nombre son requeridos", line)
		}
		// precios exportados con coma decimal
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[2])
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("línea %d: existencia inválida %q", line, rec[3])
		}
		byCode[code] = seedProduct{
			id:    uuid.NewSHA1(catalogNamespace, []byte(code)).String(),
			code:  code,
			name:  name,
			price: price.Round(2),
			stock: stock,
		}
	}

	products := make([]seedProduct, 0, len(byCode))
	for _, p := range byCode {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].code < products[j].code })
	return products, nil
}

func writeSQL(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	if len(products) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO products (id, code, name, price, stock) VALUES\n")
	for i, p := range products {
		sep := ","
		if i == len(products)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s, %d)%s\n",
			p.id, escapeSQL(p.code), escapeSQL(p.name), p.price.StringFixed(2), p.stock, sep)
	}
	b.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, stock = EXCLUDED.stock, updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/invoice"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// InvoiceFile documento de factura listo para descargar.
type InvoiceFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// InvoiceUseCase genera la factura de una venta confirmada. Solo lee.
type InvoiceUseCase struct {
	saleRepo repository.SaleRepository
	renderer InvoiceRenderer
	issuer   invoice.Issuer
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(saleRepo repository.SaleRepository, renderer InvoiceRenderer, issuer invoice.Issuer) *InvoiceUseCase {
	return &InvoiceUseCase{saleRepo: saleRepo, renderer: renderer, issuer: issuer}
}

// Layout lee la venta y arma el árbol de layout de la factura sin renderizarlo.
func (uc *InvoiceUseCase) Layout(ctx context.Context, saleID string) (*invoice.Document, int64, error) {
	id, err := uuid.Parse(strings.TrimSpace(saleID))
	if err != nil {
		return nil, 0, domain.ErrSaleNotFound
	}
	snap, err := uc.saleRepo.GetSnapshot(ctx, id.String())
	if err != nil {
		return nil, 0, fmt.Errorf("leer venta: %w", err)
	}
	if snap == nil {
		return nil, 0, domain.ErrSaleNotFound
	}
	doc := invoice.Build(snap, uc.issuer)
	return &doc, snap.Number, nil
}

// Generate produce el PDF de la factura. Para la misma venta los bytes son idénticos entre llamadas.
func (uc *InvoiceUseCase) Generate(ctx context.Context, saleID string) (*InvoiceFile, error) {
	doc, number, err := uc.Layout(ctx, saleID)
	if err != nil {
		return nil, err
	}
	content, err := uc.renderer.Render(ctx, *doc)
	if err != nil {
		return nil, fmt.Errorf("renderizar factura: %w", err)
	}
	return &InvoiceFile{
		Filename:    InvoiceFilename(number),
		ContentType: uc.renderer.ContentType(),
		Content:     content,
	}, nil
}

// InvoiceFilename nombre de descarga de la factura.
func InvoiceFilename(number int64) string {
	return fmt.Sprintf("Factura_%d.pdf", number)
}

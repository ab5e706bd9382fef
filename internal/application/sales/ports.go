package sales

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/invoice"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// SalesTxRunner abre una transacción, entrega a fn una unidad de trabajo atada a ella y hace
// Commit si fn retorna nil o Rollback en cualquier otro caso (incluido panic).
// La espera por la transacción y sus bloqueos está acotada; al vencer retorna domain.ErrStorageConflict.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// InvoiceRenderer convierte el árbol de layout de la factura en bytes del documento.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc invoice.Document) ([]byte, error)
	ContentType() string
}

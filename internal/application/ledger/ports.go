package ledger

import (
	"context"

	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de existencias y su
// registro de auditoría confirmen juntos o no confirmen.
//
// La implementación debe traducir fallos de serialización o deadlock a
// domain.ErrConcurrencyConflict para que el Ledger pueda reintentar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		txRepo repository.InventoryTransactionRepository,
		transferRepo repository.LocationTransferRepository,
	) error) error
}

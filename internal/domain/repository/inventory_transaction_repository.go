package repository

import (
	"time"

	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
)

// TransactionFilter filtros opcionales para el historial de transacciones.
type TransactionFilter struct {
	ProductID  string
	LocationID string
	From       *time.Time
	To         *time.Time
}

// InventoryTransactionRepository define el puerto de persistencia para el
// registro de auditoría de movimientos (entrada/salida/ajuste).
type InventoryTransactionRepository interface {
	// Create persiste la transacción y asigna su ID secuencial.
	Create(tx *entity.InventoryTransaction) error
	// List devuelve transacciones más recientes primero (empates por ID ascendente).
	List(filter TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, error)
}

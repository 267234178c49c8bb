package repository

import "github.com/Dasso14/ModuloInventario/internal/domain/entity"

// StockLevelFilter filtros opcionales para listar existencias.
type StockLevelFilter struct {
	ProductID  string
	LocationID string
}

// StockLevelRepository define el puerto para consultar/actualizar existencias
// por (producto, ubicación). Solo el Ledger escribe a través de él, dentro de
// transacciones, para garantizar consistencia.
type StockLevelRepository interface {
	Get(productID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Si el par no existe devuelve un registro con cantidad cero.
	GetForUpdate(productID, locationID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	List(filter StockLevelFilter, limit, offset int) ([]*entity.StockLevel, error)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockRow fila del reporte de stock bajo: existencia en o por debajo del
// umbral mínimo del producto.
type LowStockRow struct {
	ProductID   string
	SKU         string
	ProductName string
	LocationID  string
	Location    string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
}

// DashboardTotals agregados para el tablero de inventario.
type DashboardTotals struct {
	TotalProducts  int64
	TotalLocations int64
	UnitsOnHand    decimal.Decimal
	InventoryValue decimal.Decimal // unidades * costo unitario
	LowStockCount  int64
}

// ReportRepository define el puerto de consultas de reportes derivados del
// estado del Ledger (solo lectura).
type ReportRepository interface {
	// LowStock devuelve los pares (producto, ubicación) con quantity <= min_stock,
	// en orden determinista (product_id, location_id ascendente).
	LowStock(ctx context.Context) ([]LowStockRow, error)
	Dashboard(ctx context.Context) (*DashboardTotals, error)
}

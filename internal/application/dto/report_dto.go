package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRowDTO fila del reporte de stock bajo.
type LowStockRowDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	LocationID  string          `json:"location_id"`
	Location    string          `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// StockLevelsReportQuery filtros para GET /api/reports/stock-levels.
type StockLevelsReportQuery struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
}

// HistoryQuery filtros para los historiales de transacciones y traslados.
type HistoryQuery struct {
	ProductID  string     `query:"product_id"`
	LocationID string     `query:"location_id"`
	From       *time.Time `query:"from"`
	To         *time.Time `query:"to"`
	Limit      int        `query:"limit"`
	Offset     int        `query:"offset"`
}

// DashboardResponse agregados del tablero de inventario.
type DashboardResponse struct {
	TotalProducts  int64           `json:"total_products"`
	TotalLocations int64           `json:"total_locations"`
	UnitsOnHand    decimal.Decimal `json:"units_on_hand"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int64           `json:"low_stock_count"`
}

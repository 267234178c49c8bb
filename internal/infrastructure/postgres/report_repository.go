package postgres

import (
	"context"
	"fmt"

	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes derivados del Ledger (solo lectura).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStock devuelve los pares (producto, ubicación) con existencia en o por
// debajo del umbral mínimo del producto, en orden determinista.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, l.id, l.name, s.quantity, p.min_stock
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id
		WHERE p.active AND s.quantity <= p.min_stock
		ORDER BY p.id, l.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName,
			&row.LocationID, &row.Location, &row.Quantity, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Dashboard calcula los agregados del tablero de inventario.
func (r *ReportRepo) Dashboard(ctx context.Context) (*repository.DashboardTotals, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products WHERE active),
			(SELECT count(*) FROM locations WHERE active),
			COALESCE((SELECT sum(quantity) FROM stock_levels), 0),
			COALESCE((SELECT sum(s.quantity * p.unit_cost) FROM stock_levels s JOIN products p ON p.id = s.product_id), 0),
			(SELECT count(*) FROM stock_levels s JOIN products p ON p.id = s.product_id
			 WHERE p.active AND s.quantity <= p.min_stock)`
	var t repository.DashboardTotals
	err := r.q.QueryRow(ctx, query).Scan(
		&t.TotalProducts, &t.TotalLocations, &t.UnitsOnHand, &t.InventoryValue, &t.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("query dashboard totals: %w", err)
	}
	return &t, nil
}

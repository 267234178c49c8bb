package postgres

import (
	"context"
	"fmt"

	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste la transacción de auditoría y asigna su ID secuencial.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (type, product_id, location_id, quantity, timestamp, user_id, reference_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	userID := (*string)(nil)
	if tx.UserID != "" {
		userID = &tx.UserID
	}
	err := r.q.QueryRow(context.Background(), query,
		tx.Type, tx.ProductID, tx.LocationID, tx.Quantity,
		tx.Timestamp, userID, tx.ReferenceNumber, tx.Notes,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// List lista transacciones más recientes primero (empates por ID ascendente).
func (r *InventoryTransactionRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, type, product_id, location_id, quantity, timestamp, user_id, reference_number, notes
		FROM inventory_transactions WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var userID *string
		if err := rows.Scan(&t.ID, &t.Type, &t.ProductID, &t.LocationID, &t.Quantity,
			&t.Timestamp, &userID, &t.ReferenceNumber, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		if userID != nil {
			t.UserID = *userID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

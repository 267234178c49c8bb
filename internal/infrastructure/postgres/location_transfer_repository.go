package postgres

import (
	"context"
	"fmt"

	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

var _ repository.LocationTransferRepository = (*LocationTransferRepo)(nil)

// LocationTransferRepo implementación sobre PostgreSQL (usable con pool o tx).
type LocationTransferRepo struct {
	q Querier
}

// NewLocationTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationTransferRepository(q Querier) *LocationTransferRepo {
	return &LocationTransferRepo{q: q}
}

// Create persiste el traslado de auditoría y asigna su ID secuencial.
func (r *LocationTransferRepo) Create(transfer *entity.LocationTransfer) error {
	query := `
		INSERT INTO location_transfers (product_id, from_location_id, to_location_id, quantity, timestamp, user_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	userID := (*string)(nil)
	if transfer.UserID != "" {
		userID = &transfer.UserID
	}
	err := r.q.QueryRow(context.Background(), query,
		transfer.ProductID, transfer.FromLocationID, transfer.ToLocationID,
		transfer.Quantity, transfer.Timestamp, userID, transfer.Notes,
	).Scan(&transfer.ID)
	if err != nil {
		return fmt.Errorf("create location transfer: %w", err)
	}
	return nil
}

// List lista traslados más recientes primero (empates por ID ascendente).
// El filtro de ubicación coincide con origen o destino.
func (r *LocationTransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.LocationTransfer, error) {
	query := `
		SELECT id, product_id, from_location_id, to_location_id, quantity, timestamp, user_id, notes
		FROM location_transfers WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND (from_location_id = $%d OR to_location_id = $%d)", pos, pos)
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
		return nil, fmt.Errorf("list location transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationTransfer
	for rows.Next() {
		var t entity.LocationTransfer
		var userID *string
		if err := rows.Scan(&t.ID, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
			&t.Quantity, &t.Timestamp, &userID, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan location transfer: %w", err)
		}
		if userID != nil {
			t.UserID = *userID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

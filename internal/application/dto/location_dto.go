package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name     string           `json:"name"`
	ParentID *string          `json:"parent_id"`
	Capacity *decimal.Decimal `json:"capacity"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name     *string          `json:"name"`
	ParentID *string          `json:"parent_id"`
	Capacity *decimal.Decimal `json:"capacity"`
	Active   *bool            `json:"active"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	ParentID  *string          `json:"parent_id,omitempty"`
	Capacity  *decimal.Decimal `json:"capacity,omitempty"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

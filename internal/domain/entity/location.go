package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location representa una ubicación física donde se almacena inventario
// (bodega, estante, zona). ParentID permite jerarquía; nunca debe formar ciclos.
type Location struct {
	ID        string
	Name      string
	ParentID  *string
	Capacity  *decimal.Decimal // capacidad de almacenamiento opcional, >= 0
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

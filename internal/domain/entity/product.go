package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// MinStock siempre está definido; MaxStock es opcional y, si existe, nunca es menor que MinStock.
// El Ledger solo lo referencia, nunca lo muta.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  *string
	SupplierID  *string
	UnitCost    decimal.Decimal
	UnitPrice   decimal.Decimal
	MinStock    decimal.Decimal
	MaxStock    *decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la existencia actual de un producto en una ubicación.
// Clave compuesta (ProductID, LocationID): a lo sumo un registro por par.
// Quantity es el acumulado de todos los movimientos confirmados y nunca es negativa;
// cero es un estado terminal válido, el registro no se borra.
type StockLevel struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationTransfer es el registro de auditoría de un traslado confirmado entre
// ubicaciones. Implica dos mutaciones de StockLevel (resta origen, suma destino)
// que confirman juntas o no confirman. Inmutable una vez creado.
type LocationTransfer struct {
	ID             int64
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal // siempre positiva
	Timestamp      time.Time
	UserID         string
	Notes          string
}

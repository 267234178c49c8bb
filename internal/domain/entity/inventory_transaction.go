package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeEntrada = "entrada" // adición de stock
	TransactionTypeSalida  = "salida"  // retiro de stock
	TransactionTypeAjuste  = "ajuste"  // ajuste con signo propio
)

// InventoryTransaction es el registro de auditoría de un movimiento confirmado
// (una por cada adición, retiro o ajuste; los traslados generan LocationTransfer).
// Inmutable una vez creada. El signo de Quantity coincide con el tipo:
// entrada > 0, salida < 0, ajuste lleva su propio signo.
type InventoryTransaction struct {
	ID              int64
	Type            string
	ProductID       string
	LocationID      string
	Quantity        decimal.Decimal // delta firmado realmente aplicado
	Timestamp       time.Time
	UserID          string
	ReferenceNumber string
	Notes           string
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/inventory/add y /api/inventory/remove.
type AddStockRequest struct {
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjust.
// Quantity lleva signo (≠ 0); notes son obligatorias.
type AdjustStockRequest struct {
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes"`
}

// TransferStockRequest body para POST /api/inventory/transfer.
type TransferStockRequest struct {
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Notes          string          `json:"notes,omitempty"`
}

// StockLevelResponse existencia de un producto en una ubicación.
type StockLevelResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TransactionResponse registro de auditoría de un movimiento.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	Type            string          `json:"type"`
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Timestamp       time.Time       `json:"timestamp"`
	UserID          string          `json:"user_id"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// TransferResponse registro de auditoría de un traslado.
type TransferResponse struct {
	ID             int64           `json:"id"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Timestamp      time.Time       `json:"timestamp"`
	UserID         string          `json:"user_id"`
	Notes          string          `json:"notes,omitempty"`
}

// MovementResponse payload de éxito de add/remove/adjust: existencia
// actualizada más la transacción creada.
type MovementResponse struct {
	StockLevel  StockLevelResponse  `json:"stock_level"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransferResultResponse payload de éxito de transfer: ambas existencias
// actualizadas más el registro de traslado.
type TransferResultResponse struct {
	FromLevel StockLevelResponse `json:"from_level"`
	ToLevel   StockLevelResponse `json:"to_level"`
	Transfer  TransferResponse   `json:"transfer"`
}

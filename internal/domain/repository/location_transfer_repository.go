package repository

import (
	"time"

	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
)

// TransferFilter filtros opcionales para el historial de traslados.
type TransferFilter struct {
	ProductID  string
	LocationID string // coincide con origen o destino
	From       *time.Time
	To         *time.Time
}

// LocationTransferRepository define el puerto de persistencia para el registro
// de auditoría de traslados entre ubicaciones.
type LocationTransferRepository interface {
	// Create persiste el traslado y asigna su ID secuencial.
	Create(transfer *entity.LocationTransfer) error
	// List devuelve traslados más recientes primero (empates por ID ascendente).
	List(filter TransferFilter, limit, offset int) ([]*entity.LocationTransfer, error)
}

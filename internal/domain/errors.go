package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// Errores del libro de inventario (Stock Ledger).
var (
	// ErrInvalidReference producto o ubicación inexistente o inactiva.
	ErrInvalidReference = errors.New("producto o ubicación no válida")
	// ErrInvalidQuantity cantidad cero o negativa donde no se permite.
	ErrInvalidQuantity = errors.New("cantidad inválida")
	// ErrInsufficientStock el movimiento dejaría la existencia en negativo.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrSameLocation traslado con origen igual al destino.
	ErrSameLocation = errors.New("la ubicación de origen y destino deben ser distintas")
	// ErrMissingJustification ajuste sin notas de justificación.
	ErrMissingJustification = errors.New("el ajuste requiere notas de justificación")
	// ErrConcurrencyConflict contención de bloqueo/transacción tras agotar reintentos.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	// ErrHierarchyCycle el padre indicado formaría un ciclo en la jerarquía.
	ErrHierarchyCycle = errors.New("el registro no puede ser su propio ancestro")
)

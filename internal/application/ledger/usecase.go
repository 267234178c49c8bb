package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dasso14/ModuloInventario/internal/domain"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// maxRetries reintentos internos ante domain.ErrConcurrencyConflict antes de
// propagarlo al caller. Nunca se reaplica un movimiento ya confirmado: el
// reintento solo ocurre cuando la transacción completa hizo rollback.
const maxRetries = 3

// UseCase es el Stock Ledger: única autoridad para mutar StockLevel.
// Aplica los cuatro tipos de movimiento (adición, retiro, ajuste, traslado)
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y produce el
// registro de auditoría que consumen los reportes.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el Ledger.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, locationRepo repository.LocationRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, locationRepo: locationRepo}
}

// AdditionInput entrada para una adición de stock.
type AdditionInput struct {
	ProductID       string
	LocationID      string
	Quantity        decimal.Decimal // > 0
	UserID          string
	ReferenceNumber string
	Notes           string
}

// RemovalInput entrada para un retiro de stock.
type RemovalInput struct {
	ProductID       string
	LocationID      string
	Quantity        decimal.Decimal // > 0
	UserID          string
	ReferenceNumber string
	Notes           string
}

// AdjustmentInput entrada para un ajuste. Quantity lleva signo (≠ 0) y las
// notas de justificación son obligatorias.
type AdjustmentInput struct {
	ProductID       string
	LocationID      string
	Quantity        decimal.Decimal
	UserID          string
	ReferenceNumber string
	Notes           string
}

// TransferInput entrada para un traslado entre ubicaciones.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal // > 0
	UserID         string
	Notes          string
}

// MovementResult existencia actualizada y transacción de auditoría creada.
type MovementResult struct {
	StockLevel  *entity.StockLevel
	Transaction *entity.InventoryTransaction
}

// TransferResult ambas existencias actualizadas y el registro de traslado.
type TransferResult struct {
	FromLevel *entity.StockLevel
	ToLevel   *entity.StockLevel
	Transfer  *entity.LocationTransfer
}

// ApplyAddition crea el StockLevel si no existe (cantidad 0), suma la cantidad
// y registra una transacción de tipo entrada con el delta aplicado.
func (uc *UseCase) ApplyAddition(ctx context.Context, in AdditionInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if err := uc.checkReferences(in.ProductID, in.LocationID); err != nil {
		return nil, err
	}
	return uc.commitMovement(ctx, movement{
		typ:        entity.TransactionTypeEntrada,
		productID:  in.ProductID,
		locationID: in.LocationID,
		delta:      in.Quantity,
		userID:     in.UserID,
		reference:  in.ReferenceNumber,
		notes:      in.Notes,
	})
}

// ApplyRemoval rechaza con ErrInsufficientStock si la existencia actual es
// menor que la solicitada; si no, resta y registra una salida con delta negativo.
func (uc *UseCase) ApplyRemoval(ctx context.Context, in RemovalInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if err := uc.checkReferences(in.ProductID, in.LocationID); err != nil {
		return nil, err
	}
	return uc.commitMovement(ctx, movement{
		typ:        entity.TransactionTypeSalida,
		productID:  in.ProductID,
		locationID: in.LocationID,
		delta:      in.Quantity.Neg(),
		userID:     in.UserID,
		reference:  in.ReferenceNumber,
		notes:      in.Notes,
	})
}

// ApplyAdjustment aplica un delta firmado (≠ 0). Los ajustes negativos pasan
// por la misma verificación de suficiencia que un retiro. Las notas son
// obligatorias (ErrMissingJustification si vienen vacías).
func (uc *UseCase) ApplyAdjustment(ctx context.Context, in AdjustmentInput) (*MovementResult, error) {
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrMissingJustification
	}
	if err := uc.checkReferences(in.ProductID, in.LocationID); err != nil {
		return nil, err
	}
	return uc.commitMovement(ctx, movement{
		typ:        entity.TransactionTypeAjuste,
		productID:  in.ProductID,
		locationID: in.LocationID,
		delta:      in.Quantity,
		userID:     in.UserID,
		reference:  in.ReferenceNumber,
		notes:      in.Notes,
	})
}

// ApplyTransfer resta de la ubicación origen y suma en la destino de forma
// atómica: ambas mutaciones y el registro de traslado confirman juntos o no
// confirman. Las filas se bloquean en orden total fijo por id de ubicación
// para evitar deadlocks entre traslados cruzados.
func (uc *UseCase) ApplyTransfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrSameLocation
	}
	if err := uc.checkReferences(in.ProductID, in.FromLocationID); err != nil {
		return nil, err
	}
	if err := uc.checkLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	var result *TransferResult
	err := uc.runWithRetry(ctx, func(
		stockRepo repository.StockLevelRepository,
		_ repository.InventoryTransactionRepository,
		transferRepo repository.LocationTransferRepository,
	) error {
		now := time.Now()

		// Bloqueo en orden ascendente de id de ubicación, no en orden de la petición.
		firstID, secondID := in.FromLocationID, in.ToLocationID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := stockRepo.GetForUpdate(in.ProductID, firstID)
		if err != nil {
			return err
		}
		second, err := stockRepo.GetForUpdate(in.ProductID, secondID)
		if err != nil {
			return err
		}

		origin, dest := first, second
		if origin.LocationID != in.FromLocationID {
			origin, dest = second, first
		}

		if origin.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		origin.Quantity = origin.Quantity.Sub(in.Quantity)
		dest.Quantity = dest.Quantity.Add(in.Quantity)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := stockRepo.Upsert(origin); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}

		transfer := &entity.LocationTransfer{
			ProductID:      in.ProductID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Quantity:       in.Quantity,
			Timestamp:      now,
			UserID:         in.UserID,
			Notes:          in.Notes,
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		result = &TransferResult{FromLevel: origin, ToLevel: dest, Transfer: transfer}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// movement delta firmado listo para confirmar contra una sola existencia.
type movement struct {
	typ        string
	productID  string
	locationID string
	delta      decimal.Decimal
	userID     string
	reference  string
	notes      string
}

// commitMovement bloquea la fila de existencia, verifica que el resultado no
// quede negativo, actualiza la cantidad y registra la transacción de auditoría
// en la misma transacción de BD.
func (uc *UseCase) commitMovement(ctx context.Context, m movement) (*MovementResult, error) {
	var result *MovementResult
	err := uc.runWithRetry(ctx, func(
		stockRepo repository.StockLevelRepository,
		txRepo repository.InventoryTransactionRepository,
		_ repository.LocationTransferRepository,
	) error {
		now := time.Now()
		level, err := stockRepo.GetForUpdate(m.productID, m.locationID)
		if err != nil {
			return err
		}
		newQty := level.Quantity.Add(m.delta)
		if newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		level.Quantity = newQty
		level.UpdatedAt = now
		if err := stockRepo.Upsert(level); err != nil {
			return err
		}
		tx := &entity.InventoryTransaction{
			Type:            m.typ,
			ProductID:       m.productID,
			LocationID:      m.locationID,
			Quantity:        m.delta,
			Timestamp:       now,
			UserID:          m.userID,
			ReferenceNumber: m.reference,
			Notes:           m.notes,
		}
		if err := txRepo.Create(tx); err != nil {
			return err
		}
		result = &MovementResult{StockLevel: level, Transaction: tx}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// runWithRetry ejecuta la transacción y reintenta ante ErrConcurrencyConflict
// hasta maxRetries veces. Cualquier otro error se propaga de inmediato.
func (uc *UseCase) runWithRetry(ctx context.Context, fn func(
	repository.StockLevelRepository,
	repository.InventoryTransactionRepository,
	repository.LocationTransferRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

// checkReferences valida que producto y ubicación existan y estén activos.
func (uc *UseCase) checkReferences(productID, locationID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.Active {
		return domain.ErrInvalidReference
	}
	return uc.checkLocation(locationID)
}

func (uc *UseCase) checkLocation(locationID string) error {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return err
	}
	if location == nil || !location.Active {
		return domain.ErrInvalidReference
	}
	return nil
}

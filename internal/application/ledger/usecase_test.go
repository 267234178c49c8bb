package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasso14/ModuloInventario/internal/domain"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: TxRunner con commit/rollback real (clona el estado, lo
// intercambia solo si fn termina sin error) y serialización por mutex, igual
// que una transacción de BD con SELECT FOR UPDATE.
// ──────────────────────────────────────────────────────────────────────────────

type memoryState struct {
	levels    map[string]*entity.StockLevel
	txs       []*entity.InventoryTransaction
	transfers []*entity.LocationTransfer
	nextTxID  int64
	nextTrID  int64
}

func key(productID, locationID string) string { return productID + "|" + locationID }

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		levels:   make(map[string]*entity.StockLevel, len(s.levels)),
		nextTxID: s.nextTxID,
		nextTrID: s.nextTrID,
	}
	for k, v := range s.levels {
		cp := *v
		c.levels[k] = &cp
	}
	c.txs = append(c.txs, s.txs...)
	c.transfers = append(c.transfers, s.transfers...)
	return c
}

type memoryTxRunner struct {
	mu    sync.Mutex
	state *memoryState
}

func newMemoryTxRunner() *memoryTxRunner {
	return &memoryTxRunner{state: &memoryState{levels: make(map[string]*entity.StockLevel)}}
}

func (r *memoryTxRunner) Run(_ context.Context, fn func(
	repository.StockLevelRepository,
	repository.InventoryTransactionRepository,
	repository.LocationTransferRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := r.state.clone()
	if err := fn(&memoryStockRepo{staged}, &memoryTxRepo{staged}, &memoryTransferRepo{staged}); err != nil {
		return err
	}
	r.state = staged
	return nil
}

func (r *memoryTxRunner) level(productID, locationID string) *entity.StockLevel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.levels[key(productID, locationID)]
}

type memoryStockRepo struct{ s *memoryState }

func (m *memoryStockRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	return m.GetForUpdate(productID, locationID)
}

func (m *memoryStockRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	if l, ok := m.s.levels[key(productID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	return &entity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (m *memoryStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	m.s.levels[key(level.ProductID, level.LocationID)] = &cp
	return nil
}

func (m *memoryStockRepo) List(repository.StockLevelFilter, int, int) ([]*entity.StockLevel, error) {
	out := make([]*entity.StockLevel, 0, len(m.s.levels))
	for _, l := range m.s.levels {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type memoryTxRepo struct{ s *memoryState }

func (m *memoryTxRepo) Create(tx *entity.InventoryTransaction) error {
	m.s.nextTxID++
	tx.ID = m.s.nextTxID
	cp := *tx
	m.s.txs = append(m.s.txs, &cp)
	return nil
}

func (m *memoryTxRepo) List(repository.TransactionFilter, int, int) ([]*entity.InventoryTransaction, error) {
	return append([]*entity.InventoryTransaction(nil), m.s.txs...), nil
}

type memoryTransferRepo struct{ s *memoryState }

func (m *memoryTransferRepo) Create(tr *entity.LocationTransfer) error {
	m.s.nextTrID++
	tr.ID = m.s.nextTrID
	cp := *tr
	m.s.transfers = append(m.s.transfers, &cp)
	return nil
}

func (m *memoryTransferRepo) List(repository.TransferFilter, int, int) ([]*entity.LocationTransfer, error) {
	return append([]*entity.LocationTransfer(nil), m.s.transfers...), nil
}

type memoryProductRepo struct{ products map[string]*entity.Product }

func (m *memoryProductRepo) Create(p *entity.Product) error { m.products[p.ID] = p; return nil }
func (m *memoryProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memoryProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (m *memoryProductRepo) Update(*entity.Product) error             { return nil }
func (m *memoryProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (m *memoryProductRepo) Deactivate(string) error                  { return nil }

type memoryLocationRepo struct{ locations map[string]*entity.Location }

func (m *memoryLocationRepo) Create(l *entity.Location) error { m.locations[l.ID] = l; return nil }
func (m *memoryLocationRepo) GetByID(id string) (*entity.Location, error) {
	return m.locations[id], nil
}
func (m *memoryLocationRepo) Update(*entity.Location) error             { return nil }
func (m *memoryLocationRepo) List(int, int) ([]*entity.Location, error) { return nil, nil }
func (m *memoryLocationRepo) Deactivate(string) error                   { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodID = "p-1"
	loc1   = "loc-a"
	loc2   = "loc-b"
	userID = "u-1"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildLedger(t *testing.T) (*UseCase, *memoryTxRunner) {
	t.Helper()
	runner := newMemoryTxRunner()
	products := &memoryProductRepo{products: map[string]*entity.Product{
		prodID: {ID: prodID, SKU: "SKU-1", Name: "Tornillo", MinStock: qty("10"), Active: true},
	}}
	locations := &memoryLocationRepo{locations: map[string]*entity.Location{
		loc1: {ID: loc1, Name: "Bodega A", Active: true},
		loc2: {ID: loc2, Name: "Bodega B", Active: true},
	}}
	return NewUseCase(runner, products, locations), runner
}

func seed(t *testing.T, uc *UseCase, locationID, quantity string) {
	t.Helper()
	_, err := uc.ApplyAddition(context.Background(), AdditionInput{
		ProductID: prodID, LocationID: locationID, Quantity: qty(quantity), UserID: userID,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adiciones y retiros
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAddition_CreaExistenciaYTransaccion(t *testing.T) {
	uc, _ := buildLedger(t)

	res, err := uc.ApplyAddition(context.Background(), AdditionInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("15"), UserID: userID,
		ReferenceNumber: "OC-001",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.StockLevel.Quantity.Equal(qty("15")))
	assert.Equal(t, entity.TransactionTypeEntrada, res.Transaction.Type)
	assert.True(t, res.Transaction.Quantity.Equal(qty("15")), "entrada se registra con delta positivo")
	assert.Equal(t, "OC-001", res.Transaction.ReferenceNumber)
	assert.NotZero(t, res.Transaction.ID, "la transacción recibe ID secuencial")
}

func TestApplyAddition_CantidadInvalida(t *testing.T) {
	uc, _ := buildLedger(t)
	for _, q := range []string{"0", "-5"} {
		_, err := uc.ApplyAddition(context.Background(), AdditionInput{
			ProductID: prodID, LocationID: loc1, Quantity: qty(q), UserID: userID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %s debe rechazarse", q)
	}
}

func TestApplyRemoval_StockInsuficiente_NoMuta(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "15")

	// Primer retiro: 15 - 10 = 5 (queda en stock bajo, min_stock = 10)
	res, err := uc.ApplyRemoval(context.Background(), RemovalInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("10"), UserID: userID,
	})
	require.NoError(t, err)
	assert.True(t, res.StockLevel.Quantity.Equal(qty("5")))
	assert.Equal(t, entity.TransactionTypeSalida, res.Transaction.Type)
	assert.True(t, res.Transaction.Quantity.Equal(qty("-10")), "salida se registra con delta negativo")

	// Segundo retiro de 10 sobre 5: falla y el estado no cambia
	_, err = uc.ApplyRemoval(context.Background(), RemovalInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("10"), UserID: userID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("5")), "el retiro fallido no debe mutar la existencia")
}

func TestApplyRemoval_ReferenciaInvalida(t *testing.T) {
	uc, _ := buildLedger(t)

	_, err := uc.ApplyRemoval(context.Background(), RemovalInput{
		ProductID: "no-existe", LocationID: loc1, Quantity: qty("1"), UserID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = uc.ApplyRemoval(context.Background(), RemovalInput{
		ProductID: prodID, LocationID: "no-existe", Quantity: qty("1"), UserID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestApplyAddition_ProductoInactivo(t *testing.T) {
	runner := newMemoryTxRunner()
	products := &memoryProductRepo{products: map[string]*entity.Product{
		prodID: {ID: prodID, SKU: "SKU-1", Name: "Descontinuado", MinStock: qty("0"), Active: false},
	}}
	locations := &memoryLocationRepo{locations: map[string]*entity.Location{
		loc1: {ID: loc1, Name: "Bodega A", Active: true},
	}}
	uc := NewUseCase(runner, products, locations)

	_, err := uc.ApplyAddition(context.Background(), AdditionInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("1"), UserID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference, "producto inactivo no admite movimientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAdjustment_NegativoConNotas(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "5")

	res, err := uc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("-3"), UserID: userID,
		Notes: "breakage",
	})
	require.NoError(t, err)
	assert.True(t, res.StockLevel.Quantity.Equal(qty("2")))
	assert.Equal(t, entity.TransactionTypeAjuste, res.Transaction.Type)
	assert.True(t, res.Transaction.Quantity.Equal(qty("-3")), "el ajuste conserva su propio signo")
	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("2")))
}

func TestApplyAdjustment_SinNotas(t *testing.T) {
	uc, _ := buildLedger(t)
	seed(t, uc, loc1, "5")

	for _, notes := range []string{"", "   "} {
		_, err := uc.ApplyAdjustment(context.Background(), AdjustmentInput{
			ProductID: prodID, LocationID: loc1, Quantity: qty("-1"), UserID: userID, Notes: notes,
		})
		assert.ErrorIs(t, err, domain.ErrMissingJustification)
	}
}

func TestApplyAdjustment_CeroRechazado(t *testing.T) {
	uc, _ := buildLedger(t)
	_, err := uc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("0"), UserID: userID, Notes: "conteo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApplyAdjustment_NegativoInsuficiente(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "2")

	_, err := uc.ApplyAdjustment(context.Background(), AdjustmentInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("-5"), UserID: userID, Notes: "conteo físico",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("2")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTransfer_MueveStockYRegistraTraslado(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "20")

	res, err := uc.ApplyTransfer(context.Background(), TransferInput{
		ProductID: prodID, FromLocationID: loc1, ToLocationID: loc2,
		Quantity: qty("5"), UserID: userID, Notes: "reubicación",
	})
	require.NoError(t, err)
	assert.True(t, res.FromLevel.Quantity.Equal(qty("15")))
	assert.True(t, res.ToLevel.Quantity.Equal(qty("5")), "el destino se crea con la cantidad trasladada")
	assert.True(t, res.Transfer.Quantity.Equal(qty("5")))
	assert.NotZero(t, res.Transfer.ID)

	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("15")))
	assert.True(t, runner.level(prodID, loc2).Quantity.Equal(qty("5")))
}

func TestApplyTransfer_InsuficienteNoCambiaNada(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "15")

	_, err := uc.ApplyTransfer(context.Background(), TransferInput{
		ProductID: prodID, FromLocationID: loc1, ToLocationID: loc2,
		Quantity: qty("20"), UserID: userID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("15")), "origen intacto")
	assert.Nil(t, runner.level(prodID, loc2), "destino no se crea en un traslado fallido")

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Empty(t, runner.state.transfers, "no debe quedar registro de traslado")
}

func TestApplyTransfer_MismaUbicacion(t *testing.T) {
	uc, _ := buildLedger(t)
	_, err := uc.ApplyTransfer(context.Background(), TransferInput{
		ProductID: prodID, FromLocationID: loc1, ToLocationID: loc1,
		Quantity: qty("1"), UserID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// La cantidad final de un par (producto, ubicación) es la suma de los deltas
// firmados de todos los movimientos confirmados.
func TestCantidadEsSumaDeDeltas(t *testing.T) {
	uc, runner := buildLedger(t)
	ctx := context.Background()

	seed(t, uc, loc1, "100")
	_, err := uc.ApplyRemoval(ctx, RemovalInput{ProductID: prodID, LocationID: loc1, Quantity: qty("30"), UserID: userID})
	require.NoError(t, err)
	_, err = uc.ApplyAdjustment(ctx, AdjustmentInput{ProductID: prodID, LocationID: loc1, Quantity: qty("-7.5"), UserID: userID, Notes: "merma"})
	require.NoError(t, err)
	_, err = uc.ApplyAdjustment(ctx, AdjustmentInput{ProductID: prodID, LocationID: loc1, Quantity: qty("2.5"), UserID: userID, Notes: "conteo"})
	require.NoError(t, err)

	runner.mu.Lock()
	sum := decimal.Zero
	for _, tx := range runner.state.txs {
		sum = sum.Add(tx.Quantity)
	}
	runner.mu.Unlock()

	assert.True(t, sum.Equal(qty("65")))
	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(sum))
}

// Dos retiros concurrentes de 6 sobre una existencia de 10: exactamente uno
// confirma (quedan 4) y el otro recibe ErrInsufficientStock.
func TestRetirosConcurrentes_SoloUnoConfirma(t *testing.T) {
	uc, runner := buildLedger(t)
	seed(t, uc, loc1, "10")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ApplyRemoval(context.Background(), RemovalInput{
				ProductID: prodID, LocationID: loc1, Quantity: qty("6"), UserID: userID,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un retiro debe confirmar")
	assert.Equal(t, 1, insufficient)
	assert.True(t, runner.level(prodID, loc1).Quantity.Equal(qty("4")))
}

// conflictingTxRunner simula contención: falla con ErrConcurrencyConflict un
// número fijo de veces antes de delegar en el runner real.
type conflictingTxRunner struct {
	inner    TxRunner
	failures int
	calls    int
}

func (r *conflictingTxRunner) Run(ctx context.Context, fn func(
	repository.StockLevelRepository,
	repository.InventoryTransactionRepository,
	repository.LocationTransferRepository,
) error) error {
	r.calls++
	if r.calls <= r.failures {
		return domain.ErrConcurrencyConflict
	}
	return r.inner.Run(ctx, fn)
}

func TestConflictoDeConcurrencia_ReintentaYLuegoConfirma(t *testing.T) {
	inner := newMemoryTxRunner()
	runner := &conflictingTxRunner{inner: inner, failures: 2}
	products := &memoryProductRepo{products: map[string]*entity.Product{
		prodID: {ID: prodID, SKU: "SKU-1", Name: "Tornillo", MinStock: qty("0"), Active: true},
	}}
	locations := &memoryLocationRepo{locations: map[string]*entity.Location{
		loc1: {ID: loc1, Name: "Bodega A", Active: true},
	}}
	uc := NewUseCase(runner, products, locations)

	res, err := uc.ApplyAddition(context.Background(), AdditionInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("3"), UserID: userID,
	})
	require.NoError(t, err, "dos conflictos caben dentro del presupuesto de reintentos")
	assert.Equal(t, 3, runner.calls)
	assert.True(t, res.StockLevel.Quantity.Equal(qty("3")))

	// El movimiento no se aplica dos veces pese a los reintentos.
	assert.True(t, inner.level(prodID, loc1).Quantity.Equal(qty("3")))
}

func TestConflictoDeConcurrencia_AgotaReintentos(t *testing.T) {
	runner := &conflictingTxRunner{inner: newMemoryTxRunner(), failures: 100}
	products := &memoryProductRepo{products: map[string]*entity.Product{
		prodID: {ID: prodID, SKU: "SKU-1", Name: "Tornillo", MinStock: qty("0"), Active: true},
	}}
	locations := &memoryLocationRepo{locations: map[string]*entity.Location{
		loc1: {ID: loc1, Name: "Bodega A", Active: true},
	}}
	uc := NewUseCase(runner, products, locations)

	_, err := uc.ApplyAddition(context.Background(), AdditionInput{
		ProductID: prodID, LocationID: loc1, Quantity: qty("3"), UserID: userID,
	})
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, maxRetries, runner.calls, "los reintentos son acotados")
}

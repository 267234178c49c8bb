package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasso14/ModuloInventario/internal/application/ledger"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
	apphttp "github.com/Dasso14/ModuloInventario/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el Ledger detrás del handler
// ──────────────────────────────────────────────────────────────────────────────

type handlerState struct {
	levels    map[string]*entity.StockLevel
	txs       []*entity.InventoryTransaction
	transfers []*entity.LocationTransfer
	nextTxID  int64
	nextTrID  int64
}

func levelKey(productID, locationID string) string { return productID + "|" + locationID }

type handlerStockRepo struct{ st *handlerState }

func (r *handlerStockRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	return r.GetForUpdate(productID, locationID)
}

func (r *handlerStockRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	if l, ok := r.st.levels[levelKey(productID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	return &entity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r *handlerStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.st.levels[levelKey(level.ProductID, level.LocationID)] = &cp
	return nil
}

func (r *handlerStockRepo) List(_ repository.StockLevelFilter, _, _ int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type handlerTxRepo struct{ st *handlerState }

func (r *handlerTxRepo) Create(tx *entity.InventoryTransaction) error {
	r.st.nextTxID++
	tx.ID = r.st.nextTxID
	cp := *tx
	r.st.txs = append(r.st.txs, &cp)
	return nil
}

func (r *handlerTxRepo) List(_ repository.TransactionFilter, _, _ int) ([]*entity.InventoryTransaction, error) {
	return r.st.txs, nil
}

type handlerTransferRepo struct{ st *handlerState }

func (r *handlerTransferRepo) Create(tr *entity.LocationTransfer) error {
	r.st.nextTrID++
	tr.ID = r.st.nextTrID
	cp := *tr
	r.st.transfers = append(r.st.transfers, &cp)
	return nil
}

func (r *handlerTransferRepo) List(_ repository.TransferFilter, _, _ int) ([]*entity.LocationTransfer, error) {
	return r.st.transfers, nil
}

// handlerTxRunner aplica el callback directamente sobre el estado. El Ledger
// valida antes de mutar, así que para estos escenarios no hace falta rollback.
type handlerTxRunner struct{ st *handlerState }

func (r *handlerTxRunner) Run(_ context.Context, fn func(
	repository.StockLevelRepository,
	repository.InventoryTransactionRepository,
	repository.LocationTransferRepository,
) error) error {
	return fn(&handlerStockRepo{st: r.st}, &handlerTxRepo{st: r.st}, &handlerTransferRepo{st: r.st})
}

type handlerProductRepo struct{ products map[string]*entity.Product }

func (r *handlerProductRepo) Create(*entity.Product) error { return nil }
func (r *handlerProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *handlerProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *handlerProductRepo) Update(*entity.Product) error             { return nil }
func (r *handlerProductRepo) List(_, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *handlerProductRepo) Deactivate(string) error                  { return nil }

type handlerLocationRepo struct{ locations map[string]*entity.Location }

func (r *handlerLocationRepo) Create(*entity.Location) error { return nil }
func (r *handlerLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *handlerLocationRepo) Update(*entity.Location) error             { return nil }
func (r *handlerLocationRepo) List(_, _ int) ([]*entity.Location, error) { return nil, nil }
func (r *handlerLocationRepo) Deactivate(string) error                   { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// App de test: rutas de inventario protegidas con el middleware real
// ──────────────────────────────────────────────────────────────────────────────

func buildInventoryApp(t *testing.T) (*fiber.App, *handlerState) {
	t.Helper()
	st := &handlerState{levels: map[string]*entity.StockLevel{}}
	now := time.Now()
	products := map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-1", Name: "Tornillos", Active: true, CreatedAt: now},
	}
	locations := map[string]*entity.Location{
		"loc-a": {ID: "loc-a", Name: "Bodega A", Active: true, CreatedAt: now},
		"loc-b": {ID: "loc-b", Name: "Bodega B", Active: true, CreatedAt: now},
	}

	uc := ledger.NewUseCase(
		&handlerTxRunner{st: st},
		&handlerProductRepo{products: products},
		&handlerLocationRepo{locations: locations},
	)

	app := fiber.New()
	handler := apphttp.NewInventoryHandler(uc)
	inv := app.Group("/api/inventory", apphttp.AuthMiddleware(testJWTSecret))
	inv.Post("/add", handler.AddStock)
	inv.Post("/remove", handler.RemoveStock)
	inv.Post("/adjust", handler.AdjustStock)
	inv.Post("/transfer", handler.TransferStock)
	return app, st
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_CreaExistenciaYTransaccion(t *testing.T) {
	app, st := buildInventoryApp(t)

	resp := postJSON(t, app, "/api/inventory/add", map[string]any{
		"product_id":  "prod-1",
		"location_id": "loc-a",
		"quantity":    "10",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	level := data["stock_level"].(map[string]interface{})
	assert.Equal(t, "10", level["quantity"])

	tx := data["transaction"].(map[string]interface{})
	assert.Equal(t, "entrada", tx["type"])
	assert.Equal(t, testUserID, tx["user_id"], "el movimiento debe atribuirse al usuario del token")

	require.Len(t, st.txs, 1)
	assert.True(t, st.levels[levelKey("prod-1", "loc-a")].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestAddStock_CantidadInvalida_Retorna400(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postJSON(t, app, "/api/inventory/add", map[string]any{
		"product_id":  "prod-1",
		"location_id": "loc-a",
		"quantity":    "0",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INVALID_QUANTITY", body["code"])
}

func TestAddStock_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postJSON(t, app, "/api/inventory/add", map[string]any{
		"product_id":  "prod-fantasma",
		"location_id": "loc-a",
		"quantity":    "5",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, "INVALID_REFERENCE", body["code"])
}

func TestRemoveStock_Insuficiente_Retorna409(t *testing.T) {
	app, st := buildInventoryApp(t)
	st.levels[levelKey("prod-1", "loc-a")] = &entity.StockLevel{
		ProductID: "prod-1", LocationID: "loc-a", Quantity: decimal.NewFromInt(3),
	}

	resp := postJSON(t, app, "/api/inventory/remove", map[string]any{
		"product_id":  "prod-1",
		"location_id": "loc-a",
		"quantity":    "5",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	// La existencia no debe cambiar tras el rechazo.
	assert.True(t, st.levels[levelKey("prod-1", "loc-a")].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestAdjustStock_SinNotas_Retorna400(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postJSON(t, app, "/api/inventory/adjust", map[string]any{
		"product_id":  "prod-1",
		"location_id": "loc-a",
		"quantity":    "-2",
		"notes":       "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, "MISSING_NOTES", body["code"])
}

func TestTransferStock_MismaUbicacion_Retorna400(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postJSON(t, app, "/api/inventory/transfer", map[string]any{
		"product_id":       "prod-1",
		"from_location_id": "loc-a",
		"to_location_id":   "loc-a",
		"quantity":         "5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, "SAME_LOCATION", body["code"])
}

func TestTransferStock_MueveYRegistraTraslado(t *testing.T) {
	app, st := buildInventoryApp(t)
	st.levels[levelKey("prod-1", "loc-a")] = &entity.StockLevel{
		ProductID: "prod-1", LocationID: "loc-a", Quantity: decimal.NewFromInt(20),
	}

	resp := postJSON(t, app, "/api/inventory/transfer", map[string]any{
		"product_id":       "prod-1",
		"from_location_id": "loc-a",
		"to_location_id":   "loc-b",
		"quantity":         "8",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	data := body["data"].(map[string]interface{})
	from := data["from_level"].(map[string]interface{})
	to := data["to_level"].(map[string]interface{})
	assert.Equal(t, "12", from["quantity"])
	assert.Equal(t, "8", to["quantity"])

	require.Len(t, st.transfers, 1)
	assert.Equal(t, "loc-a", st.transfers[0].FromLocationID)
	assert.Equal(t, "loc-b", st.transfers[0].ToLocationID)
	// Un traslado no genera transacciones de entrada/salida, solo su propio registro.
	assert.Empty(t, st.txs)
}

func TestInventario_SinToken_Retorna401(t *testing.T) {
	app, _ := buildInventoryApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/add", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

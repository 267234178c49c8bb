package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasso14/ModuloInventario/internal/application/dto"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// fakeReportRepo devuelve filas fijas.
type fakeReportRepo struct {
	rows   []repository.LowStockRow
	totals repository.DashboardTotals
}

func (r *fakeReportRepo) LowStock(_ context.Context) ([]repository.LowStockRow, error) {
	return r.rows, nil
}

func (r *fakeReportRepo) Dashboard(_ context.Context) (*repository.DashboardTotals, error) {
	t := r.totals
	return &t, nil
}

// fakeStockLevelRepo guarda existencias y registra el último filtro usado.
type fakeStockLevelRepo struct {
	levels     []*entity.StockLevel
	lastFilter repository.StockLevelFilter
}

func (r *fakeStockLevelRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	return r.GetForUpdate(productID, locationID)
}

func (r *fakeStockLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	for _, l := range r.levels {
		if l.ProductID == productID && l.LocationID == locationID {
			return l, nil
		}
	}
	return &entity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r *fakeStockLevelRepo) Upsert(*entity.StockLevel) error { return nil }

func (r *fakeStockLevelRepo) List(filter repository.StockLevelFilter, _, _ int) ([]*entity.StockLevel, error) {
	r.lastFilter = filter
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if filter.ProductID != "" && l.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && l.LocationID != filter.LocationID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeTransactionRepo struct {
	txs        []*entity.InventoryTransaction
	lastFilter repository.TransactionFilter
}

func (r *fakeTransactionRepo) Create(*entity.InventoryTransaction) error { return nil }

func (r *fakeTransactionRepo) List(filter repository.TransactionFilter, _, _ int) ([]*entity.InventoryTransaction, error) {
	r.lastFilter = filter
	return r.txs, nil
}

type fakeTransferRepo struct {
	transfers []*entity.LocationTransfer
}

func (r *fakeTransferRepo) Create(*entity.LocationTransfer) error { return nil }

func (r *fakeTransferRepo) List(repository.TransferFilter, int, int) ([]*entity.LocationTransfer, error) {
	return r.transfers, nil
}

// fakePDFGenerator registra las filas recibidas y devuelve bytes fijos.
type fakePDFGenerator struct {
	received []repository.LowStockRow
}

func (g *fakePDFGenerator) GenerateLowStockPDF(_ context.Context, rows []repository.LowStockRow) ([]byte, error) {
	g.received = rows
	return []byte("%PDF-fake"), nil
}

func buildReportUC() (*ReportUseCase, *fakeReportRepo, *fakeStockLevelRepo, *fakeTransactionRepo, *fakePDFGenerator) {
	reportRepo := &fakeReportRepo{}
	stockRepo := &fakeStockLevelRepo{}
	txRepo := &fakeTransactionRepo{}
	transferRepo := &fakeTransferRepo{}
	pdfGen := &fakePDFGenerator{}
	uc := NewReportUseCase(reportRepo, stockRepo, txRepo, transferRepo, pdfGen)
	return uc, reportRepo, stockRepo, txRepo, pdfGen
}

func TestReportLowStock_MapeaFilas(t *testing.T) {
	uc, reportRepo, _, _, _ := buildReportUC()
	reportRepo.rows = []repository.LowStockRow{
		{
			ProductID: "prod-1", SKU: "SKU-1", ProductName: "Tornillos",
			LocationID: "loc-a", Location: "Bodega A",
			Quantity: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(10),
		},
	}

	out, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "SKU-1", out[0].SKU)
	assert.Equal(t, "Bodega A", out[0].Location)
	assert.True(t, out[0].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestReportLowStockPDF_DelegaAlGenerador(t *testing.T) {
	uc, reportRepo, _, _, pdfGen := buildReportUC()
	reportRepo.rows = []repository.LowStockRow{
		{ProductID: "prod-1", SKU: "SKU-1", Quantity: decimal.Zero, MinStock: decimal.NewFromInt(3)},
	}

	doc, err := uc.LowStockPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	require.Len(t, pdfGen.received, 1, "el generador recibe las mismas filas del reporte")
	assert.Equal(t, "SKU-1", pdfGen.received[0].SKU)
}

func TestReportStockLevels_AplicaFiltros(t *testing.T) {
	uc, _, stockRepo, _, _ := buildReportUC()
	now := time.Now()
	stockRepo.levels = []*entity.StockLevel{
		{ProductID: "prod-1", LocationID: "loc-a", Quantity: decimal.NewFromInt(4), UpdatedAt: now},
		{ProductID: "prod-1", LocationID: "loc-b", Quantity: decimal.NewFromInt(9), UpdatedAt: now},
		{ProductID: "prod-2", LocationID: "loc-a", Quantity: decimal.NewFromInt(1), UpdatedAt: now},
	}

	out, err := uc.StockLevels(dto.StockLevelsReportQuery{ProductID: "prod-1"}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "prod-1", stockRepo.lastFilter.ProductID)

	out, err = uc.StockLevels(dto.StockLevelsReportQuery{ProductID: "prod-1", LocationID: "loc-b"}, 50, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Quantity.Equal(decimal.NewFromInt(9)))
}

func TestReportTransactionHistory_PropagaFiltroDeFechas(t *testing.T) {
	uc, _, _, txRepo, _ := buildReportUC()
	now := time.Now()
	txRepo.txs = []*entity.InventoryTransaction{
		{ID: 2, Type: entity.TransactionTypeSalida, ProductID: "prod-1", Quantity: decimal.NewFromInt(-3), Timestamp: now},
		{ID: 1, Type: entity.TransactionTypeEntrada, ProductID: "prod-1", Quantity: decimal.NewFromInt(10), Timestamp: now.Add(-time.Hour)},
	}

	from := now.Add(-2 * time.Hour)
	out, err := uc.TransactionHistory(dto.HistoryQuery{ProductID: "prod-1", From: &from, Limit: 50})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID, "el orden del repo (recientes primero) se preserva")
	assert.Equal(t, "prod-1", txRepo.lastFilter.ProductID)
	require.NotNil(t, txRepo.lastFilter.From)
	assert.True(t, txRepo.lastFilter.From.Equal(from))
}

func TestReportDashboard_MapeaTotales(t *testing.T) {
	uc, reportRepo, _, _, _ := buildReportUC()
	reportRepo.totals = repository.DashboardTotals{
		TotalProducts:  12,
		TotalLocations: 3,
		UnitsOnHand:    decimal.NewFromInt(480),
		InventoryValue: decimal.NewFromInt(96000),
		LowStockCount:  2,
	}

	out, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.TotalProducts)
	assert.Equal(t, int64(2), out.LowStockCount)
	assert.True(t, out.InventoryValue.Equal(decimal.NewFromInt(96000)))
}

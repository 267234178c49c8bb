package usecase

import (
	"context"

	"github.com/Dasso14/ModuloInventario/internal/application/dto"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// LowStockPDFGenerator puerto para exportar el reporte de stock bajo a PDF.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, rows []repository.LowStockRow) ([]byte, error)
}

// ReportUseCase consultas de solo lectura derivadas del estado del Ledger:
// stock bajo, existencias, historiales y tablero.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	stockRepo    repository.StockLevelRepository
	txRepo       repository.InventoryTransactionRepository
	transferRepo repository.LocationTransferRepository
	pdfGenerator LowStockPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	stockRepo repository.StockLevelRepository,
	txRepo repository.InventoryTransactionRepository,
	transferRepo repository.LocationTransferRepository,
	pdfGenerator LowStockPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		stockRepo:    stockRepo,
		txRepo:       txRepo,
		transferRepo: transferRepo,
		pdfGenerator: pdfGenerator,
	}
}

// LowStock devuelve los pares (producto, ubicación) en o por debajo del umbral
// mínimo, en orden determinista.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockRowDTO, error) {
	rows, err := uc.reportRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockRowDTO{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			LocationID:  r.LocationID,
			Location:    r.Location,
			Quantity:    r.Quantity,
			MinStock:    r.MinStock,
		})
	}
	return out, nil
}

// LowStockPDF genera la versión PDF del reporte de stock bajo.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.reportRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateLowStockPDF(ctx, rows)
}

// StockLevels devuelve existencias actuales, con filtros opcionales por
// producto y ubicación.
func (uc *ReportUseCase) StockLevels(q dto.StockLevelsReportQuery, limit, offset int) ([]dto.StockLevelResponse, error) {
	filter := repository.StockLevelFilter{ProductID: q.ProductID, LocationID: q.LocationID}
	levels, err := uc.stockRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, toStockLevelResponse(l))
	}
	return out, nil
}

// TransactionHistory devuelve el historial de transacciones, más recientes primero.
func (uc *ReportUseCase) TransactionHistory(q dto.HistoryQuery) ([]dto.TransactionResponse, error) {
	filter := repository.TransactionFilter{
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		From:       q.From,
		To:         q.To,
	}
	txs, err := uc.txRepo.List(filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

// TransferHistory devuelve el historial de traslados, más recientes primero.
func (uc *ReportUseCase) TransferHistory(q dto.HistoryQuery) ([]dto.TransferResponse, error) {
	filter := repository.TransferFilter{
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		From:       q.From,
		To:         q.To,
	}
	transfers, err := uc.transferRepo.List(filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, tr := range transfers {
		out = append(out, toTransferResponse(tr))
	}
	return out, nil
}

// Dashboard devuelve los agregados del tablero.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totals, err := uc.reportRepo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:  totals.TotalProducts,
		TotalLocations: totals.TotalLocations,
		UnitsOnHand:    totals.UnitsOnHand,
		InventoryValue: totals.InventoryValue,
		LowStockCount:  totals.LowStockCount,
	}, nil
}

func toStockLevelResponse(l *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:  l.ProductID,
		LocationID: l.LocationID,
		Quantity:   l.Quantity,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toTransactionResponse(tx *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		ProductID:       tx.ProductID,
		LocationID:      tx.LocationID,
		Quantity:        tx.Quantity,
		Timestamp:       tx.Timestamp,
		UserID:          tx.UserID,
		ReferenceNumber: tx.ReferenceNumber,
		Notes:           tx.Notes,
	}
}

func toTransferResponse(tr *entity.LocationTransfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:             tr.ID,
		ProductID:      tr.ProductID,
		FromLocationID: tr.FromLocationID,
		ToLocationID:   tr.ToLocationID,
		Quantity:       tr.Quantity,
		Timestamp:      tr.Timestamp,
		UserID:         tr.UserID,
		Notes:          tr.Notes,
	}
}

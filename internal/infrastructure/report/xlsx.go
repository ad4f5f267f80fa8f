package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
)

// StockXLSXGenerator genera el reporte de stock en XLSX usando excelize.
type StockXLSXGenerator struct{}

// NewStockXLSXGenerator construye el generador.
func NewStockXLSXGenerator() *StockXLSXGenerator { return &StockXLSXGenerator{} }

// Generate arma un libro con dos hojas: el tablero de stock y el historial
// de movimientos, y devuelve sus bytes.
func (g *StockXLSXGenerator) Generate(rows []dto.SnapshotRow, movements []entity.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Stock"); err != nil {
		return nil, fmt.Errorf("report: renombrar hoja: %w", err)
	}

	header := []interface{}{
		"id", "nombre", "tipo", "unidad", "valor_unitario",
		"stock_inicial", "entradas", "salidas", "ajustes",
		"consumo_examenes", "stock_actual", "stock_minimo", "bajo_minimo",
	}
	if err := f.SetSheetRow("Stock", "A1", &header); err != nil {
		return nil, fmt.Errorf("report: cabecera stock: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		unitPrice, _ := r.UnitPrice.Float64()
		values := []interface{}{
			r.MaterialID, r.Name, r.Type, r.Unit, unitPrice,
			r.InitialStock, r.Entries, r.Exits, r.Adjustments,
			r.Consumption, r.Current, r.MinStock, r.BelowMin,
		}
		if err := f.SetSheetRow("Stock", cell, &values); err != nil {
			return nil, fmt.Errorf("report: fila stock %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet("Movimientos"); err != nil {
		return nil, fmt.Errorf("report: hoja movimientos: %w", err)
	}
	movHeader := []interface{}{
		"id", "ts", "material_id", "tipo", "cantidad", "lote", "vencimiento", "obs",
	}
	if err := f.SetSheetRow("Movimientos", "A1", &movHeader); err != nil {
		return nil, fmt.Errorf("report: cabecera movimientos: %w", err)
	}
	for i, m := range movements {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			m.ID, m.CreatedAt, m.MaterialID, m.Type, m.Quantity,
			strOrEmpty(m.LotCode), strOrEmpty(m.Expiry), strOrEmpty(m.Note),
		}
		if err := f.SetSheetRow("Movimientos", cell, &values); err != nil {
			return nil, fmt.Errorf("report: fila movimiento %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

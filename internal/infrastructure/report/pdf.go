// Package report genera exportables gerenciales del tablero de stock:
// PDF (Maroto v2) y XLSX (excelize). Los reportes son derivados puros de
// las filas del tablero, sin estado propio.
package report

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// StockPDFGenerator genera el reporte de stock en PDF usando Maroto v2.
type StockPDFGenerator struct{}

// NewStockPDFGenerator construye el generador.
func NewStockPDFGenerator() *StockPDFGenerator { return &StockPDFGenerator{} }

// Generate arma el PDF del tablero de stock y devuelve sus bytes.
func (g *StockPDFGenerator) Generate(portalName string, rows []dto.SnapshotRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		WithAuthor(portalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(portalName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del portal (izq) y fecha de corte (der).
func headerRow(portalName string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(7).Add(
			text.New(portalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de stock por material", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Corte: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del tablero.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Entradas", 1, align.Right),
		h("Salidas", 1, align.Right),
		h("Ajustes", 1, align.Right),
		h("Consumo", 1, align.Right),
		h("Actual", 2, align.Right),
		h("Mínimo", 1, align.Right),
	)
}

// detailRow: una fila por material; bajo mínimo se resalta en rojo.
func detailRow(r dto.SnapshotRow) core.Row {
	color := colorGray
	if r.BelowMin {
		color = colorAlert
	}
	cell := func(v string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
		}))
	}
	return row.New(6).Add(
		cell(r.Name, 4, align.Left, nil),
		cell(r.Unit, 1, align.Center, colorGray),
		cell(formatQty(r.Entries), 1, align.Right, colorGray),
		cell(formatQty(r.Exits), 1, align.Right, colorGray),
		cell(formatQty(r.Adjustments), 1, align.Right, colorGray),
		cell(formatQty(r.Consumption), 1, align.Right, colorGray),
		cell(formatQty(r.Current), 2, align.Right, color),
		cell(formatQty(r.MinStock), 1, align.Right, colorGray),
	)
}

// summaryRow: totales y conteo de materiales bajo mínimo.
func summaryRow(rows []dto.SnapshotRow) core.Row {
	below := 0
	for _, r := range rows {
		if r.BelowMin {
			below++
		}
	}
	resumen := fmt.Sprintf("%d materiales, %d bajo mínimo", len(rows), below)
	return row.New(8).Add(
		col.New(12).Add(text.New(resumen, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}

func formatQty(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Package pdf implementa la generación del estado de cuenta de un proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + localidad/provincia │ Fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Orden | Tipo | Comprobante | Total           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Deber / HABER ACUMULADO                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/tu-usuario/ordenes-pro/internal/application/reportes"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoEstadoCuentaGenerator implementa reportes.EstadoCuentaPDFGenerator usando Maroto v2.
type MarotoEstadoCuentaGenerator struct{}

var _ reportes.EstadoCuentaPDFGenerator = (*MarotoEstadoCuentaGenerator)(nil)

// NewMarotoEstadoCuentaGenerator construye el generador.
func NewMarotoEstadoCuentaGenerator() *MarotoEstadoCuentaGenerator {
	return &MarotoEstadoCuentaGenerator{}
}

// GenerateEstadoCuentaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoEstadoCuentaGenerator) GenerateEstadoCuentaPDF(
	_ context.Context,
	proveedor *entity.Proveedor,
	ordenes []*entity.Orden,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta — "+proveedor.Proveedor, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(proveedor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableOrdenRows(ordenes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(proveedor))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor + ubicación (izq) y fecha de emisión (der).
func headerRow(p *entity.Proveedor) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Proveedor, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(p.LocalidadProveedor+", "+p.ProvinciaProveedor, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de órdenes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Orden", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Comprobante", 3, align.Left),
		h("Total", 2, align.Right),
	)
}

// tableOrdenRows: una fila por orden vigente.
func tableOrdenRows(ordenes []*entity.Orden) []core.Row {
	result := make([]core.Row, 0, len(ordenes))
	for _, o := range ordenes {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				o.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				shortID(o.ID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				o.TipoOrden,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(o.Comprobante, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+o.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: deber y haber acumulado; el haber es la suma de la columna Total.
func totalsRow(p *entity.Proveedor) core.Row {
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Deber:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("HABER ACUMULADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+p.Deber.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+p.Haber.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

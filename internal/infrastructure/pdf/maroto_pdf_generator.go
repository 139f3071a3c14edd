// Package pdf genera el reporte de trazabilidad de una orden de manufactura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del LIMS      │  Orden + Lote + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: Producto / Cantidad / Operario                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR PROCESO: estado actual + tabla Fecha | Estado | Usuario │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con código y lote + fecha de emisión             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/urufarma/lims-web/internal/application/manufacturing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 90, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TraceReportGenerator arma el PDF de trazabilidad con Maroto v2.
type TraceReportGenerator struct {
	appName string
	now     func() time.Time
}

// NewTraceReportGenerator construye el generador. appName va en el encabezado.
func NewTraceReportGenerator(appName string) *TraceReportGenerator {
	return &TraceReportGenerator{appName: appName, now: time.Now}
}

// Generate devuelve los bytes del PDF de la orden expandida.
func (g *TraceReportGenerator) Generate(_ context.Context, trace *manufacturing.OrderTrace) ([]byte, error) {
	if trace == nil {
		return nil, fmt.Errorf("pdf: trazabilidad vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Trazabilidad de orden de manufactura", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, trace))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if trace.Order != nil {
		m.AddRows(orderRow(trace))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	if len(trace.Processes) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("La orden no tiene procesos registrados.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}
	for _, p := range trace.Processes {
		m.AddRows(processRows(p)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(trace, g.now()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del sistema (izq) y orden + lote (der).
func headerRow(appName string, trace *manufacturing.OrderTrace) core.Row {
	orderCode, batch, date := "#"+strconv.FormatInt(trace.OrderID, 10), "—", "—"
	if o := trace.Order; o != nil {
		orderCode = nonEmpty(o.Code, orderCode)
		batch = nonEmpty(o.BatchCode, batch)
		date = nonEmpty(o.Date, date)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de trazabilidad", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE MANUFACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(orderCode, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Lote: "+batch+"   |   Fecha: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func orderRow(trace *manufacturing.OrderTrace) core.Row {
	o := trace.Order
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Producto: #%d   |   Cantidad: %s %s   |   Operario: #%d   |   Procesos: %d",
				o.ProductID, o.Quantity.String(), o.Unit, o.OperatorID, len(trace.Processes),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// processRows: título del proceso y su historial, del más antiguo al más reciente.
func processRows(p manufacturing.ProcessTrace) []core.Row {
	title := fmt.Sprintf("Proceso #%d   Estado actual: %s", p.Process.ID, p.StateLabel)
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Color: colorPrimary}),
		)),
	}
	if !p.Consistent {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Atención: el historial no coincide con el estado actual del proceso.", props.Text{
				Size: 7.5, Top: 1, Color: colorWarn,
			}),
		)))
	}
	rows = append(rows, tableHeaderRow())
	for _, h := range p.History {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(h.Timestamp.Display(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(h.StateLabel, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New("#"+strconv.FormatInt(h.ChangedByID, 10), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	if len(p.History) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin historial registrado.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return append(rows, line.NewRow(2))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 4, align.Left),
		h("Estado", 5, align.Left),
		h("Usuario", 3, align.Right),
	)
}

// footerRow: QR con código/lote para identificar la orden en planta.
func footerRow(trace *manufacturing.OrderTrace, now time.Time) core.Row {
	payload := "orden:" + strconv.FormatInt(trace.OrderID, 10)
	if o := trace.Order; o != nil {
		payload += ";codigo:" + o.Code + ";lote:" + o.BatchCode
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(payload, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento informativo. El registro oficial es el del LIMS.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// Package pdf genera la hoja de trabajo imprimible de una orden de servicio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa            │  ORDEN DE SERVICIO + N° + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO + técnico asignado                                   │
//	│  CLIENTE: nombre / email    │  EQUIPO: modelo / serie        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FALLA REPORTADA                                              │
//	│  TRABAJO REALIZADO (líneas en blanco)                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR con el ID de la orden   │  Firmas técnico / cliente      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.WorkOrderRenderer = (*WorkOrderGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[entity.ServiceOrderStatus]string{
	entity.StatusPending:   "PENDIENTE",
	entity.StatusIssued:    "EMITIDA",
	entity.StatusCompleted: "COMPLETADA",
	entity.StatusCancelled: "CANCELADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// WorkOrderGenerator implementa ports.WorkOrderRenderer con Maroto v2.
type WorkOrderGenerator struct {
	company string
}

// NewWorkOrderGenerator construye el generador; company se imprime en la cabecera.
func NewWorkOrderGenerator(company string) *WorkOrderGenerator {
	return &WorkOrderGenerator{company: company}
}

// RenderWorkOrder genera el PDF y devuelve sus bytes.
func (g *WorkOrderGenerator) RenderWorkOrder(_ context.Context, order *dto.ServiceOrderDetailsView) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de servicio "+shortID(order.ID), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statusRow(order))
	m.AddRows(partiesRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(troubleRows(order)...)
	m.AddRows(workDoneRows()...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, o *dto.ServiceOrderDetailsView) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Servicio técnico"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Servicio técnico de fotocopiadoras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(o.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+o.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func statusRow(o *dto.ServiceOrderDetailsView) core.Row {
	status := statusLabels[o.Status]
	if o.CompletedAt != nil {
		status += "  (" + o.CompletedAt.Format("02/01/2006 15:04") + ")"
	}
	technician := "Sin asignar"
	if o.AssignedToID != nil {
		technician = nonEmpty(deref(o.AssignedToName), deref(o.AssignedToEmail))
	}
	return row.New(10).Add(
		col.New(6).Add(text.New("Estado: "+status, props.Text{Style: fontstyle.Bold, Size: 9, Top: 3})),
		col.New(6).Add(text.New("Técnico: "+technician, props.Text{Size: 9, Top: 3, Align: align.Right})),
	)
}

func partiesRow(o *dto.ServiceOrderDetailsView) core.Row {
	customer := "Equipo sin cliente asignado"
	if o.CustomerID != nil {
		customer = deref(o.CustomerName)
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Email: "+nonEmpty(deref(o.CustomerEmail), "-"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Modelo: "+string(o.DeviceModel), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("N° de serie: "+o.DeviceSerialNumber, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func troubleRows(o *dto.ServiceOrderDetailsView) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FALLA REPORTADA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(o.TroubleDescription, 110) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 9, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

func workDoneRows() []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(6).Add(col.New(12).Add(
			text.New("TRABAJO REALIZADO / REPUESTOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, line.NewRow(8, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	return rows
}

// footerRow: QR con el ID completo + espacios de firma.
func footerRow(o *dto.ServiceOrderDetailsView) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(o.ID, props.Rect{Percent: 90, Center: true})),
		col.New(1),
		col.New(4).Add(
			text.New("______________________________", props.Text{Size: 9, Top: 28, Align: align.Center}),
			text.New("Firma del técnico", props.Text{Size: 8, Top: 33, Align: align.Center, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("______________________________", props.Text{Size: 9, Top: 28, Align: align.Center}),
			text.New("Firma y aclaración del cliente", props.Text{Size: 8, Top: 33, Align: align.Center, Color: colorGray}),
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

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// shortID primeros 8 caracteres del ID, como número visible de la orden.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}

// Package pdf implementa la generación de la orden de fumigación imprimible
// que el aplicador lleva al campo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Folio  │  Fecha programada                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOTE: campo / cultivo / aplicador responsable               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Agroquímico | Dosis | Unidad                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES                                               │
//	│  FIRMAS: responsable / supervisor                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jcastillo/AgroStock-api/internal/application/fumigation"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ fumigation.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa fumigation.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(f *entity.Fumigation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Fumigación "+f.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(f))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(loteRow(f))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableProductRows(f.Products) {
		m.AddRows(r)
	}

	if f.Notes != "" {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(notesRow(f.Notes))
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(signaturesRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + folio (izq) y fecha programada (der).
func headerRow(f *entity.Fumigation) core.Row {
	fecha := f.ScheduledDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE FUMIGACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(f.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha programada", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(fecha, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+f.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// loteRow: lote, cultivo y aplicador responsable.
func loteRow(f *entity.Fumigation) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("LOTE A TRATAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(f.Field, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cultivo: %s   |   Aplicador responsable: %s",
				nonEmpty(f.CropName, "—"), f.Applicator,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de agroquímicos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Agroquímico", 7, align.Left),
		h("Dosis", 3, align.Right),
		h("Unidad", 2, align.Center),
	)
}

// tableProductRows: una fila por agroquímico con su dosis.
func tableProductRows(products []entity.FumigationProduct) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(7).Add(
			col.New(7).Add(text.New(
				p.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				p.Dose.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(p.DoseUnit, "lt/ha"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// notesRow: observaciones de la orden.
func notesRow(notes string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// signaturesRow: líneas de firma para aplicador y supervisor.
func signaturesRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(5).Add(
			text.New("_______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 8,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 14, Color: colorGray,
			}),
		)
	}
	return row.New(20).Add(
		col.New(1),
		sig("Firma del aplicador"),
		sig("Firma del supervisor"),
		col.New(1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

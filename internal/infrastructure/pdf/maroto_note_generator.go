// Package pdf implementa la generación del documento imprimible de un
// albarán de horas o materiales.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + NIF  │  ALBARÁN + Fecha de trabajo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: empresa / dirección                                │
//	│  CLIENTE: nombre + CIF + dirección                          │
//	│  PROYECTO: nombre + código + dirección                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Formato | Descripción | Medida                      │
//	│  OBSERVACIONES                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMA: imagen de la firma (si firmado) o línea + receptor  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoNoteGenerator implementa ports.DeliveryNotePDFGenerator usando
// Maroto v2. El cliente HTTP se usa para descargar la imagen de la firma
// cuando la nota está firmada.
type MarotoNoteGenerator struct {
	httpClient *http.Client
}

// NewMarotoNoteGenerator construye el generador.
func NewMarotoNoteGenerator() *MarotoNoteGenerator {
	return &MarotoNoteGenerator{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Generate genera el PDF del albarán y devuelve sus bytes.
func (g *MarotoNoteGenerator) Generate(
	ctx context.Context,
	note *entity.DeliveryNote,
	emitter *entity.User,
	client *entity.Client,
	project *entity.Project,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Albarán", true).
		WithAuthor(emitterName(emitter), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note, emitter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitterRow(emitter))
	m.AddRows(clientRow(client))
	m.AddRows(projectRow(project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(measureHeaderRow())
	m.AddRows(measureRow(note))

	if note.Observations != "" {
		m.AddRows(observationsRow(note))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.signatureRows(ctx, note) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor + NIF (izq) y ALBARÁN + fecha de trabajo (der).
func headerRow(note *entity.DeliveryNote, emitter *entity.User) core.Row {
	fecha := note.WorkDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(emitterName(emitter), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF: "+nonEmpty(emitter.NIF, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ALBARÁN", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+note.ID, props.Text{
				Size: 7, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// emitterRow: datos de la empresa emisora.
func emitterRow(emitter *entity.User) core.Row {
	companyLine := "—"
	if emitter.Company != nil {
		c := emitter.Company
		companyLine = fmt.Sprintf("%s   |   CIF: %s   |   %s",
			nonEmpty(c.Name, "—"), nonEmpty(c.CIF, "—"), companyAddress(c))
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(companyLine, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: datos del cliente destinatario.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CIF: %s   |   %s",
				nonEmpty(client.CIF, "—"), addressLine(client.Address),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// projectRow: proyecto al que se imputa el trabajo.
func projectRow(project *entity.Project) core.Row {
	codigo := nonEmpty(project.ProjectCode, nonEmpty(project.Code, "—"))
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROYECTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Código: %s   |   %s",
				project.Name, codigo, addressLine(project.Address),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// measureHeaderRow: cabecera de la tabla de medida.
func measureHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Formato", 2, align.Left),
		h("Descripción", 7, align.Left),
		h("Medida", 3, align.Right),
	)
}

// measureRow: la línea única de medida del albarán.
func measureRow(note *entity.DeliveryNote) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(
			formatLabel(note.Format),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(7).Add(text.New(
			note.Description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			measureValue(note),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// observationsRow: observaciones libres de la nota.
func observationsRow(note *entity.DeliveryNote) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(note.Observations, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// signatureRows: imagen de la firma descargada del pinning service cuando la
// nota está firmada; si no, línea de firma y datos del receptor. Si la
// descarga falla el documento se emite igualmente con el hueco de firma.
func (g *MarotoNoteGenerator) signatureRows(ctx context.Context, note *entity.DeliveryNote) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FIRMA DEL RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if note.IsSigned && note.SignURL != "" {
		if img, ext, err := g.fetchImage(ctx, note.SignURL); err == nil {
			rows = append(rows, row.New(40).Add(
				col.New(4).Add(image.NewFromBytes(img, ext, props.Rect{
					Percent: 90,
					Center:  true,
				})),
				col.New(8).Add(
					text.New("Firmado digitalmente", props.Text{
						Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
					}),
					observerText(note, 12),
				),
			))
			return rows
		}
	}

	rows = append(rows, row.New(30).Add(
		col.New(5).Add(
			text.New("Firma:", props.Text{Size: 8, Top: 2, Color: colorGray}),
			text.New("_________________________", props.Text{Size: 10, Top: 22}),
		),
		col.New(7).Add(observerText(note, 2)),
	))
	return rows
}

func observerText(note *entity.DeliveryNote, top float64) core.Component {
	receptor := "—"
	if note.ObserverName != "" {
		receptor = note.ObserverName
		if note.ObserverNIF != "" {
			receptor += "   |   NIF: " + note.ObserverNIF
		}
	}
	return text.New("Receptor: "+receptor, props.Text{
		Size: 8, Top: top, Left: 3, Color: colorGray,
	})
}

// fetchImage descarga la imagen de firma. La extensión se infiere del sufijo
// de la URL; por defecto PNG, que es lo que produce el canvas de firma.
func (g *MarotoNoteGenerator) fetchImage(ctx context.Context, url string) ([]byte, extension.Type, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, extension.Png, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, extension.Png, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, extension.Png, fmt.Errorf("descargar firma: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, extension.Png, err
	}

	ext := extension.Png
	lower := strings.ToLower(url)
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		ext = extension.Jpg
	}
	return data, ext, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func emitterName(u *entity.User) string {
	name := strings.TrimSpace(u.Name + " " + u.Surname)
	if u.Company != nil && u.Company.Name != "" {
		return u.Company.Name
	}
	return nonEmpty(name, u.Email)
}

func formatLabel(format string) string {
	switch format {
	case entity.FormatHours:
		return "Horas"
	case entity.FormatMaterial:
		return "Material"
	default:
		return format
	}
}

func measureValue(note *entity.DeliveryNote) string {
	switch {
	case note.Format == entity.FormatHours && note.Hours != nil:
		return note.Hours.String() + " h"
	case note.Format == entity.FormatMaterial && note.Quantity != nil:
		return note.Quantity.String() + " ud"
	default:
		return "—"
	}
}

func addressLine(a *entity.Address) string {
	if a == nil {
		return "—"
	}
	parts := make([]string, 0, 4)
	if a.Street != "" {
		s := a.Street
		if a.Number != "" {
			s += " " + a.Number
		}
		parts = append(parts, s)
	}
	if a.Postal != "" {
		parts = append(parts, a.Postal)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.Province != "" {
		parts = append(parts, a.Province)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

func companyAddress(c *entity.Company) string {
	return addressLine(&entity.Address{
		Street:   c.Street,
		Number:   c.Number,
		Postal:   c.Postal,
		City:     c.City,
		Province: c.Province,
	})
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

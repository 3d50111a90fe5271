package docpdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-docgen/docgen"
)

// coreFamilies maps template font families to the PDF core fonts. Arial is
// the conventional alias for Helvetica.
var coreFamilies = map[string]string{
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// Generator draws resolved templates into single-page PDF documents.
type Generator struct {
	Logger docgen.Logger
}

// NewGenerator creates a PDF page generator.
func NewGenerator() *Generator {
	return &Generator{}
}

var _ docgen.PageGenerator = (*Generator)(nil)

// Generate renders one page of the template's declared dimensions and
// draws each field at its geometry with its data value embedded. Missing
// data keys draw as empty values. It fails on invalid field geometry or
// an unsupported font family before emitting any output.
func (g *Generator) Generate(ctx context.Context, tmpl docgen.ResolvedTemplate, data docgen.DataMap) ([]byte, error) {
	_ = ctx

	for _, field := range tmpl.Fields {
		if err := validateGeometry(tmpl, field); err != nil {
			return nil, err
		}
		if _, err := resolveFamily(field.FontFamily); err != nil {
			return nil, err
		}
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: tmpl.PageWidth, Ht: tmpl.PageHeight})
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)

	for _, field := range tmpl.Fields {
		family, _ := resolveFamily(field.FontFamily)
		style := ""
		if field.Bold() {
			style = "B"
		}
		pdf.SetFont(family, style, float64(field.FontSize))

		switch field.Kind {
		case docgen.KindCheckbox:
			drawCheckbox(pdf, field, data)
		case docgen.KindTable:
			drawTable(pdf, field, data)
		default:
			// Text strategy, including the unknown-kind fallback.
			drawText(pdf, field, data[field.Name])
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, docgen.NewError(docgen.KindRender, "draw page", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, docgen.NewError(docgen.KindRender, "write pdf", err)
	}

	if g != nil && g.Logger != nil {
		g.Logger.Debugf("generated pdf for %q (%d bytes)", tmpl.Name, buf.Len())
	}
	return buf.Bytes(), nil
}

func drawText(pdf *fpdf.Fpdf, field docgen.ResolvedField, value string) {
	// Baseline sits one font size below the field's top edge.
	pdf.Text(field.X, field.Y+float64(field.FontSize), value)
}

func drawCheckbox(pdf *fpdf.Fpdf, field docgen.ResolvedField, data docgen.DataMap) {
	box := field.Height
	if field.Width < box {
		box = field.Width
	}

	pdf.Rect(field.X, field.Y, box, box, "D")
	if truthy(data[field.Name]) {
		pdf.Line(field.X, field.Y, field.X+box, field.Y+box)
		pdf.Line(field.X+box, field.Y, field.X, field.Y+box)
	}
	pdf.Text(field.X+box+5, field.Y+box-2, field.Label)
}

func drawTable(pdf *fpdf.Fpdf, field docgen.ResolvedField, data docgen.DataMap) {
	pdf.SetFillColor(245, 245, 245)

	y := field.Y
	for c := 0; c < field.TableColumns; c++ {
		pdf.SetXY(field.X+float64(c)*field.CellWidth, y)
		pdf.CellFormat(field.CellWidth, field.CellHeight, field.HeaderText(c), "1", 0, "L", true, 0, "")
	}

	for r := 1; r <= field.TableRows; r++ {
		y += field.CellHeight
		for c := 1; c <= field.TableColumns; c++ {
			pdf.SetXY(field.X+float64(c-1)*field.CellWidth, y)
			value := data[docgen.CellKey(field.Name, r, c)]
			pdf.CellFormat(field.CellWidth, field.CellHeight, value, "1", 0, "L", false, 0, "")
		}
	}
}

func validateGeometry(tmpl docgen.ResolvedTemplate, field docgen.ResolvedField) error {
	if field.Width <= 0 || field.Height <= 0 {
		return docgen.NewError(docgen.KindValidation,
			fmt.Sprintf("field %q has non-positive geometry %gx%g", field.Name, field.Width, field.Height), nil)
	}
	if field.X < 0 || field.Y < 0 {
		return docgen.NewError(docgen.KindValidation,
			fmt.Sprintf("field %q has negative origin (%g,%g)", field.Name, field.X, field.Y), nil)
	}
	if field.X+field.Width > tmpl.PageWidth || field.Y+field.Height > tmpl.PageHeight {
		return docgen.NewError(docgen.KindValidation,
			fmt.Sprintf("field %q extends beyond the %gx%g page", field.Name, tmpl.PageWidth, tmpl.PageHeight), nil)
	}
	return nil
}

func resolveFamily(family string) (string, error) {
	core, ok := coreFamilies[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		return "", docgen.NewError(docgen.KindValidation,
			fmt.Sprintf("unsupported font family %q", family), nil)
	}
	return core, nil
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "checked":
		return true
	default:
		return false
	}
}

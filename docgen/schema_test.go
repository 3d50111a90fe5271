package docgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveTemplate_AppliesDefaults(t *testing.T) {
	resolved, err := ResolveTemplate(Template{
		Name:   "Invoice",
		Fields: []Field{{Name: "total", Type: FieldText, X: 100, Y: 200, Width: 80, Height: 20}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if resolved.PageWidth != DefaultPageWidth || resolved.PageHeight != DefaultPageHeight {
		t.Fatalf("page defaults not applied: %gx%g", resolved.PageWidth, resolved.PageHeight)
	}

	want := ResolvedField{
		Name:       "total",
		Kind:       KindText,
		Label:      "total",
		X:          100,
		Y:          200,
		Width:      80,
		Height:     20,
		FontSize:   12,
		FontWeight: "normal",
		FontFamily: "Helvetica",
	}
	if diff := cmp.Diff(want, resolved.Fields[0]); diff != "" {
		t.Fatalf("resolved field mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTemplate_TableDefaults(t *testing.T) {
	resolved, err := ResolveTemplate(Template{
		Name: "Report",
		Fields: []Field{{
			Name: "lines", Type: FieldTable,
			X: 10, Y: 10, Width: 300, Height: 100,
		}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	field := resolved.Fields[0]
	if field.TableRows != 1 || field.TableColumns != 1 {
		t.Fatalf("table grid defaults = %dx%d, want 1x1", field.TableRows, field.TableColumns)
	}
	if field.CellWidth != 300 {
		t.Fatalf("cell width = %g, want field width", field.CellWidth)
	}
	if field.CellHeight != 50 {
		t.Fatalf("cell height = %g, want height/(rows+1)", field.CellHeight)
	}
	if got := field.HeaderText(0); got != "Header" {
		t.Fatalf("header fallback = %q, want %q", got, "Header")
	}
}

func TestResolveTemplate_TableAttributesIgnoredForText(t *testing.T) {
	resolved, err := ResolveTemplate(Template{
		Name: "T",
		Fields: []Field{{
			Name: "note", Type: FieldText,
			X: 0, Y: 0, Width: 10, Height: 10,
			TableRows: 5, TableColumns: 4, TableHeaders: []string{"a"},
		}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	field := resolved.Fields[0]
	if field.TableRows != 0 || field.TableColumns != 0 || field.TableHeaders != nil {
		t.Fatalf("table attributes carried onto text field: %+v", field)
	}
}

func TestResolveTemplate_DuplicateFieldName(t *testing.T) {
	_, err := ResolveTemplate(Template{
		Name: "T",
		Fields: []Field{
			{Name: "dup", Type: FieldText, X: 0, Y: 0, Width: 10, Height: 10},
			{Name: "dup", Type: FieldCheckbox, X: 20, Y: 20, Width: 10, Height: 10},
		},
	})
	if err == nil {
		t.Fatal("expected duplicate field name error")
	}
	if kind := KindFromError(err); kind != KindValidation {
		t.Fatalf("error kind = %q, want validation", kind)
	}
}

func TestResolveTemplate_ReservedCharacters(t *testing.T) {
	_, err := ResolveTemplate(Template{
		Name:   "T",
		Fields: []Field{{Name: "bad{name}", Type: FieldText, X: 0, Y: 0, Width: 10, Height: 10}},
	})
	if err == nil {
		t.Fatal("expected reserved character error")
	}
}

func TestResolveTemplate_NegativePageDimensions(t *testing.T) {
	_, err := ResolveTemplate(Template{Name: "T", PageWidth: -612})
	if err == nil {
		t.Fatal("expected page dimension error")
	}
	if kind := KindFromError(err); kind != KindValidation {
		t.Fatalf("error kind = %q, want validation", kind)
	}
}

func TestResolveTemplate_MissingName(t *testing.T) {
	if _, err := ResolveTemplate(Template{}); err == nil {
		t.Fatal("expected template name error")
	}
}

func TestKindOf_UnknownFallsBack(t *testing.T) {
	if got := KindOf("signature"); got != KindUnknown {
		t.Fatalf("KindOf(signature) = %v, want KindUnknown", got)
	}
	if got := KindOf(FieldCheckbox); got != KindCheckbox {
		t.Fatalf("KindOf(checkbox) = %v", got)
	}
}

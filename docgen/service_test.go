package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	errorslib "github.com/goliatone/go-errors"
)

type stubGenerator struct {
	content []byte
	err     error
	last    ResolvedTemplate
}

func (g *stubGenerator) Generate(ctx context.Context, tmpl ResolvedTemplate, data DataMap) ([]byte, error) {
	g.last = tmpl
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

func goCategory(t *testing.T, err error) errorslib.Category {
	t.Helper()
	var ge *errorslib.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error is not a go-errors error: %v", err)
	}
	return ge.Category
}

func TestService_ConvertThenFill(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(ServiceConfig{Store: store})

	tmpl := Template{
		Name: "Invoice",
		Fields: []Field{
			{Name: "total", Type: FieldText, X: 100, Y: 200, Width: 80, Height: 20},
		},
	}

	ref, err := svc.Convert(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if ref.Key != "Invoice.html" {
		t.Fatalf("key = %q", ref.Key)
	}

	filled, err := svc.Fill(context.Background(), "Invoice", DataMap{"total": "42.00"})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !strings.Contains(filled, ">42.00<") {
		t.Fatalf("filled value missing:\n%s", filled)
	}
	if strings.Contains(filled, "{{{total}}}") {
		t.Fatal("token survived fill")
	}

	// The stored artifact stays intact for the next fill.
	again, err := svc.Fill(context.Background(), "Invoice", DataMap{})
	if err != nil {
		t.Fatalf("second fill: %v", err)
	}
	if !strings.Contains(again, "{{{total}}}") {
		t.Fatal("stored artifact was mutated by a previous fill")
	}
}

func TestService_FillEscapesByDefault(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(ServiceConfig{Store: store})
	raw := NewService(ServiceConfig{Store: store, FillRaw: true})

	tmpl := Template{
		Name:   "Card",
		Fields: []Field{{Name: "note", Type: FieldText, X: 0, Y: 0, Width: 10, Height: 10}},
	}
	if _, err := svc.Convert(context.Background(), tmpl); err != nil {
		t.Fatalf("convert: %v", err)
	}

	data := DataMap{"note": "<b>hi</b>"}

	escaped, err := svc.Fill(context.Background(), "Card", data)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !strings.Contains(escaped, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Fatalf("value not escaped:\n%s", escaped)
	}

	verbatim, err := raw.Fill(context.Background(), "Card", data)
	if err != nil {
		t.Fatalf("raw fill: %v", err)
	}
	if !strings.Contains(verbatim, "<b>hi</b>") {
		t.Fatalf("raw fill escaped the value:\n%s", verbatim)
	}
}

func TestService_FillUnknownTemplate(t *testing.T) {
	svc := NewService(ServiceConfig{Store: NewMemoryStore()})

	_, err := svc.Fill(context.Background(), "nope", DataMap{})
	if err == nil {
		t.Fatal("expected error")
	}
	if cat := goCategory(t, err); cat != errorslib.CategoryNotFound {
		t.Fatalf("category = %v, want not found", cat)
	}
}

func TestService_ConvertInvalidTemplate(t *testing.T) {
	svc := NewService(ServiceConfig{Store: NewMemoryStore()})

	_, err := svc.Convert(context.Background(), Template{})
	if err == nil {
		t.Fatal("expected error")
	}
	if cat := goCategory(t, err); cat != errorslib.CategoryValidation {
		t.Fatalf("category = %v, want validation", cat)
	}
}

func TestService_Generate(t *testing.T) {
	gen := &stubGenerator{content: []byte("%PDF-1.4 stub")}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewService(ServiceConfig{
		Store:     NewMemoryStore(),
		Generator: gen,
		Now:       func() time.Time { return now },
	})

	tmpl := Template{
		Name:   "Invoice",
		Fields: []Field{{Name: "total", Type: FieldText, X: 100, Y: 200, Width: 80, Height: 20}},
	}

	result, err := svc.Generate(context.Background(), tmpl, DataMap{"total": "42.00"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Filename != "Invoice_20240102_030405.pdf" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if result.ContentType != ContentTypePDF {
		t.Fatalf("content type = %q", result.ContentType)
	}
	if string(result.Content) != "%PDF-1.4 stub" {
		t.Fatalf("content = %q", result.Content)
	}
	if gen.last.Name != "Invoice" {
		t.Fatalf("generator saw template %q", gen.last.Name)
	}
}

func TestService_GenerateWithoutGenerator(t *testing.T) {
	svc := NewService(ServiceConfig{Store: NewMemoryStore()})

	_, err := svc.Generate(context.Background(), Template{Name: "Invoice"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if cat := goCategory(t, err); cat != errorslib.CategoryOperation {
		t.Fatalf("category = %v, want operation", cat)
	}
}

func TestService_GenerateWrapsRenderFailure(t *testing.T) {
	gen := &stubGenerator{err: NewError(KindRender, "unsupported font", nil)}
	svc := NewService(ServiceConfig{Store: NewMemoryStore(), Generator: gen})

	_, err := svc.Generate(context.Background(), Template{Name: "Invoice"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unsupported font") {
		t.Fatalf("cause lost: %v", err)
	}
}

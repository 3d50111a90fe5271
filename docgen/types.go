package docgen

import (
	"context"
	"io"
	"time"
)

// Backend identifies a rendering target.
type Backend string

const (
	BackendPDF    Backend = "pdf"
	BackendMarkup Backend = "markup"
)

// FieldType is the wire-level field type string.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldCheckbox FieldType = "checkbox"
	FieldTable    FieldType = "table"
)

// FieldKind is the closed set of rendering strategies. Unrecognized wire
// types map to KindUnknown, which renders with the text strategy.
type FieldKind int

const (
	KindText FieldKind = iota
	KindCheckbox
	KindTable
	KindUnknown
)

// Field describes one positioned element within a template. JSON tags match
// the designer's wire schema.
type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Label      string    `json:"label,omitempty"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	FontSize   int       `json:"fontSize,omitempty"`
	FontWeight string    `json:"fontWeight,omitempty"`
	FontFamily string    `json:"fontFamily,omitempty"`

	// Table-only attributes, ignored for other types.
	TableRows    int      `json:"tableRows,omitempty"`
	TableColumns int      `json:"tableColumns,omitempty"`
	TableHeaders []string `json:"tableHeaders,omitempty"`
	CellWidth    float64  `json:"cellWidth,omitempty"`
	CellHeight   float64  `json:"cellHeight,omitempty"`
}

// Template is a named page with an ordered sequence of fields. Field order
// determines fragment concatenation order in assembled output.
type Template struct {
	Name       string  `json:"name"`
	PageWidth  float64 `json:"pageWidth,omitempty"`
	PageHeight float64 `json:"pageHeight,omitempty"`
	Fields     []Field `json:"fields"`
}

// DataMap carries fill values keyed by field name. Unknown keys are ignored.
type DataMap map[string]string

// ArtifactMeta captures stored artifact metadata.
type ArtifactMeta struct {
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Filename    string    `json:"filename,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ArtifactRef references a stored artifact.
type ArtifactRef struct {
	Key  string
	Meta ArtifactMeta
}

// TemplateStore persists assembled markup artifacts keyed by template name.
// Re-converting a template overwrites its entry; there is no versioning.
type TemplateStore interface {
	Put(ctx context.Context, key string, r io.Reader, meta ArtifactMeta) (ArtifactRef, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ArtifactMeta, error)
	Delete(ctx context.Context, key string) error
}

// PageGenerator produces the binary page document for a resolved template.
// Data values are baked in at draw time; there is no placeholder stage on
// this path.
type PageGenerator interface {
	Generate(ctx context.Context, tmpl ResolvedTemplate, data DataMap) ([]byte, error)
}

// GenerateResult is a completed binary page document.
type GenerateResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Content types for produced artifacts.
const (
	ContentTypePDF    = "application/pdf"
	ContentTypeMarkup = "text/html; charset=utf-8"
)

package docgen

import (
	"fmt"
	"strings"
)

// Default page geometry and text attributes, matching the designer schema
// (US Letter in points).
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
	DefaultFontSize   = 12
	DefaultFontWeight = "normal"
	DefaultFontFamily = "Helvetica"
)

// ResolvedField is a field with every default applied. Renderers consume
// resolved fields only and never guess at missing attributes.
type ResolvedField struct {
	Name       string
	Kind       FieldKind
	Label      string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	FontSize   int
	FontWeight string
	FontFamily string

	TableRows    int
	TableColumns int
	TableHeaders []string
	CellWidth    float64
	CellHeight   float64
}

// ResolvedTemplate is an immutable, fully-defaulted template ready for
// rendering on either backend. Page geometry is authored in points with a
// top-left origin and y increasing downward; both backends honor that
// convention.
type ResolvedTemplate struct {
	Name       string
	PageWidth  float64
	PageHeight float64
	Fields     []ResolvedField
}

// Bold reports whether the field renders with a bold face.
func (f ResolvedField) Bold() bool {
	return strings.EqualFold(f.FontWeight, "bold")
}

// HeaderText returns the header label for table column col (0-based),
// falling back to the literal "Header" when none was declared.
func (f ResolvedField) HeaderText(col int) string {
	if col >= 0 && col < len(f.TableHeaders) && f.TableHeaders[col] != "" {
		return f.TableHeaders[col]
	}
	return "Header"
}

// KindOf maps a wire type string to its rendering strategy. Unrecognized
// values map to KindUnknown; the fragment registry resolves that to the
// text strategy.
func KindOf(t FieldType) FieldKind {
	switch t {
	case FieldText:
		return KindText
	case FieldCheckbox:
		return KindCheckbox
	case FieldTable:
		return KindTable
	default:
		return KindUnknown
	}
}

// ResolveTemplate validates a template and resolves every default once.
// Schema errors abort before any rendering begins; no partial artifact is
// ever produced from an invalid template.
func ResolveTemplate(tmpl Template) (ResolvedTemplate, error) {
	name := strings.TrimSpace(tmpl.Name)
	if name == "" {
		return ResolvedTemplate{}, NewError(KindValidation, "template name is required", nil)
	}

	width := tmpl.PageWidth
	if width == 0 {
		width = DefaultPageWidth
	}
	height := tmpl.PageHeight
	if height == 0 {
		height = DefaultPageHeight
	}
	if width <= 0 || height <= 0 {
		return ResolvedTemplate{}, NewError(KindValidation,
			fmt.Sprintf("page dimensions must be positive, got %gx%g", width, height), nil)
	}

	resolved := ResolvedTemplate{
		Name:       name,
		PageWidth:  width,
		PageHeight: height,
		Fields:     make([]ResolvedField, 0, len(tmpl.Fields)),
	}

	seen := make(map[string]struct{}, len(tmpl.Fields))
	for i, field := range tmpl.Fields {
		rf, err := resolveField(field)
		if err != nil {
			return ResolvedTemplate{}, NewError(KindValidation, fmt.Sprintf("field %d: %v", i, err), nil)
		}
		if _, dup := seen[rf.Name]; dup {
			return ResolvedTemplate{}, NewError(KindValidation,
				fmt.Sprintf("duplicate field name %q", rf.Name), nil)
		}
		seen[rf.Name] = struct{}{}
		resolved.Fields = append(resolved.Fields, rf)
	}

	return resolved, nil
}

func resolveField(field Field) (ResolvedField, error) {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return ResolvedField{}, fmt.Errorf("field name is required")
	}
	// Field names double as placeholder token bodies; the delimiter
	// characters are reserved.
	if strings.ContainsAny(name, "{}") {
		return ResolvedField{}, fmt.Errorf("field name %q contains reserved placeholder characters", name)
	}

	rf := ResolvedField{
		Name:       name,
		Kind:       KindOf(field.Type),
		Label:      field.Label,
		X:          field.X,
		Y:          field.Y,
		Width:      field.Width,
		Height:     field.Height,
		FontSize:   field.FontSize,
		FontWeight: field.FontWeight,
		FontFamily: field.FontFamily,
	}
	if rf.Label == "" {
		rf.Label = name
	}
	if rf.FontSize <= 0 {
		rf.FontSize = DefaultFontSize
	}
	if rf.FontWeight == "" {
		rf.FontWeight = DefaultFontWeight
	}
	if rf.FontFamily == "" {
		rf.FontFamily = DefaultFontFamily
	}

	if rf.Kind == KindTable {
		rf.TableRows = field.TableRows
		rf.TableColumns = field.TableColumns
		if rf.TableRows < 1 {
			rf.TableRows = 1
		}
		if rf.TableColumns < 1 {
			rf.TableColumns = 1
		}
		rf.TableHeaders = append([]string(nil), field.TableHeaders...)
		rf.CellWidth = field.CellWidth
		rf.CellHeight = field.CellHeight
		if rf.CellWidth <= 0 {
			rf.CellWidth = rf.Width / float64(rf.TableColumns)
		}
		if rf.CellHeight <= 0 {
			rf.CellHeight = rf.Height / float64(rf.TableRows+1)
		}
	}

	return rf, nil
}

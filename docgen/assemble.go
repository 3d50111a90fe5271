package docgen

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// pageStylesheet is the fixed, template-independent stylesheet of every
// assembled markup artifact. Page geometry is inlined on the page
// container, not here, so the stylesheet text never varies per template.
const pageStylesheet = `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: Arial, Helvetica, sans-serif;
    background: #f0f0f0;
    padding: 20px;
}

.page {
    position: relative;
    background: white;
    margin: 0 auto;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    overflow: hidden;
}

.field {
    position: absolute;
    font-family: Arial, Helvetica, sans-serif;
}

.text-field span {
    display: block;
    width: 100%;
    height: 100%;
    color: #000;
    white-space: nowrap;
    overflow: hidden;
}

.checkbox-field {
    display: flex;
    align-items: center;
    gap: 5px;
}

.checkbox-field[data-checked="true"] input,
.checkbox-field[data-checked="1"] input {
    box-shadow: inset 0 0 0 8px #000;
}

.table-field table {
    width: 100%;
    border-collapse: collapse;
    font-size: 10px;
}

.table-field th,
.table-field td {
    border: 1px solid #000;
    padding: 4px;
    text-align: left;
}

.table-field th {
    background: #f5f5f5;
    font-weight: bold;
}

@media print {
    body {
        background: white;
        padding: 0;
    }

    .page {
        box-shadow: none;
        margin: 0;
    }
}`

// Assembler composes markup artifacts and persists them to the template
// store. Assembly itself is a pure transformation; the store write is the
// only side effect.
type Assembler struct {
	Store     TemplateStore
	Transform Transform
	Fragments *FragmentRegistry
	Logger    Logger
}

// NewAssembler creates an assembler with the default fragment registry.
func NewAssembler(store TemplateStore) *Assembler {
	return &Assembler{Store: store, Fragments: NewFragmentRegistry()}
}

// Assemble builds the complete markup document for a resolved template:
// fixed stylesheet, one page container sized by the markup transform, and
// per-field fragments concatenated in field order. Field order is the only
// stacking control; there is no z-index model.
func (a *Assembler) Assemble(tmpl ResolvedTemplate) string {
	registry := a.Fragments
	if registry == nil {
		registry = NewFragmentRegistry()
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="en">` + "\n<head>\n")
	b.WriteString(`    <meta charset="UTF-8">` + "\n")
	b.WriteString(`    <meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	b.WriteString("    <title>" + html.EscapeString(tmpl.Name) + "</title>\n")
	b.WriteString("    <style>\n" + pageStylesheet + "\n    </style>\n")
	b.WriteString("</head>\n<body>\n")

	b.WriteString(fmt.Sprintf(`    <div class="page" style="width: %dpx; height: %dpx;">`,
		a.Transform.Pixels(tmpl.PageWidth), a.Transform.Pixels(tmpl.PageHeight)))
	b.WriteByte('\n')

	for _, field := range tmpl.Fields {
		renderer := registry.Resolve(field.Kind)
		b.WriteString("        ")
		b.WriteString(RenderNode(renderer(a.Transform, field)))
		b.WriteByte('\n')
	}

	b.WriteString("    </div>\n</body>\n</html>\n")
	return b.String()
}

// Persist assembles the template and writes the artifact to the store
// under its template key, overwriting any previous entry.
func (a *Assembler) Persist(ctx context.Context, tmpl ResolvedTemplate) (ArtifactRef, error) {
	if a.Store == nil {
		return ArtifactRef{}, NewError(KindNotImpl, "template store not configured", nil)
	}

	content := a.Assemble(tmpl)
	key := TemplateKey(tmpl.Name)

	ref, err := a.Store.Put(ctx, key, strings.NewReader(content), ArtifactMeta{
		ContentType: ContentTypeMarkup,
		Filename:    key,
	})
	if err != nil {
		return ArtifactRef{}, NewError(KindStore, fmt.Sprintf("persist template %q", tmpl.Name), err)
	}

	if a.Logger != nil {
		a.Logger.Debugf("assembled template %q (%d bytes)", tmpl.Name, len(content))
	}
	return ref, nil
}

// TemplateKey is the store key for a template's markup artifact.
func TemplateKey(name string) string {
	return name + ".html"
}

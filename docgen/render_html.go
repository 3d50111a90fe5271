package docgen

import (
	"fmt"
	"strconv"
)

// fieldContainer builds the positioned wrapper shared by every fragment
// kind. Geometry goes through the markup transform exactly once, here.
func fieldContainer(t Transform, field ResolvedField, class string, extra ...Attr) *Element {
	attrs := []Attr{{Name: "class", Value: "field " + class}}
	attrs = append(attrs, extra...)
	attrs = append(attrs, Attr{Name: "style", Value: styleOf(
		fmt.Sprintf("left: %dpx;", t.Pixels(field.X)),
		fmt.Sprintf("top: %dpx;", t.Pixels(field.Y)),
		fmt.Sprintf("width: %dpx;", t.Pixels(field.Width)),
		fmt.Sprintf("height: %dpx;", t.Pixels(field.Height)),
	)})
	return El("div", attrs...)
}

// renderTextFragment emits a positioned span bound to the field, holding
// the field's placeholder token until fill time. It is also the registered
// fallback for unrecognized field types.
func renderTextFragment(t Transform, field ResolvedField) Node {
	span := El("span",
		Attr{Name: "data-field", Value: field.Name},
		Attr{Name: "style", Value: "font-size: " + strconv.Itoa(field.FontSize) + "px;"},
	).Child(Raw(Token(field.Name)))

	return fieldContainer(t, field, "text-field").Child(span)
}

// renderCheckboxFragment emits a checkbox input with its label. The
// container carries a data-checked slot holding the field token; filling
// it with "true" or "1" selects the checked presentation through the
// stylesheet's attribute rules.
func renderCheckboxFragment(t Transform, field ResolvedField) Node {
	input := El("input",
		Attr{Name: "type", Value: "checkbox"},
		Attr{Name: "id", Value: field.Name},
		Attr{Name: "data-field", Value: field.Name},
	)
	label := El("label", Attr{Name: "for", Value: field.Name}).Child(Text(field.Label))

	return fieldContainer(t, field, "checkbox-field",
		Attr{Name: "data-checked", Value: Token(field.Name)},
	).Child(input, label)
}

// renderTableFragment expands the declared grid: one header row built from
// TableHeaders (missing entries fall back to the literal "Header") and
// TableRows x TableColumns body cells, each bound to its own per-cell
// token `name.row.col`.
func renderTableFragment(t Transform, field ResolvedField) Node {
	headRow := El("tr")
	for c := 0; c < field.TableColumns; c++ {
		headRow.Child(El("th").Child(Text(field.HeaderText(c))))
	}

	body := El("tbody")
	for r := 1; r <= field.TableRows; r++ {
		row := El("tr")
		for c := 1; c <= field.TableColumns; c++ {
			row.Child(El("td").Child(Raw(CellToken(field.Name, r, c))))
		}
		body.Child(row)
	}

	table := El("table",
		Attr{Name: "id", Value: field.Name},
		Attr{Name: "data-field", Value: field.Name},
		Attr{Name: "class", Value: "data-table"},
	).Child(El("thead").Child(headRow), body)

	return fieldContainer(t, field, "table-field").Child(table)
}

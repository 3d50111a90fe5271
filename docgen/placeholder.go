package docgen

import (
	"html"
	"strconv"
	"strings"
)

// Placeholder delimiters. Triple braces keep tokens distinct from the
// single braces of stylesheet blocks and from any double-brace literal a
// data value might carry, so substitution cannot collide with style text.
const (
	tokenOpen  = "{{{"
	tokenClose = "}}}"
)

// Token builds the placeholder token for a field name. The name must have
// passed schema validation (no brace characters).
func Token(name string) string {
	return tokenOpen + name + tokenClose
}

// CellToken builds the placeholder token for one table body cell, keyed
// `name.row.col` with 1-based indices.
func CellToken(name string, row, col int) string {
	return tokenOpen + CellKey(name, row, col) + tokenClose
}

// CellKey is the data-map key matching CellToken.
func CellKey(name string, row, col int) string {
	return name + "." + strconv.Itoa(row) + "." + strconv.Itoa(col)
}

// Fill substitutes data values for placeholder tokens in one pass over the
// content. Values are HTML-escaped before insertion. Each token is resolved
// at most once and substituted output is never rescanned, so a value that
// itself looks like a token stays literal. Tokens without a data entry pass
// through byte-for-byte; data keys without a token are ignored. The input
// is never mutated.
func Fill(content string, data DataMap) string {
	return fill(content, data, true)
}

// FillRaw is Fill without HTML escaping. Raw mode is an explicit opt-in
// for callers that already sanitize their data.
func FillRaw(content string, data DataMap) string {
	return fill(content, data, false)
}

func fill(content string, data DataMap, escape bool) string {
	if len(data) == 0 || !strings.Contains(content, tokenOpen) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))

	rest := content
	for {
		start := strings.Index(rest, tokenOpen)
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[start+len(tokenOpen):], tokenClose)
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}

		name := rest[start+len(tokenOpen) : start+len(tokenOpen)+end]
		after := start + len(tokenOpen) + end + len(tokenClose)

		value, ok := data[name]
		if !ok {
			// Unresolved tokens are a contractual pass-through, not an error.
			b.WriteString(rest[:after])
			rest = rest[after:]
			continue
		}

		b.WriteString(rest[:start])
		if escape {
			b.WriteString(html.EscapeString(value))
		} else {
			b.WriteString(value)
		}
		rest = rest[after:]
	}
}

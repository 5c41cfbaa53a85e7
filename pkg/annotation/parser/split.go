package parser

import "strings"

// smartSplit splits tokens on commas at bracket depth 0. Comment spans are
// dropped, items are trimmed and empty items are discarded. Commas inside
// nested bracket groups stay part of their item.
func smartSplit(tokens []token) []string {
	var (
		parts []string
		buf   strings.Builder
		depth int
	)

	emit := func() {
		if part := strings.TrimSpace(buf.String()); part != "" {
			parts = append(parts, part)
		}
		buf.Reset()
	}

	for _, t := range tokens {
		switch t.typ {
		case tokEscape:
			continue
		case tokOpen:
			depth++
		case tokClose:
			if depth > 0 {
				depth--
			}
		case tokComma:
			if depth == 0 {
				emit()
				continue
			}
		}
		buf.WriteString(t.text)
	}
	emit()

	return parts
}

// SplitValues splits a raw value string the way block values are split:
// "<...>" spans are removed and commas inside nested brackets are kept.
func SplitValues(raw string) []string {
	tokens, _ := lexContent(raw, 0)
	return smartSplit(tokens)
}

package parser

import "strings"

// tokenType identifies a lexical element of block content.
type tokenType int

const (
	tokText   tokenType = iota // run of ordinary characters
	tokOpen                    // [
	tokClose                   // ]
	tokColon                   // :
	tokComma                   // ,
	tokEscape                  // <...> comment span
)

// token is a lexical element with its byte offset inside the cell.
type token struct {
	typ    tokenType
	text   string
	offset int
}

// lexContent tokenizes the content of one block. base is the byte offset of
// content within the cell. A "<" only opens a comment if a ">" follows
// before the end of the line; otherwise it is ordinary text and its offset
// is reported in unterminated.
func lexContent(content string, base int) (tokens []token, unterminated []int) {
	textStart := -1
	flush := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, token{typ: tokText, text: content[textStart:end], offset: base + textStart})
			textStart = -1
		}
	}
	single := func(typ tokenType, i int) {
		flush(i)
		tokens = append(tokens, token{typ: typ, text: content[i : i+1], offset: base + i})
	}

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '[':
			single(tokOpen, i)
		case ']':
			single(tokClose, i)
		case ':':
			single(tokColon, i)
		case ',':
			single(tokComma, i)
		case '<':
			end := closingAngle(content[i+1:])
			if end < 0 {
				unterminated = append(unterminated, base+i)
				if textStart < 0 {
					textStart = i
				}
				continue
			}
			flush(i)
			stop := i + 1 + end + 1
			tokens = append(tokens, token{typ: tokEscape, text: content[i:stop], offset: base + i})
			i = stop - 1
		default:
			if textStart < 0 {
				textStart = i
			}
		}
	}
	flush(len(content))

	return tokens, unterminated
}

// closingAngle returns the index of the first '>' in s, or -1 when a newline
// or the end of s comes first.
func closingAngle(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '>':
			return i
		case '\n':
			return -1
		}
	}
	return -1
}

// keySeparator returns the index of the first colon token at bracket depth 0,
// or -1 when the block is bare.
func keySeparator(tokens []token) int {
	depth := 0
	for i, t := range tokens {
		switch t.typ {
		case tokOpen:
			depth++
		case tokClose:
			if depth > 0 {
				depth--
			}
		case tokColon:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// joinText concatenates tokens, leaving out comment spans.
func joinText(tokens []token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.typ != tokEscape {
			sb.WriteString(t.text)
		}
	}
	return sb.String()
}

package fieldparse

import "strings"

// Normalize applies the fixed rewrite set that repairs the malformations
// this dataset family is known to produce, so that a strict JSON decode
// can be retried:
//
//   - single-quoted string delimiters become double quotes, without
//     breaking apostrophes inside values ("Ocean's Eleven")
//   - trailing commas before a closing bracket or brace are removed
//   - whitespace runs outside strings collapse to a single space
//
// The rewrite is purely lexical and deterministic; it never inspects the
// structure it is repairing.
func Normalize(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	const (
		outside = iota
		inSingle
		inDouble
	)
	state := outside

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch state {
		case outside:
			switch {
			case ch == '\'':
				state = inSingle
				out.WriteByte('"')
			case ch == '"':
				state = inDouble
				out.WriteByte('"')
			case ch == ',':
				// A comma is trailing when only whitespace and further
				// commas separate it from the closing bracket or brace.
				j := i + 1
				for j < len(runes) {
					if runes[j] == ',' || runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' || runes[j] == '\r' {
						j++
						continue
					}
					break
				}
				if j < len(runes) && (runes[j] == ']' || runes[j] == '}') {
					continue
				}
				out.WriteByte(',')
			case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
				if j := nextNonSpace(runes, i); j > i {
					i = j - 1
				}
				out.WriteByte(' ')
			default:
				out.WriteRune(ch)
			}

		case inSingle:
			switch ch {
			case '\\':
				if i+1 < len(runes) {
					i++
					esc := runes[i]
					switch esc {
					case '\'':
						// \' is legal in the source dialect but not in
						// JSON; the apostrophe needs no escape there.
						out.WriteByte('\'')
					case '"':
						out.WriteString(`\"`)
					default:
						out.WriteByte('\\')
						out.WriteRune(esc)
					}
				} else {
					out.WriteByte('\\')
				}
			case '\'':
				if closesSingleQuote(runes, i+1) {
					state = outside
					out.WriteByte('"')
				} else {
					out.WriteByte('\'')
				}
			case '"':
				out.WriteString(`\"`)
			default:
				out.WriteRune(ch)
			}

		case inDouble:
			switch ch {
			case '\\':
				out.WriteByte('\\')
				if i+1 < len(runes) {
					i++
					out.WriteRune(runes[i])
				}
			case '"':
				state = outside
				out.WriteByte('"')
			default:
				out.WriteRune(ch)
			}
		}
	}

	return out.String()
}

// nextNonSpace returns the index of the first non-whitespace rune at or
// after pos, or len(runes) if there is none.
func nextNonSpace(runes []rune, pos int) int {
	for pos < len(runes) {
		switch runes[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// closesSingleQuote reports whether a single quote at this position ends
// the string, as opposed to being an apostrophe inside the value. A
// closing quote is followed by structure (comma, colon, closing bracket
// or brace) or the end of input.
func closesSingleQuote(runes []rune, after int) bool {
	j := nextNonSpace(runes, after)
	if j >= len(runes) {
		return true
	}
	switch runes[j] {
	case ',', ':', ']', '}':
		return true
	default:
		return false
	}
}

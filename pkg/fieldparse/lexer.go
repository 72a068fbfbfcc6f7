package fieldparse

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes a permissive literal string
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize converts the input string into tokens
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)
	for l.pos < len(l.input) {
		if unicode.IsSpace(rune(l.input[l.pos])) {
			l.pos++
			continue
		}

		token, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: l.pos})
	return tokens, nil
}

// nextToken reads the next token from the input
func (l *Lexer) nextToken() (Token, error) {
	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '[':
		l.pos++
		return Token{Type: TokenLeftBracket, Value: "[", Pos: start}, nil
	case ']':
		l.pos++
		return Token{Type: TokenRightBracket, Value: "]", Pos: start}, nil
	case '{':
		l.pos++
		return Token{Type: TokenLeftBrace, Value: "{", Pos: start}, nil
	case '}':
		l.pos++
		return Token{Type: TokenRightBrace, Value: "}", Pos: start}, nil
	case ':':
		l.pos++
		return Token{Type: TokenColon, Value: ":", Pos: start}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil
	case '\'', '"':
		return l.readString(ch)
	}

	if ch == '-' || ch == '+' || (ch >= '0' && ch <= '9') {
		return l.readNumber()
	}

	if isWordChar(rune(ch)) {
		return l.readBareword()
	}

	return Token{}, fmt.Errorf("unexpected character %q at position %d", ch, start)
}

// readString reads a string delimited by the given quote character,
// handling backslash escapes.
func (l *Lexer) readString(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // consume opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case '\\':
			if l.pos+1 >= len(l.input) {
				return Token{}, fmt.Errorf("unterminated escape at position %d", l.pos)
			}
			l.pos++
			sb.WriteByte(unescape(l.input[l.pos]))
			l.pos++
		case quote:
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}

	return Token{}, fmt.Errorf("unterminated string starting at position %d", start)
}

// unescape maps an escape character to its literal byte. Unknown escapes
// keep the escaped character as-is.
func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

// readNumber reads an integer or float literal
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	if l.input[l.pos] == '-' || l.input[l.pos] == '+' {
		l.pos++
	}

	digits := 0
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch >= '0' && ch <= '9' {
			digits++
			l.pos++
			continue
		}
		if ch == '.' || ch == 'e' || ch == 'E' || ((ch == '-' || ch == '+') && l.pos > start && (l.input[l.pos-1] == 'e' || l.input[l.pos-1] == 'E')) {
			l.pos++
			continue
		}
		break
	}

	if digits == 0 {
		return Token{}, fmt.Errorf("malformed number at position %d", start)
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}, nil
}

// readBareword reads an unquoted word and classifies it as a constant or
// a bareword string.
func (l *Lexer) readBareword() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isWordChar(rune(l.input[l.pos])) {
		l.pos++
	}

	word := l.input[start:l.pos]
	if tt, ok := constants[word]; ok {
		return Token{Type: tt, Value: word, Pos: start}, nil
	}
	return Token{Type: TokenBareword, Value: word, Pos: start}, nil
}

// isWordChar reports whether the rune can appear in a bareword
func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

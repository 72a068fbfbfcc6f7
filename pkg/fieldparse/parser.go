package fieldparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses a permissive literal token stream into Go values. The
// grammar is a superset of JSON: single-quoted strings, barewords,
// Python constant spellings, and trailing commas are all accepted. It is
// side-effect-free and total; malformed input yields an error, never a
// panic.
type Parser struct {
	input  string
	tokens []Token
	pos    int
	lexErr error
}

// NewParser creates a parser for the given input
func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.tokens, p.lexErr = NewLexer(input).Tokenize()
	return p
}

// ParseValue parses the input as a single literal value and requires the
// whole input to be consumed.
func (p *Parser) ParseValue() (any, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("trailing input at position %d", tok.Pos)
	}
	return v, nil
}

// parseValue parses any value: object, array, or scalar
func (p *Parser) parseValue() (any, error) {
	tok := p.peek()

	switch tok.Type {
	case TokenLeftBrace:
		return p.parseObject()
	case TokenLeftBracket:
		return p.parseArray()
	case TokenString, TokenBareword:
		p.next()
		return tok.Value, nil
	case TokenNumber:
		p.next()
		return parseNumber(tok.Value)
	case TokenTrue:
		p.next()
		return true, nil
	case TokenFalse:
		p.next()
		return false, nil
	case TokenNull:
		p.next()
		return nil, nil
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	default:
		return nil, fmt.Errorf("unexpected token %s at position %d", tok.Type, tok.Pos)
	}
}

// parseObject parses { key: value, ... } with optional trailing comma
func (p *Parser) parseObject() (any, error) {
	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	obj := make(map[string]any)
	for {
		if p.peek().Type == TokenRightBrace {
			p.next()
			return obj, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = value

		switch p.peek().Type {
		case TokenComma:
			p.next()
		case TokenRightBrace:
			// close on next iteration
		default:
			return nil, fmt.Errorf("expected , or } at position %d", p.peek().Pos)
		}
	}
}

// parseKey parses an object key; quoted strings, barewords, and numbers
// are all acceptable keys in the permissive grammar.
func (p *Parser) parseKey() (string, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenString, TokenBareword, TokenNumber:
		p.next()
		return tok.Value, nil
	default:
		return "", fmt.Errorf("expected object key at position %d, got %s", tok.Pos, tok.Type)
	}
}

// parseArray parses [ value, ... ] with optional trailing comma
func (p *Parser) parseArray() (any, error) {
	if _, err := p.expect(TokenLeftBracket); err != nil {
		return nil, err
	}

	arr := make([]any, 0)
	for {
		if p.peek().Type == TokenRightBracket {
			p.next()
			return arr, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		switch p.peek().Type {
		case TokenComma:
			p.next()
		case TokenRightBracket:
			// close on next iteration
		default:
			return nil, fmt.Errorf("expected , or ] at position %d", p.peek().Pos)
		}
	}
}

// peek returns the current token without consuming it
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

// next consumes and returns the current token
func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has the given type
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return Token{}, fmt.Errorf("expected %s at position %d, got %s", tt, tok.Pos, tok.Type)
	}
	return p.next(), nil
}

// parseNumber converts a number literal to int64 when it is integral and
// float64 otherwise.
func parseNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed number %q", s)
	}
	return f, nil
}

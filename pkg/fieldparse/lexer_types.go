package fieldparse

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
	// TokenBareword is an unquoted run of word characters that is not a
	// recognized constant; the permissive grammar treats it as a string
	TokenBareword

	// Delimiters
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenColon        // :
	TokenComma        // ,
)

// String returns a human-readable name for the token type
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNull:
		return "NULL"
	case TokenBareword:
		return "BAREWORD"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	default:
		return "UNKNOWN"
	}
}

// constants maps unquoted literal spellings to token types. Both the
// JSON and the Python spellings appear in the wild.
var constants = map[string]TokenType{
	"true":  TokenTrue,
	"True":  TokenTrue,
	"false": TokenFalse,
	"False": TokenFalse,
	"null":  TokenNull,
	"None":  TokenNull,
}

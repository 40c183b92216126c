package lexer

// TokenType represents the category of a token
type TokenType int

const (
	TOKEN_UNKNOWN    TokenType = iota
	TOKEN_KEYWORD              // DEFAULT, NOT NULL, ON UPDATE... (from mapping.ColumnDirectives)
	TOKEN_WORD                 // int, utf8mb4, CURRENT_TIMESTAMP, unsigned
	TOKEN_IDENTIFIER           // `name`
	TOKEN_STRING               // 'John' (quotes removed, escapes resolved)
	TOKEN_NUMBER               // 25, -3.14
	TOKEN_LPAREN               // (
	TOKEN_RPAREN               // )
	TOKEN_COMMA                // ,
	TOKEN_OPERATOR             // =, *, <=, ...
	TOKEN_EOF                  // End of input
)

// Token represents a single token with position info
type Token struct {
	Type     TokenType
	Value    string // Keywords are upper-cased, everything else keeps its spelling
	Position int    // Byte offset in input
	Column   int    // Column number (1-indexed)
}

// String returns human-readable token type name
func (t TokenType) String() string {
	names := []string{
		"UNKNOWN",
		"KEYWORD",
		"WORD",
		"IDENTIFIER",
		"STRING",
		"NUMBER",
		"LPAREN",
		"RPAREN",
		"COMMA",
		"OPERATOR",
		"EOF",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

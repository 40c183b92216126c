package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/omniql-engine/sqlkit/mapping"
)

// Tokenizer converts one DDL line to tokens
type Tokenizer struct {
	input  string
	pos    int
	column int
	tokens []Token
}

// Tokenize converts a DDL column or key line to tokens, classifying directive keywords against mapping
func Tokenize(input string) ([]Token, error) {
	t := &Tokenizer{input: input, column: 1}
	return t.tokenize()
}

func (t *Tokenizer) tokenize() ([]Token, error) {
	for t.pos < len(t.input) {
		if t.skipWhitespace() {
			continue
		}

		ch := t.input[t.pos]

		switch ch {
		case '(':
			t.addToken(TOKEN_LPAREN, "(")
			t.advance()
			continue
		case ')':
			t.addToken(TOKEN_RPAREN, ")")
			t.advance()
			continue
		case ',':
			t.addToken(TOKEN_COMMA, ",")
			t.advance()
			continue
		case '`':
			token, err := t.scanQuoted('`', TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			t.tokens = append(t.tokens, token)
			continue
		case '\'', '"':
			token, err := t.scanQuoted(ch, TOKEN_STRING)
			if err != nil {
				return nil, err
			}
			t.tokens = append(t.tokens, token)
			continue
		}

		if unicode.IsDigit(rune(ch)) || ((ch == '-' || ch == '+') && t.peekDigit()) {
			t.tokens = append(t.tokens, t.scanNumber())
			continue
		}

		if isWordChar(ch) {
			t.tokens = append(t.tokens, t.scanWord())
			continue
		}

		// expression punctuation inside generated columns and DEFAULT (...)
		if strings.IndexByte(operatorChars, ch) >= 0 {
			t.tokens = append(t.tokens, t.scanOperator())
			continue
		}

		return nil, &ParseError{
			Message:  fmt.Sprintf("unexpected character '%c'", ch),
			Position: t.pos,
			Column:   t.column,
		}
	}

	t.addToken(TOKEN_EOF, "")
	return t.tokens, nil
}

func (t *Tokenizer) skipWhitespace() bool {
	skipped := false
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			t.advance()
			skipped = true
		} else {
			break
		}
	}
	return skipped
}

func (t *Tokenizer) advance() {
	t.pos++
	t.column++
}

func (t *Tokenizer) peekDigit() bool {
	if t.pos+1 < len(t.input) {
		return unicode.IsDigit(rune(t.input[t.pos+1]))
	}
	return false
}

func (t *Tokenizer) addToken(tokenType TokenType, value string) {
	t.tokens = append(t.tokens, tokenAt(tokenType, value, t.pos, t.column))
}

func tokenAt(tokenType TokenType, value string, pos, col int) Token {
	return Token{Type: tokenType, Value: value, Position: pos, Column: col}
}

// scanQuoted reads a quoted run. A doubled quote stands for itself; in string
// literals a backslash escapes the next character the way MySQL prints them.
func (t *Tokenizer) scanQuoted(quote byte, tokenType TokenType) (Token, error) {
	startPos := t.pos
	startCol := t.column

	t.advance() // Skip opening quote

	var value strings.Builder
	for t.pos < len(t.input) {
		ch := t.input[t.pos]

		if ch == '\\' && tokenType == TOKEN_STRING && t.pos+1 < len(t.input) {
			t.advance()
			switch t.input[t.pos] {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '0':
				value.WriteByte(0)
			default:
				value.WriteByte(t.input[t.pos])
			}
			t.advance()
			continue
		}

		if ch == quote {
			if t.pos+1 < len(t.input) && t.input[t.pos+1] == quote {
				value.WriteByte(quote)
				t.advance()
				t.advance()
				continue
			}
			t.advance() // Skip closing quote
			return tokenAt(tokenType, value.String(), startPos, startCol), nil
		}

		value.WriteByte(ch)
		t.advance()
	}

	return Token{}, &ParseError{
		Message:  fmt.Sprintf("unclosed quote, expected %c", quote),
		Position: startPos,
		Column:   startCol,
	}
}

func (t *Tokenizer) scanNumber() Token {
	startPos := t.pos
	startCol := t.column

	var value strings.Builder

	if t.input[t.pos] == '-' || t.input[t.pos] == '+' {
		value.WriteByte(t.input[t.pos])
		t.advance()
	}

	for t.pos < len(t.input) && (unicode.IsDigit(rune(t.input[t.pos])) || t.input[t.pos] == '.') {
		value.WriteByte(t.input[t.pos])
		t.advance()
	}

	return tokenAt(TOKEN_NUMBER, value.String(), startPos, startCol)
}

const operatorChars = "*+-/%<>!=&|^~:;"

func (t *Tokenizer) scanOperator() Token {
	startPos := t.pos
	startCol := t.column
	for t.pos < len(t.input) && strings.IndexByte(operatorChars, t.input[t.pos]) >= 0 {
		t.advance()
	}
	return tokenAt(TOKEN_OPERATOR, t.input[startPos:t.pos], startPos, startCol)
}

func isWordChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' || ch == '.' || ch == '$'
}

func (t *Tokenizer) scanWord() Token {
	startPos := t.pos
	startCol := t.column

	var value strings.Builder
	for t.pos < len(t.input) && isWordChar(t.input[t.pos]) {
		value.WriteByte(t.input[t.pos])
		t.advance()
	}

	word := value.String()
	upper := strings.ToUpper(word)

	// Multi-word directives (NOT NULL, ON UPDATE, CHARACTER SET, ...)
	if multiWord := t.tryMultiWord(upper); multiWord != "" {
		return tokenAt(TOKEN_KEYWORD, multiWord, startPos, startCol)
	}
	if _, exists := mapping.ColumnDirectives[upper]; exists {
		return tokenAt(TOKEN_KEYWORD, upper, startPos, startCol)
	}

	return tokenAt(TOKEN_WORD, word, startPos, startCol)
}

func (t *Tokenizer) tryMultiWord(firstWord string) string {
	seconds, ok := mapping.DirectivePrefixes[firstWord]
	if !ok {
		return ""
	}

	savedPos, savedCol := t.pos, t.column

	t.skipWhitespace()

	tempPos := t.pos
	for tempPos < len(t.input) && isWordChar(t.input[tempPos]) {
		tempPos++
	}
	nextWord := strings.ToUpper(t.input[t.pos:tempPos])

	for _, second := range seconds {
		if nextWord == second {
			t.column += tempPos - t.pos
			t.pos = tempPos
			return firstWord + " " + second
		}
	}

	t.pos, t.column = savedPos, savedCol
	return ""
}

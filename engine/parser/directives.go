package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/lexer"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// COLUMN LINE
// ============================================================================

// "Alias(Description)"
var commentLabelPattern = regexp.MustCompile(`(?s)^(.+?)\((.*)\)$`)

type columnDirectives struct {
	charset       string
	collate       string
	defaultValue  *lexer.Token
	onUpdate      string
	comment       string
	notNull       bool
	autoIncrement bool
	primaryKey    bool
	unique        bool
}

func parseColumnLine(line string) (*models.Attribute, error) {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return nil, err
	}
	c := &cursor{line: line, tokens: tokens}

	name := c.next()
	if name.Type != lexer.TOKEN_IDENTIFIER || name.Value == "" {
		return nil, fmt.Errorf("column name expected, got %s", name.Type)
	}
	typeName := c.next()
	if typeName.Type != lexer.TOKEN_WORD {
		return nil, fmt.Errorf("column type expected after `%s`, got %s", name.Value, typeName.Type)
	}
	var args []lexer.Token
	if c.peek().Type == lexer.TOKEN_LPAREN {
		if args, _, err = c.group(); err != nil {
			return nil, err
		}
	}

	d, err := scanDirectives(c)
	if err != nil {
		return nil, err
	}

	attr := &models.Attribute{
		Name:          name.Value,
		IsNullAllowed: !d.notNull,
		Charset:       d.charset,
		Collate:       d.collate,
		IsPrimaryKey:  d.primaryKey,
		IsUnique:      d.unique,
	}
	if err := resolveType(attr, typeName.Value, args, d.comment); err != nil {
		return nil, err
	}

	if d.defaultValue != nil {
		if attr.Default, err = classifyDefault(attr.Type, *d.defaultValue); err != nil {
			return nil, err
		}
	}
	if strings.Contains(strings.ToUpper(d.onUpdate), mapping.CurrentTimestamp) {
		attr.OnUpdateCurrentTimestamp = true
	}
	attr.IsReadonly = d.autoIncrement || attr.OnUpdateCurrentTimestamp

	if d.comment != "" {
		attr.Alias, attr.Description = splitComment(d.comment)
	}
	return attr, nil
}

func scanDirectives(c *cursor) (columnDirectives, error) {
	var d columnDirectives
	for {
		tok := c.peek()
		switch tok.Type {
		case lexer.TOKEN_EOF:
			return d, nil
		case lexer.TOKEN_LPAREN:
			// GENERATED ALWAYS AS (...) and other expressions carry nothing we decode
			if _, _, err := c.group(); err != nil {
				return d, err
			}
			continue
		case lexer.TOKEN_KEYWORD:
		default:
			c.next()
			continue
		}
		c.next()

		def := mapping.ColumnDirectives[tok.Value]
		var value lexer.Token
		if def.HasValue {
			var err error
			if value, err = c.value(tok.Value); err != nil {
				return d, err
			}
		}

		switch tok.Value {
		case "CHARACTER SET":
			d.charset = value.Value
		case "COLLATE":
			d.collate = value.Value
		case "DEFAULT":
			v := value
			d.defaultValue = &v
		case "ON UPDATE":
			d.onUpdate = value.Value
		case "COMMENT":
			if value.Type != lexer.TOKEN_STRING {
				return d, fmt.Errorf("COMMENT expects a quoted string, got %s", value.Type)
			}
			d.comment = value.Value
		case "NOT NULL":
			d.notNull = true
		case "NULL":
			d.notNull = false
		case "AUTO_INCREMENT":
			d.autoIncrement = true
		case "PRIMARY KEY":
			d.primaryKey = true
		case "UNIQUE", "UNIQUE KEY":
			d.unique = true
		}
	}
}

// classifyDefault maps a DEFAULT value onto a literal or a sentinel.
func classifyDefault(t models.Type, tok lexer.Token) (models.Default, error) {
	value := strings.TrimSpace(tok.Value)
	upper := strings.ToUpper(value)

	if strings.Contains(upper, mapping.CurrentTimestamp) {
		return models.Default{Kind: models.DefaultCurrentTimestamp}, nil
	}
	if upper == "NULL" {
		return models.Default{Kind: models.DefaultNull}, nil
	}
	// expression defaults are kept verbatim
	if tok.Type == lexer.TOKEN_WORD && strings.HasPrefix(value, "(") {
		return models.Literal(value), nil
	}

	switch t {
	case models.TypeInt:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return models.Literal(n), nil
		}
		// bigint unsigned above MaxInt64
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			return models.Literal(n), nil
		}
		return models.Default{}, fmt.Errorf("default %q is not an integer", value)
	case models.TypeDecimal, models.TypeFloat, models.TypeDouble:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return models.Default{}, fmt.Errorf("default %q is not a number", value)
		}
		return models.Literal(f), nil
	}
	return models.Literal(value), nil
}

// splitComment splits "Alias(Description)"; a comment without parentheses is the alias alone.
func splitComment(comment string) (alias, description string) {
	if m := commentLabelPattern.FindStringSubmatch(comment); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return comment, ""
}

// unquote decodes a single SQL string literal.
func unquote(literal string) (string, error) {
	tokens, err := lexer.Tokenize(literal)
	if err != nil {
		return "", err
	}
	if len(tokens) != 2 || tokens[0].Type != lexer.TOKEN_STRING {
		return "", fmt.Errorf("not a single string literal: %s", literal)
	}
	return tokens[0].Value, nil
}

// ============================================================================
// TOKEN CURSOR
// ============================================================================

type cursor struct {
	line   string
	tokens []lexer.Token
	pos    int
}

func (c *cursor) peek() lexer.Token {
	if c.pos < len(c.tokens) {
		return c.tokens[c.pos]
	}
	return lexer.Token{Type: lexer.TOKEN_EOF}
}

func (c *cursor) next() lexer.Token {
	tok := c.peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// group consumes a balanced parenthesized run and returns its inner tokens and raw text.
func (c *cursor) group() ([]lexer.Token, string, error) {
	open := c.next()
	if open.Type != lexer.TOKEN_LPAREN {
		return nil, "", fmt.Errorf("expected '(' at column %d", open.Column)
	}
	depth := 1
	var inner []lexer.Token
	for {
		tok := c.next()
		switch tok.Type {
		case lexer.TOKEN_EOF:
			return nil, "", fmt.Errorf("unbalanced '(' at column %d", open.Column)
		case lexer.TOKEN_LPAREN:
			depth++
		case lexer.TOKEN_RPAREN:
			depth--
			if depth == 0 {
				return inner, c.line[open.Position : tok.Position+1], nil
			}
		}
		inner = append(inner, tok)
	}
}

// value reads the operand of a directive. Function calls such as CURRENT_TIMESTAMP(3)
// and parenthesized expressions are returned as one WORD token.
func (c *cursor) value(keyword string) (lexer.Token, error) {
	tok := c.peek()
	switch tok.Type {
	case lexer.TOKEN_EOF, lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN:
		return lexer.Token{}, fmt.Errorf("%s expects a value", keyword)
	case lexer.TOKEN_LPAREN:
		_, raw, err := c.group()
		if err != nil {
			return lexer.Token{}, err
		}
		return lexer.Token{Type: lexer.TOKEN_WORD, Value: raw, Position: tok.Position, Column: tok.Column}, nil
	}
	c.next()
	if tok.Type == lexer.TOKEN_WORD && c.peek().Type == lexer.TOKEN_LPAREN {
		_, raw, err := c.group()
		if err != nil {
			return lexer.Token{}, err
		}
		tok.Value += raw
	}
	return tok, nil
}

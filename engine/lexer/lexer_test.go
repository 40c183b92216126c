package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenize_ColumnLine(t *testing.T) {
	tokens, err := Tokenize("`age` int(11) NOT NULL DEFAULT '0' COMMENT 'Age',")
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TOKEN_IDENTIFIER, TOKEN_WORD, TOKEN_LPAREN, TOKEN_NUMBER, TOKEN_RPAREN,
		TOKEN_KEYWORD, TOKEN_KEYWORD, TOKEN_STRING, TOKEN_KEYWORD, TOKEN_STRING, TOKEN_COMMA, TOKEN_EOF,
	}, types(tokens))
	assert.Equal(t, "age", tokens[0].Value)
	assert.Equal(t, "NOT NULL", tokens[5].Value)
	assert.Equal(t, "DEFAULT", tokens[6].Value)
	assert.Equal(t, "0", tokens[7].Value)
}

func TestTokenize_MultiWordKeywords(t *testing.T) {
	tokens, err := Tokenize("character set utf8mb4 collate utf8mb4_bin on update current_timestamp primary key unique key")
	require.NoError(t, err)

	var keywords []string
	for _, tok := range tokens {
		if tok.Type == TOKEN_KEYWORD {
			keywords = append(keywords, tok.Value)
		}
	}
	assert.Equal(t, []string{"CHARACTER SET", "COLLATE", "ON UPDATE", "PRIMARY KEY", "UNIQUE KEY"}, keywords)
	assert.Equal(t, "utf8mb4", tokens[1].Value)
	assert.Equal(t, TOKEN_WORD, tokens[5].Type)
}

func TestTokenize_OnWithoutUpdateIsWord(t *testing.T) {
	tokens, err := Tokenize("ON DELETE")
	require.NoError(t, err)
	assert.Equal(t, TOKEN_WORD, tokens[0].Type)
	assert.Equal(t, "ON", tokens[0].Value)
}

func TestTokenize_StringEscapes(t *testing.T) {
	tokens, err := Tokenize(`'it''s' 'a\'b' 'c\\d' 'x(1,2)'`)
	require.NoError(t, err)
	assert.Equal(t, "it's", tokens[0].Value)
	assert.Equal(t, "a'b", tokens[1].Value)
	assert.Equal(t, `c\d`, tokens[2].Value)
	assert.Equal(t, "x(1,2)", tokens[3].Value)
}

func TestTokenize_Numbers(t *testing.T) {
	tokens, err := Tokenize("DEFAULT -1.5")
	require.NoError(t, err)
	assert.Equal(t, TOKEN_NUMBER, tokens[1].Type)
	assert.Equal(t, "-1.5", tokens[1].Value)
}

func TestTokenize_ExpressionOperators(t *testing.T) {
	tokens, err := Tokenize("AS ((`a` * `b`) <= 10 - `c`)")
	require.NoError(t, err)

	var ops []string
	for _, tok := range tokens {
		if tok.Type == TOKEN_OPERATOR {
			ops = append(ops, tok.Value)
		}
	}
	assert.Equal(t, []string{"*", "<=", "-"}, ops)
}

func TestTokenize_Errors(t *testing.T) {
	_, err := Tokenize("'unterminated")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Column)

	_, err = Tokenize("`a` int #")
	assert.Error(t, err)
}

func TestSuggestType(t *testing.T) {
	assert.Equal(t, "varchar", SuggestType("varchr"))
	assert.Equal(t, "bigint", SuggestType("BIGINTS"))
	assert.Equal(t, "", SuggestType("geometrycollection"))
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "KEYWORD", TOKEN_KEYWORD.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}

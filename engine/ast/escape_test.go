package ast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeIdentifier(t *testing.T) {
	tests := map[string]string{
		"name":          "`name`",
		"t.name":        "t.name",
		"*":             "*",
		"`quoted`":      "`quoted`",
		"id AS user_id": "id AS user_id",
		"COUNT(*)":      "COUNT(*)",
		" padded ":      "`padded`",
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeIdentifier(in), in)
	}
	assert.Equal(t, []string{"`a`", "b.c"}, EscapeIdentifiers([]string{"a", "b.c"}))
}

func TestQuoteLiteral(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, "NULL", QuoteLiteral(nil))
	assert.Equal(t, "'abc'", QuoteLiteral("abc"))
	assert.Equal(t, "'raw'", QuoteLiteral([]byte("raw")))
	assert.Equal(t, "'1'", QuoteLiteral(true))
	assert.Equal(t, "'0'", QuoteLiteral(false))
	assert.Equal(t, "'42'", QuoteLiteral(42))
	assert.Equal(t, "'1.5'", QuoteLiteral(1.5))
	assert.Equal(t, "'2024-03-01 12:30:00'", QuoteLiteral(ts))
	assert.Equal(t, `'it\'s'`, QuoteLiteral("it's"))
}

func TestEscapeString_Nul(t *testing.T) {
	assert.Equal(t, `a\0b`, EscapeString("a\x00b"))
}

func TestGenerateLikes(t *testing.T) {
	got := GenerateLikes([]string{"title", "t.body"}, []string{"%go%", "%o'k%"})
	assert.Equal(t, "`title` LIKE '%go%' OR `title` LIKE '%o\\'k%' OR t.body LIKE '%go%' OR t.body LIKE '%o\\'k%'", got)
	assert.Equal(t, "", GenerateLikes(nil, []string{"x"}))
}

package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqlkit/engine/ast"
)

func TestDetectOperation(t *testing.T) {
	tests := map[string]Operation{
		"SELECT * FROM t":          OpSelect,
		"  select id from t":       OpSelect,
		"Insert INTO t VALUES (1)": OpInsert,
		"UPDATE t SET a = 1":       OpUpdate,
		"delete from t":            OpDelete,
		"REPLACE INTO t SET a = 1": OpReplace,
		"SHOW TABLES":              OpUnknown,
		"":                         OpUnknown,
	}
	for sql, want := range tests {
		assert.Equal(t, want, DetectOperation(sql), sql)
	}
	assert.True(t, OpDelete.IsWrite())
	assert.False(t, OpSelect.IsWrite())
	assert.True(t, OpReplace.NeedsRows())
	assert.False(t, OpDelete.NeedsRows())
}

func TestRowOf_SortsKeys(t *testing.T) {
	row := RowOf(map[string]any{"b": 2, "a": 1, "c": nil})
	assert.Equal(t, []string{"a", "b", "c"}, row.Names())

	v, ok := row.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = row.Lookup("z")
	assert.False(t, ok)
}

func TestQuery_CloneDoesNotAlias(t *testing.T) {
	q := NewQuery()
	q.Tables = []string{"`posts`"}
	q.Where.Add(ast.And, "a", "=", 1)
	q.Limit = &Limit{Count: 10}
	q.Rows = []Row{{{Name: "a", Value: 1}}}

	c := q.Clone()
	c.Where.Add(ast.And, "b", "=", 2)
	c.Limit.Count = 5
	c.Tables[0] = "`other`"
	c.Rows[0][0].Value = 9

	assert.Equal(t, 1, q.Where.Len())
	assert.Equal(t, 10, q.Limit.Count)
	assert.Equal(t, "`posts`", q.Tables[0])
	assert.Equal(t, 1, q.Rows[0][0].Value)
}

func TestQuery_IsFullRow(t *testing.T) {
	q := NewQuery()
	assert.True(t, q.IsFullRow())
	q.Fields = []string{"id"}
	assert.False(t, q.IsFullRow())
	q.Fields = append(q.Fields, " * ")
	assert.True(t, q.IsFullRow())
}

func TestAttribute_Helpers(t *testing.T) {
	a := &Attribute{
		Name:    "status",
		Type:    TypeEnum,
		Options: []Option{{Key: "A", Label: "Active"}, {Key: "B", Label: "Banned"}},
		Default: Literal("A"),
	}
	assert.Equal(t, "status", a.Label())
	a.Alias = "State"
	assert.Equal(t, "State", a.Label())
	assert.Equal(t, "Banned", a.OptionLabel("B"))
	assert.Equal(t, "Z", a.OptionLabel("Z"))
	assert.Equal(t, []string{"A", "B"}, a.OptionKeys())
	assert.True(t, a.HasUserDefinedDefault())
	assert.False(t, a.HasSystemDefault())

	a.Default = Default{Kind: DefaultCurrentTimestamp}
	assert.True(t, a.HasSystemDefault())

	c := a.Clone()
	c.Options[0].Label = "changed"
	assert.Equal(t, "Active", a.Options[0].Label)
}

func TestType_Classes(t *testing.T) {
	assert.True(t, TypeDecimal.IsNumeric())
	assert.False(t, TypeString.IsNumeric())
	assert.True(t, TypeYear.IsTemporal())
	assert.True(t, TypeSet.HasOptions())
}

func TestNewVirtual(t *testing.T) {
	a := NewVirtual("full_name", TypeString)
	assert.True(t, a.IsVirtual)
	assert.Equal(t, TypeString, a.Type)
}

func TestTable_UpdateAttributeAndAccessors(t *testing.T) {
	table := &Table{Name: "users", Attributes: []*Attribute{
		{Name: "id", Type: TypeInt, IsPrimaryKey: true, IsReadonly: true},
		{Name: "name", Type: TypeString},
	}}
	assert.Equal(t, []string{"id", "name"}, table.Names())
	assert.Equal(t, "id", table.PrimaryKey().Name)

	require.NoError(t, table.UpdateAttribute("name", func(a *Attribute) { a.Alias = "Name" }))
	assert.Equal(t, "Name", table.Attribute("name").Alias)

	err := table.UpdateAttribute("missing", func(*Attribute) {})
	assert.True(t, errors.Is(err, ErrState))

	table.WithAccessor("name", Accessor{
		Get: func(v any) any { return strings.ToUpper(v.(string)) },
		Set: func(v any) (any, error) { return strings.TrimSpace(v.(string)), nil },
	})
	row := map[string]any{}
	require.NoError(t, table.Set(row, "name", "  moon "))
	assert.Equal(t, "moon", row["name"])
	assert.Equal(t, "MOON", table.Get(row, "name"))

	assert.ErrorIs(t, table.Set(row, "id", 5), ErrState)
}

func TestParseError_Unwrap(t *testing.T) {
	err := &ParseError{Line: 3, Text: "`x` blob", Message: "unknown type", Err: ErrTypeResolution}
	assert.ErrorIs(t, err, ErrTypeResolution)
	assert.NotErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "line 3")

	plain := &ParseError{Message: "bad"}
	assert.ErrorIs(t, plain, ErrParse)
}

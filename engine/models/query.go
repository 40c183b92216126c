package models

import (
	"sort"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// QUERY - builder state for all five operations
// ============================================================================

// Operation is the statement kind a Query serializes to.
type Operation string

const (
	OpUnknown Operation = ""
	OpSelect  Operation = "SELECT"
	OpInsert  Operation = "INSERT"
	OpUpdate  Operation = "UPDATE"
	OpDelete  Operation = "DELETE"
	OpReplace Operation = "REPLACE"
)

// DetectOperation maps the first token of sql onto an Operation; unrecognized text is OpUnknown.
func DetectOperation(sql string) Operation {
	if op, ok := mapping.OperationKeywords[mapping.LeadingKeyword(sql)]; ok {
		return Operation(op)
	}
	return OpUnknown
}

// IsWrite reports operations that modify rows.
func (o Operation) IsWrite() bool {
	switch o {
	case OpInsert, OpUpdate, OpDelete, OpReplace:
		return true
	}
	return false
}

// NeedsRows reports operations that serialize row data.
func (o Operation) NeedsRows() bool {
	return o == OpInsert || o == OpUpdate || o == OpReplace
}

// JoinKind selects the JOIN keyword.
type JoinKind string

const (
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinInner JoinKind = "INNER"
)

// Join is one JOIN clause. On may be empty.
type Join struct {
	Table string
	On    string
	Kind  JoinKind
}

// Limit is an (offset, count) window. Explicit marks an offset given by the caller,
// which is then always rendered even when zero.
type Limit struct {
	Offset   int
	Count    int
	Explicit bool
}

// Field is one column/value pair of a row.
type Field struct {
	Name  string
	Value any
}

// Row is an ordered list of column values.
type Row []Field

// RowOf builds a Row from a map with keys sorted for deterministic output.
func RowOf(m map[string]any) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	row := make(Row, len(keys))
	for i, k := range keys {
		row[i] = Field{Name: k, Value: m[k]}
	}
	return row
}

// Lookup returns the value stored under name.
func (r Row) Lookup(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Query is the mutable builder state. Raw SQL, when set, wins over the structured fields.
type Query struct {
	Raw         string
	Operation   Operation
	Fields      []string
	Tables      []string
	Joins       []Join
	Where       *ast.Tree
	Order       []string
	Group       string
	Limit       *Limit
	Rows        []Row
	TablePrefix string
}

// NewQuery returns an empty SELECT state.
func NewQuery() *Query {
	return &Query{Operation: OpSelect, Where: ast.NewTree()}
}

// Clone deep-copies the state so the copy never aliases conditions, rows or limit.
func (q *Query) Clone() *Query {
	c := *q
	c.Fields = append([]string(nil), q.Fields...)
	c.Tables = append([]string(nil), q.Tables...)
	c.Joins = append([]Join(nil), q.Joins...)
	c.Order = append([]string(nil), q.Order...)
	if q.Where != nil {
		c.Where = q.Where.Clone()
	}
	if q.Limit != nil {
		l := *q.Limit
		c.Limit = &l
	}
	if q.Rows != nil {
		c.Rows = make([]Row, len(q.Rows))
		for i, r := range q.Rows {
			c.Rows[i] = append(Row(nil), r...)
		}
	}
	return &c
}

// IsFullRow reports a projection of every column.
func (q *Query) IsFullRow() bool {
	if len(q.Fields) == 0 {
		return true
	}
	for _, f := range q.Fields {
		if strings.TrimSpace(f) == "*" {
			return true
		}
	}
	return false
}

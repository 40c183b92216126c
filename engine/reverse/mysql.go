package reverse

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/test_driver"

	"github.com/omniql-engine/sqlkit/engine/models"
)

// ============================================================================
// CREATE TABLE INSPECTION
// ============================================================================

// ColumnShape is a column as the MySQL grammar sees it.
type ColumnShape struct {
	Name          string
	Type          string // Compact type string, e.g. "int(11)" or "varchar(64)"
	NotNull       bool
	PrimaryKey    bool
	Unique        bool
	AutoIncrement bool
}

// TableShape is a CREATE TABLE statement as the MySQL grammar sees it.
type TableShape struct {
	Name       string
	Entity     string
	Comment    string
	Columns    []ColumnShape
	PrimaryKey []string
	UniqueKeys [][]string
}

// ColumnNames returns the column names in declaration order.
func (s *TableShape) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// InspectCreateTable parses a CREATE TABLE statement with the TiDB parser.
func InspectCreateTable(sql string) (*TableShape, error) {
	stmt, err := parseOne(sql)
	if err != nil {
		return nil, err
	}
	create, ok := stmt.(*ast.CreateTableStmt)
	if !ok {
		return nil, fmt.Errorf("%w: expected CREATE TABLE, got %T", ErrNotSupported, stmt)
	}

	shape := &TableShape{
		Name:   create.Table.Name.O,
		Entity: TableToEntity(create.Table.Name.O),
	}

	for _, col := range create.Cols {
		c := ColumnShape{Name: col.Name.Name.O}
		if col.Tp != nil {
			c.Type = col.Tp.CompactStr()
		}
		for _, opt := range col.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				c.NotNull = true
			case ast.ColumnOptionPrimaryKey:
				c.PrimaryKey = true
			case ast.ColumnOptionUniqKey:
				c.Unique = true
			case ast.ColumnOptionAutoIncrement:
				c.AutoIncrement = true
			}
		}
		if c.PrimaryKey {
			shape.PrimaryKey = append(shape.PrimaryKey, c.Name)
		}
		shape.Columns = append(shape.Columns, c)
	}

	for _, constraint := range create.Constraints {
		keys := constraintColumns(constraint)
		switch constraint.Tp {
		case ast.ConstraintPrimaryKey:
			shape.PrimaryKey = append(shape.PrimaryKey, keys...)
		case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
			shape.UniqueKeys = append(shape.UniqueKeys, keys)
		}
	}

	for _, opt := range create.Options {
		if opt.Tp == ast.TableOptionComment {
			shape.Comment = opt.StrValue
		}
	}

	return shape, nil
}

func constraintColumns(c *ast.Constraint) []string {
	var cols []string
	for _, k := range c.Keys {
		if k.Column != nil {
			cols = append(cols, k.Column.Name.O)
		}
	}
	return cols
}

// ============================================================================
// SELECT INSPECTION
// ============================================================================

// SelectShape summarizes the clauses of a SELECT statement.
type SelectShape struct {
	Tables         []string
	Fields         []string // Column names, aliases, or "*"
	Distinct       bool
	HasGroupBy     bool
	HasHaving      bool
	HasOrderBy     bool
	Limit          *models.Limit
	IsSetOperation bool // UNION / INTERSECT / EXCEPT
	HasSubquery    bool // A sub-query appears in the projection
}

// NeedsDerivedCount reports whether counting must wrap the statement as a derived
// table instead of replacing its projection.
func (s *SelectShape) NeedsDerivedCount() bool {
	return s.IsSetOperation || s.Distinct || s.HasGroupBy || s.Limit != nil || s.HasSubquery
}

// InspectSelect parses a SELECT (or set operation) statement with the TiDB parser.
func InspectSelect(sql string) (*SelectShape, error) {
	stmt, err := parseOne(sql)
	if err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return inspectSelectStmt(s), nil
	case *ast.SetOprStmt:
		shape := &SelectShape{IsSetOperation: true, HasOrderBy: s.OrderBy != nil}
		if s.Limit != nil {
			shape.Limit = limitOf(s.Limit)
		}
		if s.SelectList != nil && len(s.SelectList.Selects) > 0 {
			if first, ok := s.SelectList.Selects[0].(*ast.SelectStmt); ok {
				shape.Tables = inspectSelectStmt(first).Tables
			}
		}
		return shape, nil
	default:
		return nil, fmt.Errorf("%w: expected SELECT, got %T", ErrNotSupported, stmt)
	}
}

func inspectSelectStmt(stmt *ast.SelectStmt) *SelectShape {
	shape := &SelectShape{
		Distinct:   stmt.Distinct,
		HasGroupBy: stmt.GroupBy != nil,
		HasHaving:  stmt.Having != nil,
		HasOrderBy: stmt.OrderBy != nil,
	}
	if stmt.Limit != nil {
		shape.Limit = limitOf(stmt.Limit)
	}
	if stmt.From != nil && stmt.From.TableRefs != nil {
		tc := &tableCollector{}
		stmt.From.TableRefs.Accept(tc)
		shape.Tables = tc.tables
	}
	if stmt.Fields != nil {
		for _, f := range stmt.Fields.Fields {
			shape.Fields = append(shape.Fields, selectFieldName(f))
			if f.Expr != nil {
				sf := &subqueryFinder{}
				f.Expr.Accept(sf)
				shape.HasSubquery = shape.HasSubquery || sf.found
			}
		}
	}
	return shape
}

func selectFieldName(f *ast.SelectField) string {
	switch {
	case f.WildCard != nil:
		if f.WildCard.Table.O != "" {
			return f.WildCard.Table.O + ".*"
		}
		return "*"
	case f.AsName.O != "":
		return f.AsName.O
	}
	if col, ok := f.Expr.(*ast.ColumnNameExpr); ok {
		return col.Name.Name.O
	}
	return strings.TrimSpace(f.Text())
}

func limitOf(l *ast.Limit) *models.Limit {
	out := &models.Limit{}
	if val, ok := l.Count.(*test_driver.ValueExpr); ok {
		out.Count = int(val.GetInt64())
	}
	if l.Offset != nil {
		if val, ok := l.Offset.(*test_driver.ValueExpr); ok {
			out.Offset = int(val.GetInt64())
			out.Explicit = true
		}
	}
	return out
}

// ============================================================================
// VISITORS
// ============================================================================

type tableCollector struct {
	tables []string
}

func (v *tableCollector) Enter(n ast.Node) (ast.Node, bool) {
	switch t := n.(type) {
	case *ast.TableName:
		v.tables = append(v.tables, t.Name.O)
	case *ast.SelectStmt, *ast.SetOprStmt:
		// derived tables are not base tables
		return n, true
	}
	return n, false
}

func (v *tableCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

type subqueryFinder struct {
	found bool
}

func (v *subqueryFinder) Enter(n ast.Node) (ast.Node, bool) {
	if _, ok := n.(*ast.SubqueryExpr); ok {
		v.found = true
		return n, true
	}
	return n, false
}

func (v *subqueryFinder) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

package mysql

import (
	"fmt"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/engine/limit"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// ENTRY POINT
// ============================================================================

// BuildSQL serializes q. Raw SQL is returned verbatim; otherwise the statement is
// built from the structured state and is a pure function of it.
func BuildSQL(q *models.Query) (string, error) {
	if q == nil {
		return "", fmt.Errorf("%w: nil query", models.ErrState)
	}
	if q.Raw != "" {
		return q.Raw, nil
	}
	if len(q.Tables) == 0 {
		return "", fmt.Errorf("%w: no table specified for %s", models.ErrState, operationName(q.Operation))
	}
	if q.Operation.NeedsRows() {
		if err := requireRows(q); err != nil {
			return "", err
		}
	}

	var (
		sql string
		err error
	)
	switch q.Operation {
	case models.OpSelect:
		sql = BuildSelectSQL(q)
	case models.OpDelete:
		sql = BuildDeleteSQL(q)
	case models.OpInsert:
		sql, err = BuildInsertSQL(q)
	case models.OpUpdate, models.OpReplace:
		sql, err = BuildUpdateSQL(q)
	default:
		return "", fmt.Errorf("%w: no database operation type set", models.ErrState)
	}
	if err != nil {
		return "", err
	}

	if q.Limit != nil && !limit.HasClause(sql) {
		sql += " " + BuildLimitClause(*q.Limit)
	}
	return sql, nil
}

func operationName(op models.Operation) string {
	if op == models.OpUnknown {
		return "unknown operation"
	}
	return string(op)
}

func requireRows(q *models.Query) error {
	if len(q.Rows) == 0 || len(q.Rows[0]) == 0 {
		return fmt.Errorf("%w: no data in database %s operation", models.ErrState, strings.ToLower(operationName(q.Operation)))
	}
	return nil
}

// ============================================================================
// CRUD OPERATIONS - SQL BUILDERS
// ============================================================================

// BuildSelectSQL: SELECT <fields|*> FROM <tables><joins><where>[ GROUP BY g][ ORDER BY o]
func BuildSelectSQL(q *models.Query) string {
	columns := "*"
	if len(q.Fields) > 0 {
		columns = strings.Join(ast.EscapeIdentifiers(q.Fields), ",")
	}

	sql := "SELECT " + columns + " FROM " + buildTables(q) + BuildJoinClause(q.Joins, q.TablePrefix) + q.Where.Render()
	if q.Group != "" {
		sql += " GROUP BY " + q.Group
	}
	if len(q.Order) > 0 {
		sql += " ORDER BY " + strings.Join(q.Order, ",")
	}
	return sql
}

// BuildDeleteSQL: DELETE FROM <tables><where>
func BuildDeleteSQL(q *models.Query) string {
	return "DELETE FROM " + buildTables(q) + q.Where.Render()
}

// BuildInsertSQL emits one multi-row INSERT. Every row must carry the first row's columns.
func BuildInsertSQL(q *models.Query) (string, error) {
	if err := requireRows(q); err != nil {
		return "", err
	}
	keys := q.Rows[0].Names()

	values := make([]string, 0, len(q.Rows))
	for i, row := range q.Rows {
		if len(row) != len(keys) {
			return "", fmt.Errorf("%w: insert row %d has %d columns, expected %d", models.ErrState, i, len(row), len(keys))
		}
		literals := make([]string, len(keys))
		for j, k := range keys {
			v, ok := row.Lookup(k)
			if !ok {
				return "", fmt.Errorf("%w: insert row %d is missing column %q", models.ErrState, i, k)
			}
			literals[j] = ast.QuoteLiteral(v)
		}
		values = append(values, "("+strings.Join(literals, ",")+")")
	}

	return "INSERT INTO " + buildTables(q) + " (" + strings.Join(ast.EscapeIdentifiers(keys), ",") + ") VALUES " +
		strings.Join(values, ","), nil
}

// BuildUpdateSQL emits UPDATE ... SET or REPLACE INTO ... SET from exactly one row.
// REPLACE carries no WHERE clause.
func BuildUpdateSQL(q *models.Query) (string, error) {
	if err := requireRows(q); err != nil {
		return "", err
	}
	if len(q.Rows) > 1 {
		return "", fmt.Errorf("%w: %s accepts a single row, got %d", models.ErrState, q.Operation, len(q.Rows))
	}

	sets := make([]string, len(q.Rows[0]))
	for i, f := range q.Rows[0] {
		sets[i] = ast.EscapeIdentifier(f.Name) + " = " + ast.QuoteLiteral(f.Value)
	}

	if q.Operation == models.OpReplace {
		return "REPLACE INTO " + buildTables(q) + " SET " + strings.Join(sets, ","), nil
	}
	return "UPDATE " + buildTables(q) + " SET " + strings.Join(sets, ",") + q.Where.Render(), nil
}

// ============================================================================
// CLAUSE BUILDERS
// ============================================================================

// BuildJoinClause renders " LEFT JOIN `t` ON expr" for each join.
func BuildJoinClause(joins []models.Join, prefix string) string {
	var sb strings.Builder
	for _, j := range joins {
		kw, ok := mapping.JoinKeywords[strings.ToUpper(string(j.Kind))]
		if !ok {
			kw = mapping.JoinKeywords["INNER"]
		}
		sb.WriteString(" " + kw + " " + ast.EscapeIdentifier(PrefixTable(prefix, j.Table)))
		if j.On != "" {
			sb.WriteString(" ON " + j.On)
		}
	}
	return sb.String()
}

// BuildLimitClause renders a window without a leading space.
func BuildLimitClause(l models.Limit) string {
	return limit.Clause(l)
}

// OrderByValues renders FIELD(`f`,'a','b') for ordering by an explicit value list.
// An empty list yields "".
func OrderByValues(field string, values []any) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, ast.EscapeIdentifier(field))
	for _, v := range values {
		parts = append(parts, ast.QuoteLiteral(v))
	}
	return "FIELD(" + strings.Join(parts, ",") + ")"
}

// PrefixTable prepends prefix to a plain table name. Qualified or already escaped
// names are left alone.
func PrefixTable(prefix, table string) string {
	table = strings.TrimSpace(table)
	if prefix == "" || strings.ContainsAny(table, "`. (") {
		return table
	}
	return prefix + table
}

func buildTables(q *models.Query) string {
	tables := make([]string, len(q.Tables))
	for i, t := range q.Tables {
		tables[i] = ast.EscapeIdentifier(PrefixTable(q.TablePrefix, t))
	}
	return strings.Join(tables, ",")
}

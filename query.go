// query.go

package sqlkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/engine/builders/mysql"
	"github.com/omniql-engine/sqlkit/engine/limit"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/engine/validator"
)

// ============================================
// QUERY BUILDER
// ============================================

// Query is a fluent statement builder. It is not safe for concurrent use; Clone it
// before handing a shared template to another goroutine.
//
// Errors raised while chaining are kept and returned by ToSQL.
type Query struct {
	state *models.Query
	errs  []error
}

// New starts a builder. A non-empty raw statement is used verbatim by ToSQL and
// only LIMIT patching applies to it.
func New(raw string) *Query {
	q := &Query{state: models.NewQuery()}
	if raw = strings.TrimSpace(raw); raw != "" {
		q.state.Raw = raw
		q.state.Operation = models.DetectOperation(raw)
	}
	return q
}

// Select switches to SELECT and appends fields.
func Select(fields ...string) *Query {
	return New("").Select(fields...)
}

func (q *Query) fail(err error) *Query {
	q.errs = append(q.errs, err)
	return q
}

// ============================================
// OPERATION
// ============================================

func (q *Query) Select(fields ...string) *Query {
	q.state.Operation = models.OpSelect
	return q.Fields(fields...)
}

func (q *Query) Insert() *Query {
	q.state.Operation = models.OpInsert
	return q
}

func (q *Query) Update() *Query {
	q.state.Operation = models.OpUpdate
	return q
}

func (q *Query) Replace() *Query {
	q.state.Operation = models.OpReplace
	return q
}

func (q *Query) Delete() *Query {
	q.state.Operation = models.OpDelete
	return q
}

// Operation returns the statement kind; OpUnknown for unrecognized raw SQL.
func (q *Query) Operation() models.Operation {
	return q.state.Operation
}

func (q *Query) IsWrite() bool {
	return q.state.Operation.IsWrite()
}

// IsFullRowQuery reports a projection of every column.
func (q *Query) IsFullRowQuery() bool {
	return q.state.IsFullRow()
}

// ============================================
// TABLES, FIELDS, DATA
// ============================================

// Fields appends projected columns. Expressions such as "COUNT(*) AS n" are kept as-is.
func (q *Query) Fields(fields ...string) *Query {
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			q.state.Fields = append(q.state.Fields, f)
		}
	}
	return q
}

// From replaces the table list with a comma separated list.
func (q *Query) From(tables string) *Query {
	q.state.Tables = q.state.Tables[:0]
	for _, t := range strings.Split(tables, ",") {
		if t = strings.TrimSpace(t); t != "" {
			q.state.Tables = append(q.state.Tables, t)
		}
	}
	return q
}

// TablePrefix is prepended to every plain table name.
func (q *Query) TablePrefix(prefix string) *Query {
	q.state.TablePrefix = prefix
	return q
}

func (q *Query) Join(table, on string, kind models.JoinKind) *Query {
	q.state.Joins = append(q.state.Joins, models.Join{Table: table, On: on, Kind: kind})
	return q
}

func (q *Query) LeftJoin(table, on string) *Query {
	return q.Join(table, on, models.JoinLeft)
}

func (q *Query) RightJoin(table, on string) *Query {
	return q.Join(table, on, models.JoinRight)
}

func (q *Query) InnerJoin(table, on string) *Query {
	return q.Join(table, on, models.JoinInner)
}

// SetData sets a single row for INSERT, UPDATE or REPLACE.
func (q *Query) SetData(data map[string]any) *Query {
	q.state.Rows = []models.Row{models.RowOf(data)}
	return q
}

// SetRows sets several rows for a multi-row INSERT. Every row must carry the
// columns of the first.
func (q *Query) SetRows(rows []map[string]any) *Query {
	q.state.Rows = make([]models.Row, len(rows))
	for i, r := range rows {
		q.state.Rows[i] = models.RowOf(r)
	}
	return q
}

// ============================================
// CONDITIONS
// ============================================

// Where is AndWhere.
func (q *Query) Where(field, operator string, value any) *Query {
	return q.AndWhere(field, operator, value)
}

func (q *Query) AndWhere(field, operator string, value any) *Query {
	q.state.Where.Add(ast.And, field, operator, value)
	return q
}

func (q *Query) OrWhere(field, operator string, value any) *Query {
	q.state.Where.Add(ast.Or, field, operator, value)
	return q
}

// WhereRaw adds an expression rendered in parentheses. An empty expression is ignored.
func (q *Query) WhereRaw(expr string) *Query {
	if strings.TrimSpace(expr) != "" {
		q.state.Where.AddRaw(ast.And, expr)
	}
	return q
}

func (q *Query) OrWhereRaw(expr string) *Query {
	if strings.TrimSpace(expr) != "" {
		q.state.Where.AddRaw(ast.Or, expr)
	}
	return q
}

// WhereIn matches field against a slice; an empty slice matches nothing.
func (q *Query) WhereIn(field string, values any) *Query {
	return q.AndWhere(field, "IN", values)
}

func (q *Query) WhereNotIn(field string, values any) *Query {
	return q.AndWhere(field, "NOT IN", values)
}

// WhereLike ORs a LIKE test for every field and pattern.
func (q *Query) WhereLike(fields []string, patterns ...string) *Query {
	return q.WhereRaw(ast.GenerateLikes(fields, patterns))
}

// WhereGroup adds sub as a parenthesized group.
func (q *Query) WhereGroup(logic ast.Combinator, sub *ast.Tree) *Query {
	q.state.Where.AddGroup(logic, sub)
	return q
}

// AddConditions appends pre-built leaves.
func (q *Query) AddConditions(leaves ...ast.Leaf) *Query {
	q.state.Where.Merge(leaves...)
	return q
}

// Between adds field >= lo AND field <= hi.
func (q *Query) Between(field string, lo, hi any) *Query {
	return q.AndWhere(field, ">=", lo).AndWhere(field, "<=", hi)
}

// ============================================
// ORDER, GROUP, LIMIT
// ============================================

// Order appends one ORDER BY item; parts are joined by spaces: Order("id", "DESC").
func (q *Query) Order(parts ...string) *Query {
	if item := strings.TrimSpace(strings.Join(parts, " ")); item != "" {
		q.state.Order = append(q.state.Order, item)
	}
	return q
}

// OrderByValues orders by the position of field's value in values.
func (q *Query) OrderByValues(field string, values ...any) *Query {
	return q.Order(mysql.OrderByValues(field, values))
}

func (q *Query) Group(group string) *Query {
	q.state.Group = group
	return q
}

// Limit caps the result at count rows. A zero count removes the limit on a built
// query; on raw SQL the existing LIMIT clause is patched.
func (q *Query) Limit(count int) *Query {
	if count < 0 {
		return q.fail(fmt.Errorf("%w: negative limitation %d", models.ErrRange, count))
	}
	if q.state.Raw != "" {
		if count == 0 {
			return q
		}
		return q.patch(limit.Size(count))
	}
	if count == 0 {
		q.state.Limit = nil
		return q
	}
	q.state.Limit = &models.Limit{Count: count}
	return q
}

// LimitOffset sets an explicit (offset, count) window, always rendered as "LIMIT offset,count".
func (q *Query) LimitOffset(offset, count int) *Query {
	if offset < 0 || count < 0 {
		return q.fail(fmt.Errorf("%w: negative limitation %d,%d", models.ErrRange, offset, count))
	}
	if q.state.Raw != "" {
		return q.patch(limit.Page(offset, count))
	}
	q.state.Limit = &models.Limit{Offset: offset, Count: count, Explicit: true}
	return q
}

// Paginate narrows the current window by req. The page is relative to any limit
// already present, so a page past the end of the window is a RangeError.
func (q *Query) Paginate(req limit.Request) *Query {
	if q.state.Raw != "" {
		return q.patch(req)
	}
	l, err := limit.Compose(q.state.Limit, req)
	if err != nil {
		return q.fail(err)
	}
	q.state.Limit = &l
	return q
}

func (q *Query) patch(req limit.Request) *Query {
	sql, err := limit.Patch(q.state.Raw, req)
	if err != nil {
		return q.fail(err)
	}
	q.state.Raw = sql
	return q
}

// ============================================
// OUTPUT
// ============================================

// ToSQL serializes the builder. The result is a pure function of the builder state.
func (q *Query) ToSQL() (string, error) {
	if len(q.errs) > 0 {
		return "", errors.Join(q.errs...)
	}
	return mysql.BuildSQL(q.state)
}

// String returns the SQL or "" when the builder is in error.
func (q *Query) String() string {
	sql, err := q.ToSQL()
	if err != nil {
		return ""
	}
	return sql
}

// Validate checks the serialized statement against the MySQL grammar.
func (q *Query) Validate() error {
	sql, err := q.ToSQL()
	if err != nil {
		return err
	}
	return validator.ValidateMySQL(sql)
}

// Clone returns an independent copy; conditions, rows and limit are not shared.
func (q *Query) Clone() *Query {
	return &Query{
		state: q.state.Clone(),
		errs:  append([]error(nil), q.errs...),
	}
}

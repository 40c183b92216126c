// client.go

package sqlkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/engine/builders/mysql"
	"github.com/omniql-engine/sqlkit/engine/cache"
	"github.com/omniql-engine/sqlkit/engine/driver"
	"github.com/omniql-engine/sqlkit/engine/limit"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/engine/parser"
	"github.com/omniql-engine/sqlkit/engine/validator"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================
// CLIENT STRUCT
// ============================================

// Client runs builders through a Driver, with optional result caching.
type Client struct {
	driver    driver.Driver
	cache     cache.Cache
	logger    *slog.Logger
	namespace string
	checker   validator.Validator
	flight    *singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithCache serves repeated reads from c.
func WithCache(c cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithNamespace scopes cache keys, e.g. per DSN.
func WithNamespace(ns string) Option {
	return func(cl *Client) { cl.namespace = ns }
}

// WithValidation checks every statement against the MySQL grammar before it runs.
func WithValidation() Option {
	return WithValidator(validator.MySQL{})
}

// WithValidator checks every statement with v before it runs.
func WithValidator(v validator.Validator) Option {
	return func(cl *Client) { cl.checker = v }
}

// ============================================
// CONSTRUCTORS
// ============================================

func NewClient(d driver.Driver, opts ...Option) *Client {
	c := &Client{
		driver: d,
		logger: slog.Default(),
		flight: &singleflight.Group{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithoutCache returns a client sharing the driver but bypassing the cache.
func (c *Client) WithoutCache() *Client {
	cp := *c
	cp.cache = nil
	return &cp
}

// Driver returns the underlying driver.
func (c *Client) Driver() driver.Driver {
	return c.driver
}

// ============================================
// READS
// ============================================

// GetPage runs a copy of q narrowed by req. q itself is never modified; a nil req
// runs q unchanged.
func (c *Client) GetPage(ctx context.Context, q *Query, req *limit.Request) ([]driver.Row, error) {
	work := q.Clone()
	if req != nil {
		work.Paginate(*req)
	}
	sql, err := c.prepare(work)
	if err != nil {
		return nil, err
	}
	if req != nil {
		c.logger.Debug("paginate", "page", req.String(), "sql", sql)
	}

	if c.cache == nil || !mapping.IsReadOnlyStatement(sql) {
		return c.execute(ctx, sql)
	}

	key := cache.Key(c.namespace, sql)
	if rows, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		c.logger.Debug("cache hit", "sql", sql)
		return rows, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		rows, err := c.execute(ctx, sql)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, rows); err != nil {
			c.logger.Warn("cache set failed", "key", key, "error", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	// coalesced callers share one result set
	return cache.Copy(v.([]driver.Row)), nil
}

// GetAll runs q without further paging.
func (c *Client) GetAll(ctx context.Context, q *Query) ([]driver.Row, error) {
	return c.GetPage(ctx, q, nil)
}

// GetOne returns the first row, or nil when there is none.
func (c *Client) GetOne(ctx context.Context, q *Query) (driver.Row, error) {
	req := limit.Size(1)
	rows, err := c.GetPage(ctx, q, &req)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// GetField returns one column of the first row. An empty key is allowed only
// when the row has a single column.
func (c *Client) GetField(ctx context.Context, q *Query, key string) (any, error) {
	row, err := c.GetOne(ctx, q)
	if err != nil || row == nil {
		return nil, err
	}
	if key == "" {
		if len(row) != 1 {
			return nil, fmt.Errorf("%w: field key required for %d columns", models.ErrState, len(row))
		}
		for _, v := range row {
			return v, nil
		}
	}
	v, ok := row[key]
	if !ok {
		return nil, fmt.Errorf("%w: no column %q in result", models.ErrState, key)
	}
	return v, nil
}

// GetCount returns the number of rows q would produce.
func (c *Client) GetCount(ctx context.Context, q *Query) (int64, error) {
	sql, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	countSQL, err := mysql.BuildCountSQL(sql)
	if err != nil {
		return 0, err
	}
	v, err := c.GetField(ctx, New(countSQL), mysql.CountAlias)
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

// TableInfo fetches and decodes the DDL of table.
func (c *Client) TableInfo(ctx context.Context, table string) (*models.Table, error) {
	ddl, err := c.driver.GetDDL(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("get DDL of %s: %w", table, err)
	}
	return parser.Parse(ddl)
}

// ============================================
// WRITES
// ============================================

// Exec runs q. Write statements clear the cache.
func (c *Client) Exec(ctx context.Context, q *Query) ([]driver.Row, error) {
	sql, err := c.prepare(q)
	if err != nil {
		return nil, err
	}
	rows, err := c.execute(ctx, sql)
	if err != nil {
		return nil, err
	}
	if c.cache != nil && !mapping.IsReadOnlyStatement(sql) {
		if err := c.cache.Clear(ctx); err != nil {
			c.logger.Warn("cache clear failed", "error", err)
		}
	}
	return rows, nil
}

// Insert writes one row and returns the id generated by that statement.
// Tables without AUTO_INCREMENT report 0.
func (c *Client) Insert(ctx context.Context, table string, data map[string]any) (int64, error) {
	rows, err := c.Exec(ctx, New("").Insert().From(table).SetData(data))
	if err != nil {
		return 0, err
	}
	if len(rows) > 0 {
		if id, ok := rows[0]["inserted_id"]; ok {
			return toInt64(id)
		}
	}
	return c.driver.LastInsertID(ctx)
}

// Replace writes one row with REPLACE INTO and returns the affected count.
func (c *Client) Replace(ctx context.Context, table string, data map[string]any) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: no replace data for %s", models.ErrState, table)
	}
	return c.affected(c.Exec(ctx, New("").Replace().From(table).SetData(data)))
}

// Update writes data to the rows matched by where and returns the affected count.
// A positive rowLimit caps the rows touched; 0 leaves it unbounded.
func (c *Client) Update(ctx context.Context, table string, data map[string]any, where *ast.Tree, rowLimit int) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: no update data for %s", models.ErrState, table)
	}
	return c.affected(c.Exec(ctx, New("").Update().From(table).SetData(data).WhereGroup(ast.And, where).Limit(rowLimit)))
}

// Delete removes the rows matched by where and returns the affected count.
// A positive rowLimit caps the rows removed; 0 leaves it unbounded.
func (c *Client) Delete(ctx context.Context, table string, where *ast.Tree, rowLimit int) (int64, error) {
	return c.affected(c.Exec(ctx, New("").Delete().From(table).WhereGroup(ast.And, where).Limit(rowLimit)))
}

// Increase adds delta to a numeric column of the rows matched by where.
// A positive rowLimit caps the rows touched; 0 leaves it unbounded.
func (c *Client) Increase(ctx context.Context, table, field string, delta int64, where *ast.Tree, rowLimit int) (int64, error) {
	if rowLimit < 0 {
		return 0, fmt.Errorf("%w: negative limitation %d", models.ErrRange, rowLimit)
	}
	col := ast.EscapeIdentifier(field)
	sql := fmt.Sprintf("UPDATE %s SET %s = %s + %d%s", ast.EscapeIdentifier(table), col, col, delta, where.Render())
	if rowLimit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", rowLimit)
	}
	return c.affected(c.Exec(ctx, New(sql)))
}

// ============================================
// HELPERS
// ============================================

func (c *Client) prepare(q *Query) (string, error) {
	sql, err := q.ToSQL()
	if err != nil {
		return "", err
	}
	if c.checker != nil {
		if err := c.checker.Validate(sql); err != nil {
			return "", err
		}
	}
	return sql, nil
}

func (c *Client) execute(ctx context.Context, sql string) ([]driver.Row, error) {
	c.logger.Debug("execute", "sql", sql)
	rows, err := c.driver.Execute(ctx, sql)
	if err != nil {
		c.logger.Error("execute failed", "sql", sql, "error", err)
		return nil, err
	}
	return rows, nil
}

func (c *Client) affected(rows []driver.Row, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0]["rows_affected"])
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: unexpected count value %T", models.ErrState, v)
}

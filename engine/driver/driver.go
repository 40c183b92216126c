package driver

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/mapping"
)

// Row is one result row keyed by column name.
type Row = map[string]any

// Driver is the database collaborator the query layer consumes.
// Connection lifecycle, retries and transactions live behind it.
type Driver interface {
	GetDDL(ctx context.Context, table string) (string, error)
	Quote(value any) string
	Execute(ctx context.Context, sql string) ([]Row, error)
	LastInsertID(ctx context.Context) (int64, error)
}

// ============================================
// DATABASE/SQL IMPLEMENTATION
// ============================================

// SQLDriver implements Driver over a *sql.DB.
type SQLDriver struct {
	db     *sql.DB
	lastID atomic.Int64
}

// NewSQLDriver wraps an open database handle.
func NewSQLDriver(db *sql.DB) *SQLDriver {
	return &SQLDriver{db: db}
}

// Open opens a database handle with a registered database/sql driver and pings it.
func Open(ctx context.Context, driverName, dsn string) (*SQLDriver, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return NewSQLDriver(db), nil
}

// DB returns the wrapped handle.
func (d *SQLDriver) DB() *sql.DB {
	return d.db
}

// Close closes the wrapped handle.
func (d *SQLDriver) Close() error {
	return d.db.Close()
}

// GetDDL runs SHOW CREATE TABLE and returns its "Create Table" column.
func (d *SQLDriver) GetDDL(ctx context.Context, table string) (string, error) {
	rows, err := d.Execute(ctx, "SHOW CREATE TABLE "+ast.EscapeIdentifier(table))
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("no DDL returned for table %q", table)
	}
	ddl, ok := rows[0]["Create Table"].(string)
	if !ok {
		return "", fmt.Errorf("no Create Table column for %q", table)
	}
	return ddl, nil
}

// Quote formats a value as an escaped SQL literal.
func (d *SQLDriver) Quote(value any) string {
	return ast.QuoteLiteral(value)
}

// Execute runs sql. Row-returning statements yield rows; other statements yield
// a single row with rows_affected and inserted_id.
func (d *SQLDriver) Execute(ctx context.Context, query string) ([]Row, error) {
	if mapping.IsReadOnlyStatement(query) {
		rows, err := d.db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		defer rows.Close()
		return rowsToMaps(rows)
	}

	result, err := d.db.ExecContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	lastInsertID, err := result.LastInsertId()
	if err == nil {
		d.lastID.Store(lastInsertID)
	}

	return []Row{{
		"rows_affected": rowsAffected,
		"inserted_id":   lastInsertID,
	}}, nil
}

// LastInsertID returns the id reported by the most recent write through this driver,
// including 0 for statements that generate none. Concurrent callers should read
// inserted_id from their own Execute result instead.
func (d *SQLDriver) LastInsertID(ctx context.Context) (int64, error) {
	return d.lastID.Load(), nil
}

// ============================================
// HELPERS
// ============================================

func rowsToMaps(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []Row

	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

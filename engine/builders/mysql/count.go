package mysql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/reverse"
)

// CountAlias is the column holding the row count produced by BuildCountSQL.
const CountAlias = "__NUM_COUNT__"

var selectProjection = regexp.MustCompile(`(?is)^\s*SELECT\s.*?\sFROM\s`)

// BuildCountSQL rewrites a SELECT into a statement returning its row count.
// Statements with GROUP BY, DISTINCT, LIMIT, set operations or projected sub-queries
// are wrapped as a derived table; otherwise the projection is replaced.
func BuildCountSQL(sql string) (string, error) {
	sql = strings.TrimRight(strings.TrimSpace(sql), "; \t\r\n")
	shape, err := reverse.InspectSelect(sql)
	if err != nil {
		return "", fmt.Errorf("query resolve select seg fail: %w", err)
	}

	if shape.NeedsDerivedCount() || !selectProjection.MatchString(sql) {
		return "SELECT COUNT(*) AS " + CountAlias + " FROM (" + sql + ") AS cnt_", nil
	}
	return selectProjection.ReplaceAllLiteralString(sql, "SELECT COUNT(*) AS "+CountAlias+" FROM "), nil
}

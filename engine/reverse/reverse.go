package reverse

import (
	"fmt"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"

	"github.com/omniql-engine/sqlkit/engine/models"
)

// ============================================================================
// ERRORS
// ============================================================================

var (
	ErrEmptyQuery   = fmt.Errorf("%w: empty query", models.ErrParse)
	ErrNotSupported = fmt.Errorf("%w: statement not supported", models.ErrParse)
)

// ============================================================================
// MAIN INTERFACE
// ============================================================================

// parseOne parses sql with the TiDB MySQL grammar and returns its first statement.
func parseOne(sql string) (ast.StmtNode, error) {
	if sql == "" {
		return nil, ErrEmptyQuery
	}
	p := parser.New()
	stmts, _, err := p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	if len(stmts) == 0 {
		return nil, ErrEmptyQuery
	}
	return stmts[0], nil
}

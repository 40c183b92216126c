// Package sqlkit builds MySQL statements from fluent builder state, pages and
// counts them through an injected driver, and decodes SHOW CREATE TABLE output
// into typed attribute metadata.
package sqlkit

import (
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/engine/parser"
)

// ParseDDL decodes SHOW CREATE TABLE text into a table description.
func ParseDDL(ddl string) (*models.Table, error) {
	return parser.Parse(ddl)
}

// ParseDDLStrict is ParseDDL plus a full MySQL grammar check; a column the
// line decoder would skip becomes an error.
func ParseDDLStrict(ddl string) (*models.Table, error) {
	return parser.ParseStrict(ddl)
}

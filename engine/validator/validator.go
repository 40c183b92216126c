package validator

import (
	"fmt"

	"github.com/omniql-engine/sqlkit/mapping"
)

// Validator validates generated queries before execution
type Validator interface {
	Validate(query string) error
	ValidateWithDetails(query string) (*ValidationResult, error)
}

// ValidationResult contains detailed validation info
type ValidationResult struct {
	Valid      bool
	Error      string
	Suggestion string
	Position   int    // Character position of error
	NearText   string // Text near the error
}

// ForDialect returns the Validator for dialect. Every supported dialect shares the MySQL grammar.
func ForDialect(dialect string) (Validator, error) {
	if !mapping.IsSupportedDialect(dialect) {
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	return MySQL{}, nil
}

// MySQL is the Validator for the MySQL dialect.
type MySQL struct{}

func (MySQL) Validate(query string) error {
	return ValidateMySQL(query)
}

func (MySQL) ValidateWithDetails(query string) (*ValidationResult, error) {
	return ValidateMySQLWithDetails(query)
}

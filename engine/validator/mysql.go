package validator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/xwb1989/sqlparser"

	"github.com/omniql-engine/sqlkit/engine/models"
)

// "syntax error at position 23 near 'FORM'"
var positionPattern = regexp.MustCompile(`at position (\d+)(?: near '([^']*)')?`)

// ValidateMySQL validates MySQL SQL syntax
func ValidateMySQL(query string) error {
	if _, err := sqlparser.Parse(query); err != nil {
		return fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	return nil
}

// ValidateMySQLWithDetails returns detailed validation result
func ValidateMySQLWithDetails(query string) (*ValidationResult, error) {
	_, err := sqlparser.Parse(query)
	if err != nil {
		result := &ValidationResult{
			Valid: false,
			Error: err.Error(),
		}
		if m := positionPattern.FindStringSubmatch(err.Error()); m != nil {
			result.Position, _ = strconv.Atoi(m[1])
			result.NearText = m[2]
			if result.NearText != "" {
				result.Suggestion = fmt.Sprintf("check the statement near '%s'", result.NearText)
			}
		}
		return result, nil
	}

	return &ValidationResult{Valid: true}, nil
}

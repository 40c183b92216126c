package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/engine/reverse"
)

// ============================================================================
// SHOW CREATE TABLE DECODER
// ============================================================================

var (
	createTablePattern  = regexp.MustCompile("(?i)^CREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`([^`]+)`")
	tableCommentPattern = regexp.MustCompile(`(?i)\sCOMMENT\s*=\s*('(?:[^'\\]|\\.|'')*')`)
	primaryKeyPattern   = regexp.MustCompile("(?i)^PRIMARY\\s+KEY\\s*\\(`([^`]+)`\\)")
	uniqueKeyPattern    = regexp.MustCompile("(?i)^UNIQUE\\s+(?:KEY|INDEX)\\s*(?:`[^`]*`\\s*)?\\(`([^`]+)`\\)")
)

// Parse decodes the output of SHOW CREATE TABLE line by line.
//
// The first CREATE TABLE header names the table, the closing line's COMMENT='...'
// sets the table comment, every backticked line is a column, and single-column
// PRIMARY KEY / UNIQUE KEY lines flag previously decoded columns. Composite keys are
// not represented. Any line that cannot be decomposed fails the whole parse.
func Parse(ddl string) (*models.Table, error) {
	table := &models.Table{}

	for i, raw := range strings.Split(ddl, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := i + 1
		if line == "" {
			continue
		}

		if table.Name == "" {
			if m := createTablePattern.FindStringSubmatch(line); m != nil {
				table.Name = m[1]
				continue
			}
		}

		switch {
		case strings.HasPrefix(line, "`"):
			attr, err := parseColumnLine(line)
			if err != nil {
				return nil, lineError(lineNo, line, err)
			}
			table.Attributes = append(table.Attributes, attr)

		case primaryKeyPattern.MatchString(line):
			name := primaryKeyPattern.FindStringSubmatch(line)[1]
			if err := table.UpdateAttribute(name, func(a *models.Attribute) { a.IsPrimaryKey = true }); err != nil {
				return nil, lineError(lineNo, line, fmt.Errorf("primary key references unknown column %q", name))
			}

		case uniqueKeyPattern.MatchString(line):
			name := uniqueKeyPattern.FindStringSubmatch(line)[1]
			if err := table.UpdateAttribute(name, func(a *models.Attribute) { a.IsUnique = true }); err != nil {
				return nil, lineError(lineNo, line, fmt.Errorf("unique key references unknown column %q", name))
			}

		case strings.HasPrefix(line, ")") && table.Comment == "":
			if m := tableCommentPattern.FindStringSubmatch(line); m != nil {
				comment, err := unquote(m[1])
				if err != nil {
					return nil, lineError(lineNo, line, err)
				}
				table.Comment = comment
			}
		}
	}

	if table.Name == "" {
		return nil, &models.ParseError{Message: "no CREATE TABLE header found"}
	}
	return table, nil
}

// ParseColumn decodes a single column definition line, e.g.
// "`age` int(11) NOT NULL DEFAULT '0' COMMENT 'Age'".
func ParseColumn(line string) (*models.Attribute, error) {
	line = strings.TrimSpace(line)
	attr, err := parseColumnLine(line)
	if err != nil {
		return nil, lineError(0, line, err)
	}
	return attr, nil
}

// ParseStrict decodes ddl like Parse and cross-checks it against the MySQL grammar:
// the statement must be valid and declare exactly the decoded columns.
func ParseStrict(ddl string) (*models.Table, error) {
	table, err := Parse(ddl)
	if err != nil {
		return nil, err
	}
	shape, err := reverse.InspectCreateTable(ddl)
	if err != nil {
		return nil, err
	}

	if shape.Name != table.Name {
		return nil, &models.ParseError{
			Text:    table.Name,
			Message: fmt.Sprintf("decoded table name differs from statement table %q", shape.Name),
		}
	}
	if declared, decoded := shape.ColumnNames(), table.Names(); !slices.Equal(declared, decoded) {
		return nil, &models.ParseError{
			Text:    table.Name,
			Message: fmt.Sprintf("column set mismatch: decoded %v, statement declares %v", decoded, declared),
		}
	}
	return table, nil
}

// lineError attaches line info to err, keeping the error class of typed errors.
func lineError(lineNo int, line string, err error) error {
	var pe *models.ParseError
	if errors.As(err, &pe) {
		return &models.ParseError{Line: lineNo, Text: line, Message: pe.Message, Err: pe.Err}
	}
	return &models.ParseError{Line: lineNo, Text: line, Message: err.Error(), Err: models.ErrParse}
}

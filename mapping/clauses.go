package mapping

import "strings"

// JoinKeywords - join kind → SQL keyword
var JoinKeywords = map[string]string{
	"LEFT":  "LEFT JOIN",
	"RIGHT": "RIGHT JOIN",
	"INNER": "INNER JOIN",
}

// DirectiveDefinition defines a column directive in the trailing part of a DDL column line.
type DirectiveDefinition struct {
	Keyword  string // Keyword as printed by SHOW CREATE TABLE
	HasValue bool   // Whether a single token (or quoted literal) follows the keyword
}

// ColumnDirectives lists the directives the DDL decoder understands.
// Each is optional and order-insensitive within a column line.
var ColumnDirectives = map[string]DirectiveDefinition{
	"CHARACTER SET":  {Keyword: "CHARACTER SET", HasValue: true},
	"COLLATE":        {Keyword: "COLLATE", HasValue: true},
	"DEFAULT":        {Keyword: "DEFAULT", HasValue: true},
	"NOT NULL":       {Keyword: "NOT NULL"},
	"NULL":           {Keyword: "NULL"},
	"ON UPDATE":      {Keyword: "ON UPDATE", HasValue: true},
	"COMMENT":        {Keyword: "COMMENT", HasValue: true},
	"AUTO_INCREMENT": {Keyword: "AUTO_INCREMENT"},
	"PRIMARY KEY":    {Keyword: "PRIMARY KEY"},
	"UNIQUE KEY":     {Keyword: "UNIQUE KEY"},
	"UNIQUE":         {Keyword: "UNIQUE"},
}

// DirectivePrefixes - first word → possible second words of multi-word directives.
// Built from ColumnDirectives at init().
var DirectivePrefixes map[string][]string

func init() {
	DirectivePrefixes = make(map[string][]string)
	for kw := range ColumnDirectives {
		if first, second, ok := strings.Cut(kw, " "); ok {
			DirectivePrefixes[first] = append(DirectivePrefixes[first], second)
		}
	}
}

// CurrentTimestamp is the keyword marking system-clock defaults and update triggers.
const CurrentTimestamp = "CURRENT_TIMESTAMP"

package mapping

import "strings"

// OperationKeywords maps the leading keyword of a statement to its operation.
// Used to detect the operation of raw SQL text; anything else is "unknown".
var OperationKeywords = map[string]string{
	"SELECT":  "SELECT",
	"INSERT":  "INSERT",
	"UPDATE":  "UPDATE",
	"DELETE":  "DELETE",
	"REPLACE": "REPLACE",
}

// ReadOnlyKeywords are leading keywords of statements that return rows without writing.
var ReadOnlyKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"DESC":     true,
	"EXPLAIN":  true,
	"WITH":     true,
}

// LeadingKeyword returns the first whitespace-delimited token of sql, upper-cased.
func LeadingKeyword(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimRight(fields[0], "(;"))
}

// IsReadOnlyStatement reports whether sql starts with a row-returning keyword.
func IsReadOnlyStatement(sql string) bool {
	return ReadOnlyKeywords[LeadingKeyword(sql)]
}

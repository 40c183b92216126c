package mapping

import "strings"

// ListOperators take a parenthesized value list: `field OP ('a','b')`
var ListOperators = map[string]bool{
	"IN":     true,
	"NOT IN": true,
}

// NullOperators take no compare value: `field IS NULL`
var NullOperators = map[string]bool{
	"IS NULL":     true,
	"IS NOT NULL": true,
}

// Combinators - logical keywords joining WHERE nodes
var Combinators = map[string]string{
	"AND": "AND",
	"OR":  "OR",
}

// NormalizeOperator collapses whitespace and upper-cases keyword operators ("not  in" → "NOT IN").
func NormalizeOperator(op string) string {
	return strings.ToUpper(strings.Join(strings.Fields(op), " "))
}

// IsListOperator reports whether op expects a value list.
func IsListOperator(op string) bool {
	return ListOperators[NormalizeOperator(op)]
}

// IsNullOperator reports whether op is a value-less null check.
func IsNullOperator(op string) bool {
	return NullOperators[NormalizeOperator(op)]
}

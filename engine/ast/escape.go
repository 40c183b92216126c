package ast

import (
	"fmt"
	"strings"
	"time"
)

// EscapeIdentifier wraps a column or table name in backticks. Tokens that already
// contain a backtick, a dot, a space or a parenthesis, and "*", are returned unchanged.
func EscapeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "*" || strings.ContainsAny(s, "`. (") {
		return s
	}
	return "`" + s + "`"
}

// EscapeIdentifiers escapes each token.
func EscapeIdentifiers(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = EscapeIdentifier(s)
	}
	return out
}

var slashReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)

// EscapeString slash-escapes quotes, backslashes and NUL.
// This protects keywords, it is not a defense against injection.
func EscapeString(s string) string {
	return slashReplacer.Replace(s)
}

// QuoteLiteral formats a value as a quoted SQL literal. nil becomes NULL.
func QuoteLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + EscapeString(val) + "'"
	case []byte:
		return "'" + EscapeString(string(val)) + "'"
	case bool:
		if val {
			return "'1'"
		}
		return "'0'"
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05") + "'"
	case fmt.Stringer:
		return "'" + EscapeString(val.String()) + "'"
	default:
		return "'" + EscapeString(fmt.Sprint(val)) + "'"
	}
}

// GenerateLikes builds "f LIKE 'x' OR ..." for every field/pattern pair.
func GenerateLikes(fields, likes []string) string {
	parts := make([]string, 0, len(fields)*len(likes))
	for _, f := range fields {
		for _, like := range likes {
			parts = append(parts, EscapeIdentifier(f)+" LIKE '"+EscapeString(like)+"'")
		}
	}
	return strings.Join(parts, " OR ")
}

package mapping

// SupportedDialects lists the SQL dialects whose syntax the validator understands.
// TiDB speaks the MySQL wire dialect and shares its validator.
var SupportedDialects = []string{
	"MySQL",
	"TiDB",
}

// IsSupportedDialect checks if a dialect is supported
func IsSupportedDialect(dialect string) bool {
	for _, d := range SupportedDialects {
		if d == dialect {
			return true
		}
	}
	return false
}

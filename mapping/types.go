package mapping

import "strings"

// ColumnType describes how a MySQL column type keyword maps onto an attribute type.
type ColumnType struct {
	Attribute     string // Attribute type name (int, string, enum, ...)
	Scalar        bool   // Scalar types carry (length, precision) arguments
	DefaultLength int    // System-defined length when the DDL omits one (0 = none)
}

// ColumnTypes - MySQL column type keyword → attribute type
// Usage: ColumnTypes["varchar"].Attribute returns "string"
// Extending the dialect means extending this table, never the DDL parser.
var ColumnTypes = map[string]ColumnType{
	// String Types
	"varchar":    {Attribute: "string", Scalar: true},
	"char":       {Attribute: "string", Scalar: true},
	"json":       {Attribute: "json", Scalar: true},
	"longtext":   {Attribute: "string", Scalar: true, DefaultLength: 4294967295},
	"mediumtext": {Attribute: "string", Scalar: true, DefaultLength: 16777215},
	"text":       {Attribute: "string", Scalar: true, DefaultLength: 65535},
	"tinytext":   {Attribute: "string", Scalar: true, DefaultLength: 255},

	// Integer Types
	"tinyint":   {Attribute: "int", Scalar: true},
	"smallint":  {Attribute: "int", Scalar: true},
	"int":       {Attribute: "int", Scalar: true},
	"mediumint": {Attribute: "int", Scalar: true},
	"bigint":    {Attribute: "int", Scalar: true},

	// Fixed / Floating Point
	"decimal": {Attribute: "decimal", Scalar: true},
	"float":   {Attribute: "float", Scalar: true},
	"double":  {Attribute: "double", Scalar: true},

	// Date/Time Types
	"datetime":  {Attribute: "datetime"},
	"date":      {Attribute: "date"},
	"time":      {Attribute: "time"},
	"year":      {Attribute: "year"},
	"timestamp": {Attribute: "timestamp"},

	// Option Types
	"enum": {Attribute: "enum"},
	"set":  {Attribute: "set"},
}

// AttributeColumnTypes - attribute type → canonical MySQL column keyword.
// Built from ColumnTypes at init(); "bool" has no DDL keyword of its own and maps to tinyint.
var AttributeColumnTypes map[string]string

func init() {
	AttributeColumnTypes = map[string]string{"bool": "tinyint"}
	// canonical picks are fixed so the reverse map is deterministic
	canonical := []string{"varchar", "json", "int", "decimal", "float", "double",
		"datetime", "date", "time", "year", "timestamp", "enum", "set"}
	for _, keyword := range canonical {
		AttributeColumnTypes[ColumnTypes[keyword].Attribute] = keyword
	}
}

// LookupColumnType resolves a DDL type keyword case-insensitively.
func LookupColumnType(keyword string) (ColumnType, bool) {
	ct, ok := ColumnTypes[strings.ToLower(keyword)]
	return ct, ok
}

// GoTypes - attribute type → Go type used by generated models.
var GoTypes = map[string]string{
	"int":       "int64",
	"float":     "float64",
	"decimal":   "float64",
	"double":    "float64",
	"string":    "string",
	"json":      "string",
	"enum":      "string",
	"set":       "[]string",
	"bool":      "bool",
	"date":      "string",
	"time":      "string",
	"datetime":  "string",
	"timestamp": "string",
	"year":      "int",
}

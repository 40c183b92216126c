package reverse

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// ============================================================================
// TABLE → ENTITY NAMING
// ============================================================================

// TableToEntity: users → User, order_items → OrderItem, wp_posts → WpPost
func TableToEntity(table string) string {
	return toPascalCase(inflection.Singular(strings.ToLower(table)))
}

// FieldToProperty: created_at → CreatedAt, id → ID
func FieldToProperty(field string) string {
	return toPascalCase(field)
}

// ============================================================================
// STRING TRANSFORMATIONS
// ============================================================================

var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uuid": "UUID",
	"ip":   "IP",
	"json": "JSON",
	"api":  "API",
	"sql":  "SQL",
}

func toPascalCase(snake string) string {
	parts := strings.FieldsFunc(snake, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var sb strings.Builder
	for _, part := range parts {
		lower := strings.ToLower(part)
		if init, ok := initialisms[lower]; ok {
			sb.WriteString(init)
			continue
		}
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

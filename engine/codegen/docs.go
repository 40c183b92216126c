package codegen

import (
	"strings"

	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/mapping"
)

// GoType returns the Go type generated for an attribute type.
func GoType(t models.Type) string {
	if gt, ok := mapping.GoTypes[string(t)]; ok {
		return gt
	}
	return "any"
}

// PropertyDocs renders one comment line per attribute:
//
//	// @property[-read] <go type> <name> <alias> <description> [(auto update time)]
func PropertyDocs(attrs []*models.Attribute) string {
	var sb strings.Builder
	for _, a := range attrs {
		tag := "@property"
		if a.IsReadonly {
			tag += "-read"
		}
		parts := []string{tag, GoType(a.Type), a.Name, a.Alias, a.Description}
		if a.OnUpdateCurrentTimestamp {
			parts = append(parts, "(auto update time)")
		}
		sb.WriteString("// " + strings.Join(strings.Fields(strings.Join(parts, " ")), " ") + "\n")
	}
	return sb.String()
}

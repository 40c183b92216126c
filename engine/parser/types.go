package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omniql-engine/sqlkit/engine/lexer"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// TYPE RESOLUTION
// ============================================================================

// resolveType fills type, length, precision and options from a typedef.
// Unknown type keywords are a TypeResolution error.
func resolveType(attr *models.Attribute, typeName string, args []lexer.Token, comment string) error {
	ct, ok := mapping.LookupColumnType(typeName)
	if !ok {
		msg := fmt.Sprintf("unknown column type %q", typeName)
		if s := lexer.SuggestType(typeName); s != "" {
			msg += fmt.Sprintf(". Did you mean '%s'?", s)
		}
		return &models.ParseError{Text: typeName, Message: msg, Err: models.ErrTypeResolution}
	}
	attr.Type = models.Type(ct.Attribute)

	switch {
	case ct.Scalar:
		return resolveScalar(attr, ct, args)
	case attr.Type.HasOptions():
		return resolveOptions(attr, args, comment)
	}
	// temporal types carry no length; a fractional-seconds precision is ignored
	return nil
}

func resolveScalar(attr *models.Attribute, ct mapping.ColumnType, args []lexer.Token) error {
	var nums []int
	for _, tok := range args {
		switch tok.Type {
		case lexer.TOKEN_COMMA:
			continue
		case lexer.TOKEN_NUMBER:
			n, err := strconv.Atoi(tok.Value)
			if err != nil {
				return fmt.Errorf("%s length %q is not an integer", attr.Type, tok.Value)
			}
			nums = append(nums, n)
		default:
			return fmt.Errorf("%s arguments must be numeric, got %s", attr.Type, tok.Type)
		}
	}

	switch len(nums) {
	case 0:
		attr.Length = ct.DefaultLength
	case 1:
		attr.Length = nums[0]
	case 2:
		attr.Length, attr.Precision = nums[0], nums[1]
	default:
		return fmt.Errorf("%s takes at most (length,precision), got %d arguments", attr.Type, len(nums))
	}
	return nil
}

func resolveOptions(attr *models.Attribute, args []lexer.Token, comment string) error {
	var keys []string
	for _, tok := range args {
		switch tok.Type {
		case lexer.TOKEN_COMMA:
			continue
		case lexer.TOKEN_STRING:
			keys = append(keys, tok.Value)
		default:
			return fmt.Errorf("%s options must be quoted strings, got %s", attr.Type, tok.Type)
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("%s without options", attr.Type)
	}

	labels := optionLabels(comment, len(keys))
	attr.Options = make([]models.Option, len(keys))
	for i, k := range keys {
		label := k
		if labels != nil {
			label = labels[i]
		}
		attr.Options[i] = models.Option{Key: k, Label: label}
	}
	return nil
}

// optionLabels reads "Label(opt1,opt2,...)" from a column comment. It returns nil
// unless the label count equals the key count.
func optionLabels(comment string, count int) []string {
	m := commentLabelPattern.FindStringSubmatch(comment)
	if m == nil {
		return nil
	}
	labels := strings.Split(m[2], ",")
	if len(labels) != count {
		return nil
	}
	for i := range labels {
		labels[i] = strings.TrimSpace(labels[i])
	}
	return labels
}

package codegen

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// EXPORT SCHEMA - only non-default attribute fields are emitted
// ============================================================================

type TableSchema struct {
	Table      string            `yaml:"table" json:"table"`
	Comment    string            `yaml:"comment,omitempty" json:"comment,omitempty"`
	Attributes []AttributeSchema `yaml:"attributes" json:"attributes"`
}

type OptionSchema struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

type AttributeSchema struct {
	Name        string         `yaml:"name" json:"name"`
	Type        string         `yaml:"type" json:"type"`
	Column      string         `yaml:"column,omitempty" json:"column,omitempty"`
	Alias       string         `yaml:"alias,omitempty" json:"alias,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any            `yaml:"default,omitempty" json:"default,omitempty"`
	Length      int            `yaml:"length,omitempty" json:"length,omitempty"`
	Precision   int            `yaml:"precision,omitempty" json:"precision,omitempty"`
	Options     []OptionSchema `yaml:"options,omitempty" json:"options,omitempty"`
	Charset     string         `yaml:"charset,omitempty" json:"charset,omitempty"`
	Collate     string         `yaml:"collate,omitempty" json:"collate,omitempty"`
	PrimaryKey  bool           `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	Readonly    bool           `yaml:"readonly,omitempty" json:"readonly,omitempty"`
	Nullable    bool           `yaml:"nullable" json:"nullable"`
	Unique      bool           `yaml:"unique,omitempty" json:"unique,omitempty"`
	OnUpdate    string         `yaml:"on_update,omitempty" json:"on_update,omitempty"`
}

// Schema converts a parsed table into its export shape.
func Schema(table *models.Table) TableSchema {
	schema := TableSchema{Table: table.Name, Comment: table.Comment, Attributes: make([]AttributeSchema, 0, len(table.Attributes))}
	for _, a := range table.Attributes {
		as := AttributeSchema{
			Name:        a.Name,
			Type:        string(a.Type),
			Column:      mapping.AttributeColumnTypes[string(a.Type)],
			Alias:       a.Alias,
			Description: a.Description,
			Default:     defaultValue(a.Default),
			Length:      a.Length,
			Precision:   a.Precision,
			Charset:     a.Charset,
			Collate:     a.Collate,
			PrimaryKey:  a.IsPrimaryKey,
			Readonly:    a.IsReadonly,
			Nullable:    a.IsNullAllowed,
			Unique:      a.IsUnique,
		}
		for _, o := range a.Options {
			as.Options = append(as.Options, OptionSchema{Key: o.Key, Label: o.Label})
		}
		if a.OnUpdateCurrentTimestamp {
			as.OnUpdate = mapping.CurrentTimestamp
		}
		schema.Attributes = append(schema.Attributes, as)
	}
	return schema
}

func defaultValue(d models.Default) any {
	switch d.Kind {
	case models.DefaultLiteral:
		return d.Value
	case models.DefaultNull:
		return "NULL"
	case models.DefaultCurrentTimestamp:
		return mapping.CurrentTimestamp
	}
	return nil
}

// ToYAML renders the table schema as YAML.
func ToYAML(table *models.Table) ([]byte, error) {
	out, err := yaml.Marshal(Schema(table))
	if err != nil {
		return nil, fmt.Errorf("yaml export %s: %w", table.Name, err)
	}
	return out, nil
}

// ToJSON renders the table schema as indented JSON.
func ToJSON(table *models.Table) ([]byte, error) {
	out, err := json.MarshalIndent(Schema(table), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json export %s: %w", table.Name, err)
	}
	return out, nil
}

// ToStruct converts the table schema into a protobuf Struct.
func ToStruct(table *models.Table) (*structpb.Struct, error) {
	data, err := json.Marshal(Schema(table))
	if err != nil {
		return nil, fmt.Errorf("struct export %s: %w", table.Name, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("struct export %s: %w", table.Name, err)
	}
	return s, nil
}

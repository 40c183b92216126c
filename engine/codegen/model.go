package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/engine/reverse"
)

// Options controls model generation.
type Options struct {
	Package string // defaults to "models"
}

type modelField struct {
	Name string
	Type string
	Tag  string
}

type modelData struct {
	Package string
	Struct  string
	Table   string
	Comment string
	Docs    string
	Fields  []modelField
}

var modelTemplate = template.Must(template.New("model").Parse(`// Code generated by sqlkit. DO NOT EDIT.

package {{.Package}}

// {{.Struct}} maps table {{.Table}}.{{if .Comment}} {{.Comment}}{{end}}
//
{{.Docs}}type {{.Struct}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} ` + "`{{.Tag}}`" + `
{{- end}}
}

// TableName returns the backing table.
func ({{.Struct}}) TableName() string {
	return {{printf "%q" .Table}}
}
`))

// Model generates a gofmt'ed Go struct for table.
func Model(table *models.Table, opts Options) ([]byte, error) {
	if table == nil || table.Name == "" {
		return nil, fmt.Errorf("%w: model needs a named table", models.ErrState)
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = "models"
	}

	data := modelData{
		Package: pkg,
		Struct:  reverse.TableToEntity(table.Name),
		Table:   table.Name,
		Comment: strings.Join(strings.Fields(table.Comment), " "),
		Docs:    PropertyDocs(table.Attributes),
	}
	for _, a := range table.Attributes {
		if a.IsVirtual {
			continue
		}
		typ := GoType(a.Type)
		if a.IsNullAllowed && !a.IsPrimaryKey && !strings.HasPrefix(typ, "[]") {
			typ = "*" + typ
		}
		data.Fields = append(data.Fields, modelField{
			Name: reverse.FieldToProperty(a.Name),
			Type: typ,
			Tag:  fmt.Sprintf(`db:"%s" json:"%s"`, a.Name, a.Name),
		})
	}

	var buf bytes.Buffer
	if err := modelTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render model %s: %w", table.Name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format model %s: %w", table.Name, err)
	}
	return src, nil
}

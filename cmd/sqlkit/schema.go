package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqlkit/engine/codegen"
	"github.com/omniql-engine/sqlkit/internal/cli"
)

var (
	schemaFile   string
	schemaTable  string
	schemaFormat string
	schemaStrict bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Decode a CREATE TABLE statement into attribute metadata",
	Long: `Decode SHOW CREATE TABLE output into typed attribute metadata.

Formats: yaml (default), json, docs (one property line per column).`,
	Example: `  sqlkit schema --file users.sql
  sqlkit schema --table users --format json --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cmd.Context(), schemaFile, schemaTable, schemaStrict)
		if err != nil {
			return err
		}

		var out []byte
		switch format := resolveString(schemaFormat, cfg.Output.Format, "yaml"); format {
		case "yaml":
			out, err = codegen.ToYAML(table)
		case "json":
			out, err = codegen.ToJSON(table)
			out = append(out, '\n')
		case "docs":
			out = []byte(codegen.PropertyDocs(table.Attributes))
		default:
			return cli.ConfigError(fmt.Sprintf("unknown output format %q", format), nil)
		}
		if err != nil {
			return cli.GeneralError("rendering schema", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFile, "file", "f", "", "read DDL from file")
	schemaCmd.Flags().StringVarP(&schemaTable, "table", "t", "", "fetch DDL for table from the database")
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "", "output format: yaml, json, docs")
	schemaCmd.Flags().BoolVar(&schemaStrict, "strict", false, "also check the statement against the full MySQL grammar")
}

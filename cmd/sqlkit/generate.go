package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqlkit/engine/codegen"
	"github.com/omniql-engine/sqlkit/internal/cli"
)

var (
	generateFile    string
	generateTable   string
	generatePackage string
	generateOutput  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Go model for a table",
	Example: `  sqlkit generate --file users.sql --package models
  sqlkit generate --table users --output internal/models`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cmd.Context(), generateFile, generateTable, false)
		if err != nil {
			return err
		}

		src, err := codegen.Model(table, codegen.Options{
			Package: resolveString(generatePackage, cfg.Generate.Package),
		})
		if err != nil {
			return cli.GeneralError("generating model", err)
		}

		dir := resolveString(generateOutput, cfg.Generate.Output)
		if dir == "" {
			_, err = cmd.OutOrStdout().Write(src)
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cli.GeneralError("creating output directory", err)
		}
		path := filepath.Join(dir, table.Name+"_gen.go")
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return cli.GeneralError("writing model", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", path)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "read DDL from file")
	generateCmd.Flags().StringVarP(&generateTable, "table", "t", "", "fetch DDL for table from the database")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "package name (default from config: models)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (default stdout)")
}

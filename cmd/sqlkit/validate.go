package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqlkit/engine/validator"
	"github.com/omniql-engine/sqlkit/internal/cli"
)

var validateDialect string

var validateCmd = &cobra.Command{
	Use:     "validate <sql>...",
	Short:   "Check statements against the MySQL grammar",
	Example: `  sqlkit validate "SELECT id FROM users WHERE id = 1"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := validator.ForDialect(validateDialect)
		if err != nil {
			return cli.ConfigError("validate", err)
		}
		failed := 0
		for _, sql := range args {
			res, err := v.ValidateWithDetails(sql)
			if err != nil {
				return cli.GeneralError("validate", err)
			}
			if res.Valid {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", sql)
				}
				continue
			}
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n  %s\n", sql, res.Error)
			if res.Suggestion != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  hint: %s (position %d)\n", res.Suggestion, res.Position)
			}
		}
		if failed > 0 {
			return cli.GeneralError(fmt.Sprintf("%d of %d statements invalid", failed, len(args)), nil)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateDialect, "dialect", "MySQL", "SQL dialect (MySQL, TiDB)")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqlkit"
	"github.com/omniql-engine/sqlkit/engine/driver"
	"github.com/omniql-engine/sqlkit/engine/models"
	"github.com/omniql-engine/sqlkit/internal/cli"
)

var (
	cfg        *cli.Config
	configPath string
	logger     *slog.Logger

	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlkit",
	Short: "MySQL schema decoding and query tooling",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = cli.NewLogger(os.Stderr, verbose, quiet)
		slog.SetDefault(logger)

		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		if configPath != "" {
			logger.Debug("config loaded", "path", configPath)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

const (
	groupSchema  = "schema"
	groupQuery   = "query"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover sqlkit.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSchema, Title: "Schema:"},
		&cobra.Group{ID: groupQuery, Title: "Query:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	schemaCmd.GroupID = groupSchema
	generateCmd.GroupID = groupSchema
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(generateCmd)

	limitCmd.GroupID = groupQuery
	validateCmd.GroupID = groupQuery
	rootCmd.AddCommand(limitCmd)
	rootCmd.AddCommand(validateCmd)

	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty value: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadTable decodes DDL from file, or fetches it for table from the configured database.
func loadTable(ctx context.Context, file, table string, strict bool) (*models.Table, error) {
	var ddl string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, cli.GeneralError("reading DDL", err)
		}
		ddl = string(data)
	case table != "":
		dsn, err := cfg.DSN()
		if err != nil {
			return nil, cli.ConfigError("database settings", err)
		}
		d, err := driver.Open(ctx, "mysql", dsn)
		if err != nil {
			return nil, cli.DBConnectError("connecting to database", err)
		}
		defer d.Close()
		if ddl, err = d.GetDDL(ctx, table); err != nil {
			return nil, cli.DBConnectError(fmt.Sprintf("fetching DDL of %s", table), err)
		}
	default:
		return nil, cli.GeneralError("one of --file or --table is required", nil)
	}

	parse := sqlkit.ParseDDL
	if strict {
		parse = sqlkit.ParseDDLStrict
	}
	t, err := parse(ddl)
	if err != nil {
		return nil, cli.SchemaParseError("parsing DDL", err)
	}
	logger.Info("schema decoded", "table", t.Name, "columns", len(t.Attributes))
	return t, nil
}

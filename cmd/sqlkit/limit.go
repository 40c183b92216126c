package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqlkit/engine/limit"
	"github.com/omniql-engine/sqlkit/internal/cli"
)

var limitCmd = &cobra.Command{
	Use:   "limit <sql> <size|offset,size>",
	Short: "Narrow the LIMIT clause of a statement by a page request",
	Example: `  sqlkit limit "SELECT * FROM users LIMIT 10,20" 5
  sqlkit limit "SELECT * FROM users LIMIT 20" 5,10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parseRequest(args[1])
		if err != nil {
			return cli.GeneralError("page request", err)
		}
		sql, err := limit.Patch(args[0], req)
		if err != nil {
			return cli.GeneralError("patching limit", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), sql)
		return nil
	},
}

func parseRequest(s string) (limit.Request, error) {
	offset, size, paged := strings.Cut(s, ",")
	if !paged {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return limit.Request{}, fmt.Errorf("invalid size %q", s)
		}
		return limit.Size(n), nil
	}
	o, err := strconv.Atoi(strings.TrimSpace(offset))
	if err != nil {
		return limit.Request{}, fmt.Errorf("invalid offset %q", offset)
	}
	n, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		return limit.Request{}, fmt.Errorf("invalid size %q", size)
	}
	return limit.Page(o, n), nil
}

// Command sqlkit inspects MySQL table schemas and works with generated SQL.
//
// Commands:
//   - schema: decode SHOW CREATE TABLE output into attribute metadata
//   - generate: emit a Go model for a table
//   - limit: compose a page request with the LIMIT clause of a statement
//   - validate: check statements against the MySQL grammar
//
// Usage:
//
//	sqlkit [flags] <command>
//
// schema and generate read DDL from --file, or fetch it for --table from the
// database in sqlkit.yaml / SQLKIT_DATABASE_*.
package main

func main() {
	Execute()
}

// Package migrations embeds the goose SQL scripts for every supported dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql
var FS embed.FS

// Dir returns the script directory inside FS for a configured dialect.
func Dir(dialect string) string {
	if dialect == "mysql" {
		return "mysql"
	}
	return "sqlite"
}

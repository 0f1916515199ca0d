// Package migrations embeds the schema files applied by internal/migration.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

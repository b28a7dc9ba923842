// Package migrations embeds the schema migration files so they compile
// into the binary. One directory per dialect: the cascade rules are the
// same, the column types are not.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

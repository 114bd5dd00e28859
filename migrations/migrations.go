// Package migrations embeds the postgres schema files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// InitSchema is the first schema file
const InitSchema = "000001_init_schema.up.sql"

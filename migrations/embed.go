// Package migrations contains the embedded goose migrations for PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

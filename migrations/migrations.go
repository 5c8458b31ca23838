package migrations

import "embed"

// FS holds the SQL migrations for the postgres record store.
//
//go:embed *.sql
var FS embed.FS

// Package migrations embeds the SQL migration files so schema setup
// can run from the binary itself at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

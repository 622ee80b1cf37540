// Package migrations embeds the SQL schema migrations for the edit
// history store. Files are named NNNN_description.up.sql and applied in
// version order.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS

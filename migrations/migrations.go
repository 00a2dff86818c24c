// Package migrations embebe las migraciones SQL para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

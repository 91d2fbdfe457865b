// Package migrations содержит goose SQL миграции схемы game server.
package migrations

import "embed"

// FS — embedded SQL миграции.
//
//go:embed *.sql
var FS embed.FS

package migrations

import "embed"

// FS contains embedded SQLite migrations for high-score storage.
//
//go:embed *.sql
var FS embed.FS

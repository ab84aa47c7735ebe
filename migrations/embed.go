package migrations

import "embed"

// Files holds forward-only SQL migrations for the kv_entries store.
//
//go:embed *.sql
var Files embed.FS

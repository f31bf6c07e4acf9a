package db

import "embed"

// Migrations holds the versioned schema, read by cmd/migrate through iofs.
//
//go:embed migrations/*.sql
var Migrations embed.FS

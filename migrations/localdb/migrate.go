// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package localdb embeds and applies the schema migrations for the
// client-side local SQLite store, mirroring the server migrations
// package but with a single, fixed SQLite dialect.
package localdb

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations to the local client
// database. Intended to be called once at client startup, before the
// store is used by any other component.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

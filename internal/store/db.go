// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the client-side local persistence layer: an
// embedded SQLite database holding notes, attachment blobs, settings,
// encryption metadata, and sync metadata. The server never has visibility
// into this package — it is exercised entirely client-side.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/migrations/localdb"
)

// DB wraps the local SQLite connection pool, extending database/sql with
// the schema-migration helper used at client startup.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Open connects to the SQLite file at path (created if missing), applies
// pending schema migrations, and returns a ready-to-use [DB].
func Open(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if err := createFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "Open").Msg("error creating local database file")
		return nil, fmt.Errorf("error creating local database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		log.Err(err).Str("func", "Open").Msg("error opening local database")
		return nil, fmt.Errorf("error opening local database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "Open").Msg("error connecting to local database (ping)")
		return nil, err
	}

	// SQLite allows only one writer at a time; a single connection avoids
	// "database is locked" errors under concurrent goroutines.
	conn.SetMaxOpenConns(1)

	if err := localdb.Migrate(conn); err != nil {
		log.Err(err).Str("func", "Open").Msg("error applying local database migrations")
		return nil, fmt.Errorf("error applying local database migrations: %w", err)
	}

	log.Debug().Str("func", "Open").Msg("connected to local database successfully")

	return &DB{DB: conn, logger: log}, nil
}

func createFileIfNotExists(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating local database file: %w", err)
		}
		return f.Close()
	}
	return nil
}

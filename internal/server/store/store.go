// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/migrations"
)

// Open dispatches on the DATABASE_URL scheme and returns a ready-to-use
// ServerStore. An empty databaseURL, or one with a "sqlite://" scheme,
// opens (creating if necessary) a local SQLite file; a "postgres://" or
// "postgresql://" scheme connects to a Postgres cluster via pgx. Any other
// scheme returns ErrUnsupportedDatabaseURL.
func Open(ctx context.Context, databaseURL string, log *logger.Logger) (ServerStore, error) {
	if databaseURL == "" {
		databaseURL = "sqlite://jottery-server.db"
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("server store: parse DATABASE_URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "sqlite", "sqlite3", "":
		return openSQLite(ctx, u, log)
	case "postgres", "postgresql":
		return openPostgres(ctx, databaseURL, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, u.Scheme)
	}
}

func openSQLite(ctx context.Context, u *url.URL, log *logger.Logger) (ServerStore, error) {
	path := u.Opaque
	if path == "" {
		path = u.Host + u.Path
	}
	if path == "" {
		path = "jottery-server.db"
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("server store: open sqlite: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("server store: ping sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := migrations.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("server store: migrate sqlite: %w", err)
	}

	log.Info().Str("path", path).Msg("server store: sqlite backend ready")
	return &sqliteStore{db: conn, log: log}, nil
}

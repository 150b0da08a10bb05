// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/migrations"
)

// postgresStore is the Postgres-backed ServerStore, selected when
// DATABASE_URL uses a postgres:// scheme. Unlike the SQLite backend it
// relies on real row locking (SELECT ... FOR UPDATE inside a transaction)
// for optimistic-conflict detection rather than an in-process mutex, since
// multiple server processes may share one Postgres cluster.
type postgresStore struct {
	db  *sql.DB
	log *logger.Logger
}

func openPostgres(ctx context.Context, databaseURL string, log *logger.Logger) (ServerStore, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("server store: open postgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("server store: ping postgres: %w", err)
	}

	if err := migrations.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("server store: migrate postgres: %w", err)
	}

	log.Info().Msg("server store: postgres backend ready")
	return &postgresStore{db: conn, log: log}, nil
}

func (s *postgresStore) Clients() ClientRepository         { return &postgresClientRepository{db: s.db} }
func (s *postgresStore) Notes() NoteRepository             { return &postgresNoteRepository{db: s.db} }
func (s *postgresStore) Attachments() AttachmentRepository { return &postgresAttachmentRepository{db: s.db} }

func (s *postgresStore) Close() error { return s.db.Close() }

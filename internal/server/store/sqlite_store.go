// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"sync"

	"github.com/seesee/jottery/internal/logger"
)

// sqliteStore is the SQLite-backed ServerStore. SQLite has no row-level
// locking, so concurrent writers to the same note are serialized through
// an in-process keyed mutex (noteLocks) rather than a database primitive;
// this is sufficient because SetMaxOpenConns(1) already limits the process
// to a single writer at a time, making the lock mostly a fairness/timeout
// mechanism rather than a correctness one.
type sqliteStore struct {
	db  *sql.DB
	log *logger.Logger

	noteLocks keyedMutex
}

func (s *sqliteStore) Clients() ClientRepository         { return &sqliteClientRepository{db: s.db} }
func (s *sqliteStore) Notes() NoteRepository             { return &sqliteNoteRepository{db: s.db, locks: &s.noteLocks} }
func (s *sqliteStore) Attachments() AttachmentRepository { return &sqliteAttachmentRepository{db: s.db} }

func (s *sqliteStore) Close() error { return s.db.Close() }

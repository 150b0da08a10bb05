// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/seesee/jottery/models"
)

func newTestServerNoteRepo(t *testing.T) (*sqliteNoteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return &sqliteNoteRepository{db: db, locks: &keyedMutex{}}, mock, db
}

var serverNoteColumns = []string{
	"client_id", "id", "created_at", "modified_at", "content_ciphertext", "content_iv",
	"tags_ciphertext", "tags_iv", "pinned", "deleted", "deleted_at", "content_hash",
	"word_wrap", "syntax_language", "server_version", "server_modified_at",
}

func serverNoteRow(n models.ServerNote) *sqlmock.Rows {
	return sqlmock.NewRows(serverNoteColumns).AddRow(
		n.ClientID, n.ID, n.CreatedAt, n.ModifiedAt, n.Content.Ciphertext, n.Content.IV,
		n.Tags.Ciphertext, n.Tags.IV, n.Pinned, n.Deleted, n.DeletedAt, n.ContentHash,
		n.WordWrap, n.SyntaxLanguage, n.ServerVersion, n.ServerModifiedAt)
}

func sampleServerNote() models.ServerNote {
	now := time.Now().UTC().Truncate(time.Second)
	return models.ServerNote{
		ClientID:   "client-1",
		ID:         "note-1",
		CreatedAt:  now,
		ModifiedAt: now,
		Content:    models.Envelope{Ciphertext: "cipher", IV: "iv"},
		Tags:       models.Envelope{Ciphertext: "tagscipher", IV: "tagsiv"},
	}
}

func TestSqliteNoteRepository_Upsert_InsertsNewNote(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO server_notes").WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Upsert(context.Background(), sampleServerNote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ServerVersion != 1 {
		t.Errorf("ServerVersion = %d, want 1", got.ServerVersion)
	}
}

func TestSqliteNoteRepository_Upsert_NoopOnIdenticalResend(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	stored := sampleServerNote()
	stored.ServerVersion = 2
	stored.ServerModifiedAt = stored.ModifiedAt.Add(time.Second)
	mock.ExpectQuery("SELECT").WillReturnRows(serverNoteRow(stored))

	resend := sampleServerNote() // same ModifiedAt as stored
	got, err := repo.Upsert(context.Background(), resend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ServerVersion != 2 {
		t.Errorf("ServerVersion = %d, want unchanged 2", got.ServerVersion)
	}
}

func TestSqliteNoteRepository_Upsert_RejectsStaleModifiedAt(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	stored := sampleServerNote()
	stored.ServerVersion = 5
	stored.ServerModifiedAt = stored.ModifiedAt.Add(time.Hour)
	mock.ExpectQuery("SELECT").WillReturnRows(serverNoteRow(stored))

	stale := sampleServerNote()
	stale.ModifiedAt = stored.ServerModifiedAt.Add(-time.Minute) // before stored.ServerModifiedAt

	_, err := repo.Upsert(context.Background(), stale)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestSqliteNoteRepository_Upsert_UpdatesExistingNote(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	stored := sampleServerNote()
	stored.ServerVersion = 2
	stored.ServerModifiedAt = stored.ModifiedAt.Add(time.Second)
	mock.ExpectQuery("SELECT").WillReturnRows(serverNoteRow(stored))
	mock.ExpectExec("UPDATE server_notes").WillReturnResult(sqlmock.NewResult(0, 1))

	incoming := sampleServerNote()
	incoming.ModifiedAt = stored.ServerModifiedAt.Add(time.Minute)

	got, err := repo.Upsert(context.Background(), incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ServerVersion != 3 {
		t.Errorf("ServerVersion = %d, want 3", got.ServerVersion)
	}
}

func TestSqliteNoteRepository_Delete_HardDeletes(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM server_notes").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "client-1", "note-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSqliteNoteRepository_Delete_NotFound(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM server_notes").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "client-1", "missing")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestSqliteNoteRepository_Get_NotFound(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "client-1", "missing")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestSqliteNoteRepository_Count(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(4)
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(rows)

	n, err := repo.Count(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}
}

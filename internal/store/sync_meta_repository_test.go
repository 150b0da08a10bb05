// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/models"
)

func newTestSyncMetaRepo(t *testing.T) (*syncMetaRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := &syncMetaRepository{db: &DB{DB: db, logger: logger.Nop()}}
	return repo, mock, db
}

func TestSyncMetaRepository_GetGlobal_NoRowMeansAbsentKey(t *testing.T) {
	repo, mock, db := newTestSyncMetaRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	meta, err := repo.GetGlobal(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.APIKey.Kind != models.APIKeyAbsent {
		t.Errorf("APIKey.Kind = %v, want APIKeyAbsent", meta.APIKey.Kind)
	}
}

func TestSyncMetaRepository_GetGlobal_EncryptedKeyRoundTrip(t *testing.T) {
	repo, mock, db := newTestSyncMetaRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"last_sync_at", "last_push_attempt_at", "last_pull_attempt_at",
		"api_key_kind", "api_key_encrypted_ciphertext", "api_key_encrypted_iv", "api_key_plaintext",
		"client_id", "sync_enabled", "sync_endpoint", "auto_sync_interval_min"}).
		AddRow(nil, nil, nil, int(models.APIKeyEncrypted), "cipher", "iv", nil,
			"client-1", true, "https://sync.example", 15)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	meta, err := repo.GetGlobal(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.APIKey.Kind != models.APIKeyEncrypted {
		t.Errorf("APIKey.Kind = %v, want APIKeyEncrypted", meta.APIKey.Kind)
	}
	if meta.APIKey.Encrypted.Ciphertext != "cipher" {
		t.Errorf("APIKey.Encrypted.Ciphertext = %q, want cipher", meta.APIKey.Encrypted.Ciphertext)
	}
	if meta.ClientID != "client-1" {
		t.Errorf("ClientID = %q, want client-1", meta.ClientID)
	}
}

func TestSyncMetaRepository_SaveGlobal(t *testing.T) {
	repo, mock, db := newTestSyncMetaRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_meta_global").WillReturnResult(sqlmock.NewResult(0, 1))

	meta := models.GlobalSyncMeta{
		ClientID: "client-1",
		APIKey:   models.APIKeyState{Kind: models.APIKeyPendingImport, Plaintext: "raw-key"},
	}
	if err := repo.SaveGlobal(context.Background(), meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncMetaRepository_ListPending(t *testing.T) {
	repo, mock, db := newTestSyncMetaRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"note_id", "last_synced_at", "content_hash_at_sync",
		"server_version_at_sync", "status", "error_message"}).
		AddRow("note-1", nil, nil, 0, "pending", nil).
		AddRow("note-2", nil, nil, 0, "pending", nil)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	metas, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len(metas) = %d, want 2", len(metas))
	}
	for _, m := range metas {
		if m.Status != models.StatusPending {
			t.Errorf("Status = %v, want StatusPending", m.Status)
		}
	}
}

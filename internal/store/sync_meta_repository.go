// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/seesee/jottery/models"
)

type syncMetaRepository struct {
	db *DB
}

// NewSyncMetaRepository constructs a [SyncMetaRepository] backed by the
// local SQLite database.
func NewSyncMetaRepository(db *DB) SyncMetaRepository {
	return &syncMetaRepository{db: db}
}

func (r *syncMetaRepository) GetGlobal(ctx context.Context) (models.GlobalSyncMeta, error) {
	query, args, err := sq.Select("last_sync_at", "last_push_attempt_at", "last_pull_attempt_at",
		"api_key_kind", "api_key_encrypted_ciphertext", "api_key_encrypted_iv", "api_key_plaintext",
		"client_id", "sync_enabled", "sync_endpoint", "auto_sync_interval_min").
		From("sync_meta_global").
		Where(sq.Eq{"id": 1}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return models.GlobalSyncMeta{}, fmt.Errorf("store: build get global sync meta query: %w", err)
	}

	var meta models.GlobalSyncMeta
	var kind int
	var encCiphertext, encIV, plaintext sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&meta.LastSyncAt, &meta.LastPushAttemptAt, &meta.LastPullAttemptAt,
		&kind, &encCiphertext, &encIV, &plaintext,
		&meta.ClientID, &meta.SyncEnabled, &meta.SyncEndpoint, &meta.AutoSyncIntervalMin)
	if errors.Is(err, sql.ErrNoRows) {
		// No row yet means sync has never been configured: return the
		// zero value with an absent API key rather than an error, since
		// this is a normal state for a freshly initialized store.
		return models.GlobalSyncMeta{APIKey: models.APIKeyState{Kind: models.APIKeyAbsent}}, nil
	}
	if err != nil {
		return models.GlobalSyncMeta{}, fmt.Errorf("store: get global sync meta: %w", err)
	}

	meta.APIKey = models.APIKeyState{
		Kind:      models.APIKeyKind(kind),
		Encrypted: models.Envelope{Ciphertext: encCiphertext.String, IV: encIV.String},
		Plaintext: plaintext.String,
	}
	return meta, nil
}

func (r *syncMetaRepository) SaveGlobal(ctx context.Context, meta models.GlobalSyncMeta) error {
	query, args, err := sq.Insert("sync_meta_global").
		Columns("id", "last_sync_at", "last_push_attempt_at", "last_pull_attempt_at",
			"api_key_kind", "api_key_encrypted_ciphertext", "api_key_encrypted_iv", "api_key_plaintext",
			"client_id", "sync_enabled", "sync_endpoint", "auto_sync_interval_min").
		Values(1, meta.LastSyncAt, meta.LastPushAttemptAt, meta.LastPullAttemptAt,
			int(meta.APIKey.Kind), nullableString(meta.APIKey.Encrypted.Ciphertext),
			nullableString(meta.APIKey.Encrypted.IV), nullableString(meta.APIKey.Plaintext),
			meta.ClientID, meta.SyncEnabled, meta.SyncEndpoint, meta.AutoSyncIntervalMin).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			last_sync_at = excluded.last_sync_at,
			last_push_attempt_at = excluded.last_push_attempt_at,
			last_pull_attempt_at = excluded.last_pull_attempt_at,
			api_key_kind = excluded.api_key_kind,
			api_key_encrypted_ciphertext = excluded.api_key_encrypted_ciphertext,
			api_key_encrypted_iv = excluded.api_key_encrypted_iv,
			api_key_plaintext = excluded.api_key_plaintext,
			client_id = excluded.client_id,
			sync_enabled = excluded.sync_enabled,
			sync_endpoint = excluded.sync_endpoint,
			auto_sync_interval_min = excluded.auto_sync_interval_min`).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build save global sync meta query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: save global sync meta: %w", err)
	}
	return nil
}

func (r *syncMetaRepository) GetNote(ctx context.Context, noteID string) (models.NoteSyncMeta, error) {
	query, args, err := selectNoteSyncMeta().Where(sq.Eq{"note_id": noteID}).ToSql()
	if err != nil {
		return models.NoteSyncMeta{}, fmt.Errorf("store: build get note sync meta query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	meta, err := scanNoteSyncMeta(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NoteSyncMeta{}, ErrNoteNotFound
	}
	if err != nil {
		return models.NoteSyncMeta{}, fmt.Errorf("store: get note sync meta: %w", err)
	}
	return meta, nil
}

func (r *syncMetaRepository) SaveNote(ctx context.Context, meta models.NoteSyncMeta) error {
	query, args, err := sq.Insert("sync_meta_note").
		Columns("note_id", "last_synced_at", "content_hash_at_sync",
			"server_version_at_sync", "status", "error_message").
		Values(meta.NoteID, meta.LastSyncedAt, meta.ContentHashAtSync,
			meta.ServerVersionAtSync, string(meta.Status), meta.ErrorMessage).
		Suffix(`ON CONFLICT(note_id) DO UPDATE SET
			last_synced_at = excluded.last_synced_at,
			content_hash_at_sync = excluded.content_hash_at_sync,
			server_version_at_sync = excluded.server_version_at_sync,
			status = excluded.status,
			error_message = excluded.error_message`).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build save note sync meta query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: save note sync meta: %w", err)
	}
	return nil
}

func (r *syncMetaRepository) DeleteNote(ctx context.Context, noteID string) error {
	query, args, err := sq.Delete("sync_meta_note").
		Where(sq.Eq{"note_id": noteID}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("store: build delete note sync meta query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: delete note sync meta: %w", err)
	}
	return nil
}

func (r *syncMetaRepository) ListPending(ctx context.Context) ([]models.NoteSyncMeta, error) {
	query, args, err := selectNoteSyncMeta().
		Where(sq.Eq{"status": string(models.StatusPending)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: build list pending sync meta query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list pending sync meta: %w", err)
	}
	defer rows.Close()

	var metas []models.NoteSyncMeta
	for rows.Next() {
		m, err := scanNoteSyncMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan note sync meta row: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

func selectNoteSyncMeta() sq.SelectBuilder {
	return sq.Select("note_id", "last_synced_at", "content_hash_at_sync",
		"server_version_at_sync", "status", "error_message").
		From("sync_meta_note").
		PlaceholderFormat(sq.Question)
}

func scanNoteSyncMeta(row rowScanner) (models.NoteSyncMeta, error) {
	var m models.NoteSyncMeta
	var status string
	err := row.Scan(&m.NoteID, &m.LastSyncedAt, &m.ContentHashAtSync,
		&m.ServerVersionAtSync, &status, &m.ErrorMessage)
	if err != nil {
		return models.NoteSyncMeta{}, err
	}
	m.Status = models.SyncStatus(status)
	return m, nil
}

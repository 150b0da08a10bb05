// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/seesee/jottery/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository persists encrypted notes. It never sees plaintext: the
// Content and Tags envelopes it stores and returns are exactly what the
// note service hands it.
type NoteRepository interface {
	// Create inserts a new note row.
	Create(ctx context.Context, note models.Note) error

	// Get retrieves a single note by ID, including soft-deleted ones.
	Get(ctx context.Context, id string) (models.Note, error)

	// List returns every note matching includeDeleted, ordered as stored;
	// callers apply sort order and tag filtering in-memory after decrypt.
	List(ctx context.Context, includeDeleted bool) ([]models.Note, error)

	// Update overwrites an existing note's mutable fields. The caller must
	// have already incremented Version and recomputed ModifiedAt.
	Update(ctx context.Context, note models.Note) error

	// SoftDelete marks a note deleted at the given timestamp without
	// removing its row.
	SoftDelete(ctx context.Context, id string, deletedAt, modifiedAt time.Time) error

	// Restore clears a note's deleted flag and DeletedAt.
	Restore(ctx context.Context, id string, modifiedAt time.Time) error

	// PurgeDeletedBefore permanently removes notes soft-deleted before
	// cutoff, returning the count removed.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Delete permanently removes a single note regardless of its deleted
	// flag.
	Delete(ctx context.Context, id string) error
}

// AttachmentRepository persists encrypted attachment blobs, keyed by note.
type AttachmentRepository interface {
	Save(ctx context.Context, noteID string, blob models.AttachmentBlob) error
	Get(ctx context.Context, id string) (models.AttachmentBlob, error)
	ListByNote(ctx context.Context, noteID string) ([]models.AttachmentBlob, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists arbitrary client-local key/value settings
// (e.g. auto-lock timeout, sort order preference).
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// EncryptionMetaRepository persists the single, immutable-after-write
// [models.EncryptionMetadata] record.
type EncryptionMetaRepository interface {
	Save(ctx context.Context, meta models.EncryptionMetadata) error
	Get(ctx context.Context) (models.EncryptionMetadata, error)
}

// SyncMetaRepository persists global and per-note sync bookkeeping.
type SyncMetaRepository interface {
	GetGlobal(ctx context.Context) (models.GlobalSyncMeta, error)
	SaveGlobal(ctx context.Context, meta models.GlobalSyncMeta) error

	GetNote(ctx context.Context, noteID string) (models.NoteSyncMeta, error)
	SaveNote(ctx context.Context, meta models.NoteSyncMeta) error
	DeleteNote(ctx context.Context, noteID string) error
	ListPending(ctx context.Context) ([]models.NoteSyncMeta, error)
}

// Repositories aggregates every local-store repository, constructed once
// at client startup and threaded through the service layer.
type Repositories struct {
	Notes          NoteRepository
	Attachments    AttachmentRepository
	Settings       SettingsRepository
	EncryptionMeta EncryptionMetaRepository
	Sync           SyncMetaRepository
}

// NewRepositories constructs every repository over the same [DB] handle.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Notes:          NewNoteRepository(db),
		Attachments:    NewAttachmentRepository(db),
		Settings:       NewSettingsRepository(db),
		EncryptionMeta: NewEncryptionMetaRepository(db),
		Sync:           NewSyncMetaRepository(db),
	}
}

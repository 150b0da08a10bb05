// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/seesee/jottery/models"
)

// ClientRepository manages registered-device records.
type ClientRepository interface {
	// Create persists a new registered client. Returns ErrDuplicateAPIKey
	// if c.APIKeyHash collides with an existing row.
	Create(ctx context.Context, c models.RegisteredClient) error

	// FindByAPIKeyHash looks up the client owning the given SHA-256 bearer
	// key hash. Returns ErrClientNotFound if none matches or the client
	// has been deactivated.
	FindByAPIKeyHash(ctx context.Context, hash string) (models.RegisteredClient, error)

	// Get returns the client record by ID. Returns ErrClientNotFound if
	// none matches.
	Get(ctx context.Context, clientID string) (models.RegisteredClient, error)

	// UpdateLastSeen stamps LastSeenAt for the given client.
	UpdateLastSeen(ctx context.Context, clientID string, seenAt time.Time) error
}

// NoteRepository manages per-client server notes with optimistic locking.
type NoteRepository interface {
	// Upsert inserts or updates a note using last-write-wins arbitrated by
	// timestamp rather than a version token: a note with no existing row
	// is inserted at ServerVersion 1; a note whose ModifiedAt exactly
	// matches the stored row's ModifiedAt is treated as an idempotent
	// resend and returns the stored row unchanged; a note whose
	// ModifiedAt is strictly after the stored row's ServerModifiedAt is
	// accepted, bumping ServerVersion and stamping a fresh
	// ServerModifiedAt; anything else is rejected with ErrVersionConflict
	// (the server has already recorded a write the caller hasn't seen).
	// Returns ErrLockTimeout if the per-note lock could not be acquired.
	Upsert(ctx context.Context, note models.ServerNote) (models.ServerNote, error)

	// Get returns a single note. Returns ErrNoteNotFound if absent.
	Get(ctx context.Context, clientID, noteID string) (models.ServerNote, error)

	// ListSince returns every note for clientID with ServerModifiedAt
	// strictly after since (or every note, if since is nil), including
	// soft-deleted ones — callers split live vs deleted.
	ListSince(ctx context.Context, clientID string, since *time.Time) ([]models.ServerNote, error)

	// Delete hard-deletes a note row. Returns ErrNoteNotFound if absent,
	// or ErrLockTimeout if the per-note lock could not be acquired.
	Delete(ctx context.Context, clientID, noteID string) error

	// Count returns the number of non-deleted notes for clientID.
	Count(ctx context.Context, clientID string) (int, error)

	// LastModified returns the most recent ServerModifiedAt across all of
	// clientID's notes, or nil if the client has no notes.
	LastModified(ctx context.Context, clientID string) (*time.Time, error)
}

// AttachmentRepository manages per-client attachment blobs.
type AttachmentRepository interface {
	Save(ctx context.Context, clientID string, att models.AttachmentBlob) error
	Get(ctx context.Context, clientID, attachmentID string) (models.AttachmentBlob, error)
	ListByNote(ctx context.Context, clientID, noteID string) ([]models.AttachmentBlob, error)
	Delete(ctx context.Context, clientID, attachmentID string) error
}

// ServerStore aggregates the repositories a backend must provide, plus a
// Close for releasing the underlying connection pool.
type ServerStore interface {
	Clients() ClientRepository
	Notes() NoteRepository
	Attachments() AttachmentRepository
	Close() error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/seesee/jottery/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientNoteService is the client-side encrypt-on-write / decrypt-on-read
// orchestration layer. It is the only component permitted to call
// [github.com/seesee/jottery/internal/crypto] against note content: every
// other layer sees either ciphertext ([models.Note]) or cleartext
// ([models.DecryptedNote]), never both at once.
type ClientNoteService interface {
	// Create encrypts content and tags under the unlocked master key and
	// persists a new note.
	Create(ctx context.Context, content string, tags []string) (models.DecryptedNote, error)

	// Get decrypts and returns a single note by ID.
	Get(ctx context.Context, id string) (models.DecryptedNote, error)

	// List decrypts and returns every note matching includeDeleted,
	// pinned-first then ordered by order.
	List(ctx context.Context, includeDeleted bool, order models.SortOrder) ([]models.DecryptedNote, error)

	// Update applies a partial update — re-encrypting content and/or tags,
	// replacing pinned/wordWrap/syntaxLanguage, and/or replacing the
	// attachment set — bumping Version and ModifiedAt. A nil field in
	// update leaves the corresponding aspect of the note unchanged. When
	// update.Attachments is non-nil, any attachment present on the stored
	// note but absent from the new set is garbage-collected: its blob and
	// thumbnail ciphertext are deleted from local storage.
	Update(ctx context.Context, id string, update models.NoteUpdate) (models.DecryptedNote, error)

	// AddAttachment encrypts fileName, mimeType, and data under the
	// unlocked master key, stores the resulting blob, and appends a
	// reference to the given note. thumbnail, if non-nil, is stored and
	// encrypted alongside the blob; thumbnail generation itself is out of
	// scope for this service.
	AddAttachment(ctx context.Context, noteID, fileName, mimeType string, data, thumbnail []byte) (models.DecryptedNote, error)

	// TogglePin flips a note's Pinned flag.
	TogglePin(ctx context.Context, id string) (models.DecryptedNote, error)

	// SoftDelete marks a note deleted without removing it or its
	// attachments.
	SoftDelete(ctx context.Context, id string) error

	// Restore clears a note's deleted flag.
	Restore(ctx context.Context, id string) error

	// PermanentDelete removes a note's attachment blobs, sync metadata,
	// and row, in that order.
	PermanentDelete(ctx context.Context, id string) error

	// PurgeOld permanently removes every note soft-deleted before cutoff,
	// returning the count removed.
	PurgeOld(ctx context.Context, cutoff time.Time) (int, error)
}

// ClientSyncService orchestrates bidirectional synchronisation between the
// local store and the sync server: building a plan from pending local
// changes, pushing them, and pulling server changes with a last-write-wins
// merge on ModifiedAt (ties keep the local copy).
type ClientSyncService interface {
	// FullSync runs one complete sync round: build plan, push, pull,
	// merge. Serialized by a single in-flight flag — a FullSync already
	// running causes a concurrent call to return ErrSyncInProgress.
	FullSync(ctx context.Context) error

	// ExecutePlan pushes plan.ToPush and pulls everything modified since
	// plan.LastSyncAt, merging pulled notes into the local store.
	ExecutePlan(ctx context.Context, plan models.SyncPlan) error
}

// ClientSyncJob is the background ticker that periodically invokes
// ClientSyncService.FullSync while auto-sync is enabled.
type ClientSyncJob interface {
	// Start launches (or restarts) the ticker at the given interval. A
	// non-positive interval defaults to 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the ticker and blocks until its goroutine exits. Safe
	// to call when not running.
	Stop()
}

// ClientPairingService manages this device's relationship with a sync
// server: first-time registration, and exporting/importing the bearer
// credential so a second device can join the same note store without the
// server ever seeing a plaintext password.
type ClientPairingService interface {
	// Register registers this device with the sync server at endpoint,
	// encrypts the returned bearer key under the unlocked master key, and
	// persists it to the local global sync metadata with sync enabled.
	// Returns a [models.CredentialExport] suitable for seeding a second
	// device. Returns [ErrAlreadyRegistered] if a bearer key is already
	// stored.
	Register(ctx context.Context, endpoint, deviceName, deviceType string) (models.CredentialExport, error)

	// ImportCredential seeds a brand-new local store from a
	// [models.CredentialExport] produced by Register on another device:
	// it restores the shared encryption salt, derives the master key from
	// password against it, and persists the encrypted bearer key and sync
	// endpoint. Returns [store.ErrEncryptionMetadataExists] (wrapped) if
	// this store already has encryption metadata; that metadata is not
	// overwritten.
	ImportCredential(ctx context.Context, export models.CredentialExport, password string) error

	// ExportCredential re-derives a [models.CredentialExport] from the
	// already-registered local state, for re-pairing an additional
	// device. Returns [ErrNotRegistered] if this device has no bearer key
	// yet.
	ExportCredential(ctx context.Context) (models.CredentialExport, error)
}

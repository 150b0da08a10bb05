// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrClientNotFound is returned when no registered client matches the
	// given client ID or API key hash.
	ErrClientNotFound = errors.New("server store: client not found")

	// ErrDuplicateAPIKey is returned when a client registration collides
	// with an already-registered API key hash (astronomically unlikely,
	// but the unique constraint is enforced at the schema level regardless).
	ErrDuplicateAPIKey = errors.New("server store: duplicate api key hash")

	// ErrNoteNotFound is returned when no server note matches the given
	// (clientID, noteID) pair.
	ErrNoteNotFound = errors.New("server store: note not found")

	// ErrVersionConflict is returned by Upsert when the incoming note's
	// ModifiedAt does not exceed the stored row's ServerModifiedAt: the
	// server has already recorded a write the caller hasn't seen.
	ErrVersionConflict = errors.New("server store: version conflict")

	// ErrLockTimeout is returned when a write could not acquire its
	// per-note lock within the bounded wait window.
	ErrLockTimeout = errors.New("server store: lock acquisition timed out")

	// ErrAttachmentNotFound is returned when no attachment matches the
	// given (clientID, attachmentID) pair.
	ErrAttachmentNotFound = errors.New("server store: attachment not found")

	// ErrUnsupportedDatabaseURL is returned by Open when DATABASE_URL uses
	// a scheme neither backend understands.
	ErrUnsupportedDatabaseURL = errors.New("server store: unsupported DATABASE_URL scheme")
)

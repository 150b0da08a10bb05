// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrNoteNotFound is returned when a query or update targets a note ID
	// that does not exist in the local database.
	ErrNoteNotFound = errors.New("store: note not found")

	// ErrAttachmentNotFound is returned when a query targets an attachment
	// ID that does not exist.
	ErrAttachmentNotFound = errors.New("store: attachment not found")

	// ErrEncryptionMetadataNotFound is returned when no encryption
	// metadata row has been written yet, meaning the store has never been
	// initialized.
	ErrEncryptionMetadataNotFound = errors.New("store: encryption metadata not found")

	// ErrEncryptionMetadataExists is returned by EncryptionMetaRepository.Save
	// when a row already exists; the metadata row is immutable once
	// written.
	ErrEncryptionMetadataExists = errors.New("store: encryption metadata already exists")

	// ErrSettingNotFound is returned when a requested settings key has no
	// stored value.
	ErrSettingNotFound = errors.New("store: setting not found")
)

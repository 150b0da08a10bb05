// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	// ErrUnsupportedType is returned when a value of an unsupported type
	// is passed to a validator that cannot handle it.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownField is returned when a field name provided for validation
	// does not match any known or expected field.
	ErrUnknownField = errors.New("unknown field for validation")

	// ErrInvalidNoteID is returned when a note's ID is missing.
	ErrInvalidNoteID = errors.New("invalid note id")

	// ErrEmptyContent is returned when a note's encrypted content envelope
	// carries no ciphertext.
	ErrEmptyContent = errors.New("content envelope is empty")

	// ErrInvalidVersion is returned when a note's version counter is not a
	// positive integer.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrEmptyNotes is returned when a push request carries neither notes
	// nor attachments.
	ErrEmptyNotes = errors.New("notes list cannot be empty")

	// ErrEmptyDeviceName is returned when a registration request omits the
	// device name.
	ErrEmptyDeviceName = errors.New("device name is required")

	// ErrEmptyAttachmentID is returned when an attachment reference is
	// missing its ID.
	ErrEmptyAttachmentID = errors.New("attachment id is required")
)

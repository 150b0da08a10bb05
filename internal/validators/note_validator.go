// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"

	"github.com/seesee/jottery/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldID targets a note's stable identifier.
	FieldID = "id"

	// FieldContent targets a note's encrypted content envelope.
	FieldContent = "content"

	// FieldVersion targets a note's optimistic concurrency version counter.
	FieldVersion = "version"

	// FieldNotes targets the batch of notes in a push request.
	FieldNotes = "notes"

	// FieldDeviceName targets the device name in a registration request.
	FieldDeviceName = "device_name"

	// FieldAttachmentID targets an attachment reference's identifier.
	FieldAttachmentID = "attachment_id"
)

// NoteValidator implements the Validator interface for the wire and
// domain types exchanged between the note service, the sync engine, and
// the HTTP transport layer: [models.Note], [models.PushRequest],
// [models.RegisterRequest], and [models.AttachmentRef].
//
// It never inspects decrypted content — only structural invariants that
// hold regardless of what the client encrypted.
type NoteValidator struct{}

// NewNoteValidator constructs a new NoteValidator and returns it as the
// Validator interface.
func NewNoteValidator() Validator {
	return &NoteValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.AttachmentRef:
		return v.validateAttachmentRef(ctx, value, fields...)
	case *models.AttachmentRef:
		return v.validateAttachmentRef(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateNote validates a single Note model.
//
// Default validated fields (when none specified): ID, Content, Version.
func (v *NoteValidator) validateNote(ctx context.Context, note models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldContent, FieldVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if note.ID == "" {
				return ErrInvalidNoteID
			}
		case FieldContent:
			if note.Content.Empty() && !note.Deleted {
				return ErrEmptyContent
			}
		case FieldVersion:
			if note.Version < 1 {
				return ErrInvalidVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePushRequest validates a PushRequest, which contains a batch of
// client-encrypted notes submitted for sync.
//
// Default validated fields: Notes. When validated, each note is checked
// for a non-empty ID and a positive version; content is not re-checked
// here, since a pushed note may legitimately be a deletion tombstone.
func (v *NoteValidator) validatePushRequest(ctx context.Context, req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldNotes:
			if len(req.Notes) == 0 && len(req.Attachments) == 0 {
				return ErrEmptyNotes
			}
			for i, note := range req.Notes {
				if err := v.validateNote(ctx, note, FieldID, FieldVersion); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRegisterRequest validates a RegisterRequest submitted by a
// device registering for the first time.
//
// Default validated fields: DeviceName.
func (v *NoteValidator) validateRegisterRequest(ctx context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceName}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceName:
			if req.DeviceName == "" {
				return ErrEmptyDeviceName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAttachmentRef validates a single AttachmentRef.
//
// Default validated fields: AttachmentID.
func (v *NoteValidator) validateAttachmentRef(ctx context.Context, ref models.AttachmentRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAttachmentID}
	}

	for _, f := range fields {
		switch f {
		case FieldAttachmentID:
			if ref.ID == "" {
				return ErrEmptyAttachmentID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

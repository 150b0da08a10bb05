// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seesee/jottery/models"
)

func validNote() models.Note {
	return models.Note{
		ID:         "note-1",
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
		Content:    models.Envelope{Ciphertext: "cT", IV: "iv"},
		Version:    1,
	}
}

func TestNoteValidator_Validate_UnsupportedType(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), 42)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_Valid(t *testing.T) {
	v := NewNoteValidator()

	if err := v.Validate(context.Background(), validNote()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_Pointer(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()

	if err := v.Validate(context.Background(), &note); err != nil {
		t.Fatalf("expected no error for pointer form, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_MissingID(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()
	note.ID = ""

	err := v.Validate(context.Background(), note)
	if !errors.Is(err, ErrInvalidNoteID) {
		t.Fatalf("expected ErrInvalidNoteID, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_EmptyContent(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()
	note.Content = models.Envelope{}

	err := v.Validate(context.Background(), note)
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_EmptyContentAllowedWhenDeleted(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()
	note.Content = models.Envelope{}
	note.Deleted = true

	if err := v.Validate(context.Background(), note); err != nil {
		t.Fatalf("expected no error for deleted tombstone, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_InvalidVersion(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()
	note.Version = 0

	err := v.Validate(context.Background(), note)
	if !errors.Is(err, ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_ScopedFields(t *testing.T) {
	v := NewNoteValidator()
	note := validNote()
	note.Content = models.Envelope{}

	if err := v.Validate(context.Background(), note, FieldID, FieldVersion); err != nil {
		t.Fatalf("expected no error when content field not scoped, got %v", err)
	}
}

func TestNoteValidator_ValidateNote_UnknownField(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), validNote(), "bogus")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestNoteValidator_ValidatePushRequest_Valid(t *testing.T) {
	v := NewNoteValidator()
	req := models.PushRequest{Notes: []models.Note{validNote()}}

	if err := v.Validate(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNoteValidator_ValidatePushRequest_Empty(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), models.PushRequest{})
	if !errors.Is(err, ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
}

func TestNoteValidator_ValidatePushRequest_AttachmentsOnlyIsValid(t *testing.T) {
	v := NewNoteValidator()
	req := models.PushRequest{Attachments: []models.AttachmentPayload{{ID: "a1", Blob: "Zm9v"}}}

	if err := v.Validate(context.Background(), req); err != nil {
		t.Fatalf("expected no error for attachments-only push, got %v", err)
	}
}

func TestNoteValidator_ValidatePushRequest_BadNoteInBatch(t *testing.T) {
	v := NewNoteValidator()
	bad := validNote()
	bad.ID = ""
	req := models.PushRequest{Notes: []models.Note{validNote(), bad}}

	err := v.Validate(context.Background(), req)
	if !errors.Is(err, ErrInvalidNoteID) {
		t.Fatalf("expected ErrInvalidNoteID wrapped in batch error, got %v", err)
	}
}

func TestNoteValidator_ValidateRegisterRequest_Valid(t *testing.T) {
	v := NewNoteValidator()
	req := models.RegisterRequest{DeviceName: "laptop", DeviceType: "desktop"}

	if err := v.Validate(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNoteValidator_ValidateRegisterRequest_EmptyDeviceName(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), models.RegisterRequest{})
	if !errors.Is(err, ErrEmptyDeviceName) {
		t.Fatalf("expected ErrEmptyDeviceName, got %v", err)
	}
}

func TestNoteValidator_ValidateAttachmentRef_Valid(t *testing.T) {
	v := NewNoteValidator()
	ref := models.AttachmentRef{ID: "att-1", MimeType: "image/png", Size: 100}

	if err := v.Validate(context.Background(), ref); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNoteValidator_ValidateAttachmentRef_MissingID(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), models.AttachmentRef{})
	if !errors.Is(err, ErrEmptyAttachmentID) {
		t.Fatalf("expected ErrEmptyAttachmentID, got %v", err)
	}
}

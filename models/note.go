// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a single vault entry as persisted by the local store. Content and
// tags are opaque to everything except the note service: they travel as
// [Envelope] values and are only ever decrypted at the note-service
// boundary, never inside the store or the sync engine.
type Note struct {
	// ID is a stable 128-bit identifier (UUID string form).
	ID string `json:"id"`

	// CreatedAt is the creation timestamp, ISO-8601 with offset.
	CreatedAt time.Time `json:"createdAt"`

	// ModifiedAt is the last-modified timestamp. Invariant: ModifiedAt >=
	// CreatedAt.
	ModifiedAt time.Time `json:"modifiedAt"`

	// SyncedAt is the last time this note's fields were confirmed to match
	// the server, or nil if it has never synced.
	SyncedAt *time.Time `json:"syncedAt,omitempty"`

	// Content is the encrypted note body.
	Content Envelope `json:"content"`

	// Tags is the encrypted, JSON-encoded tag array.
	Tags Envelope `json:"tags"`

	// Attachments is the ordered sequence of attachment references.
	Attachments []AttachmentRef `json:"attachments,omitempty"`

	// Pinned marks the note for priority placement in sorted listings.
	Pinned bool `json:"pinned"`

	// Deleted marks the note as soft-deleted. Attachments are retained.
	Deleted bool `json:"deleted"`

	// DeletedAt is set when Deleted is true; invariant: DeletedAt >=
	// ModifiedAt at the moment of deletion.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// ContentHash is a SHA-256 digest (hex) of the decrypted content, used
	// for conflict detection without decrypting on every comparison.
	ContentHash *string `json:"contentHash,omitempty"`

	// Version is a monotone client-side counter; invariant: Version >= 1
	// and strictly increases on every mutation.
	Version int64 `json:"version"`

	// WordWrap is a non-secret presentation hint.
	WordWrap bool `json:"wordWrap"`

	// SyntaxLanguage is a non-secret presentation hint (e.g. "go", "plain").
	SyntaxLanguage string `json:"syntaxLanguage"`
}

// AttachmentRef is a reference to an encrypted attachment blob. The
// filename is encrypted; mime type and size travel in cleartext because
// they are needed for UI rendering without decryption.
type AttachmentRef struct {
	ID               string   `json:"id"`
	EncryptedName    Envelope `json:"encryptedName"`
	MimeType         string   `json:"mimeType"`
	Size             int64    `json:"size"`
	BlobHandle       string   `json:"blobHandle"`
	ThumbnailHandle  *string  `json:"thumbnailHandle,omitempty"`
}

// AttachmentBlob is the encrypted attachment payload as persisted by the
// local store, keyed by BlobHandle / ThumbnailHandle from the owning
// [AttachmentRef]. The blob is encrypted as raw bytes, independently of
// the thumbnail, each under its own IV.
type AttachmentBlob struct {
	ID               string   `json:"id"`
	NoteID           string   `json:"noteId"`
	EncryptedName    Envelope `json:"encryptedName"`
	MimeType         string   `json:"mimeType"`
	Size             int64    `json:"size"`
	BlobCiphertext   []byte   `json:"-"`
	BlobIV           string   `json:"-"`
	ThumbnailCiphertext []byte `json:"-"`
	ThumbnailIV         string `json:"-"`
}

// NoteUpdate carries a partial update for ClientNoteService.Update: a nil
// field leaves that aspect of the note unchanged. Attachments, when
// non-nil, replaces the note's attachment set wholesale; any ref present in
// the stored note but absent from the new set is garbage-collected (its
// blob and thumbnail ciphertext deleted).
type NoteUpdate struct {
	Content        *string
	Tags           *[]string
	Attachments    *[]AttachmentRef
	Pinned         *bool
	WordWrap       *bool
	SyntaxLanguage *string
}

// DecryptedNote is the view returned by the note service after crossing
// the decryption boundary: every [Note] field, plus cleartext content and
// tags, plus a decryption-time timestamp used purely for client-side cache
// aging. DecryptedAt is never persisted.
type DecryptedNote struct {
	Note

	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	DecryptedAt time.Time `json:"-"`
}

// SortOrder enumerates the orderings the note service can apply to a
// listing. Pinned notes always precede unpinned notes regardless of
// SortOrder; SortOrder governs ordering within each group.
type SortOrder int

const (
	SortRecent SortOrder = iota // modifiedAt desc
	SortOldest                 // modifiedAt asc
	SortCreated                // createdAt desc
	SortAlpha                  // first line of cleartext content, case-folded
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the data types shared between the note service,
// the local store, the client sync engine, and the server core: domain
// entities (Note, AttachmentRef, sync metadata) and the wire types carried
// over the HTTP sync protocol.
package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// RegisterRequest is the body of POST /api/v1/auth/register.
type RegisterRequest struct {
	DeviceName string `json:"deviceName"`
	DeviceType string `json:"deviceType"`
}

// RegisterResponse is returned once, at registration time; the plaintext
// API key is never returned by any other endpoint.
type RegisterResponse struct {
	APIKey    string    `json:"apiKey"`
	ClientID  string    `json:"clientId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SyncStatusResponse is returned by GET /api/v1/sync/status.
type SyncStatusResponse struct {
	ClientID           string     `json:"clientId"`
	ServerLastModified *time.Time `json:"serverLastModified,omitempty"`
	NoteCount          int        `json:"noteCount"`
	LastSyncedAt       *time.Time `json:"lastSyncedAt,omitempty"`
}

// AttachmentPayload carries a base64-encoded encrypted blob over the wire.
// Blob is the base64 encoding of a JSON-serialized attachmentWireBlob,
// chosen so the wire shape stays a flat {id, blob} pair while still
// carrying full AttachmentBlob fidelity (both ciphertexts, both IVs, and
// the encrypted name envelope).
type AttachmentPayload struct {
	ID   string `json:"id"`
	Blob string `json:"blob"`
}

// attachmentWireBlob is the JSON shape base64-encoded into
// AttachmentPayload.Blob.
type attachmentWireBlob struct {
	NoteID               string   `json:"noteId"`
	EncryptedName        Envelope `json:"encryptedName"`
	MimeType             string   `json:"mimeType"`
	Size                 int64    `json:"size"`
	BlobCiphertext       []byte   `json:"blobCiphertext"`
	BlobIV               string   `json:"blobIv"`
	ThumbnailCiphertext  []byte   `json:"thumbnailCiphertext,omitempty"`
	ThumbnailIV          string   `json:"thumbnailIv,omitempty"`
}

// EncodeAttachmentPayload packs an AttachmentBlob into its wire form.
func EncodeAttachmentPayload(blob AttachmentBlob) (AttachmentPayload, error) {
	raw, err := json.Marshal(attachmentWireBlob{
		NoteID:              blob.NoteID,
		EncryptedName:       blob.EncryptedName,
		MimeType:            blob.MimeType,
		Size:                blob.Size,
		BlobCiphertext:      blob.BlobCiphertext,
		BlobIV:              blob.BlobIV,
		ThumbnailCiphertext: blob.ThumbnailCiphertext,
		ThumbnailIV:         blob.ThumbnailIV,
	})
	if err != nil {
		return AttachmentPayload{}, fmt.Errorf("models: marshal attachment payload: %w", err)
	}
	return AttachmentPayload{ID: blob.ID, Blob: base64.StdEncoding.EncodeToString(raw)}, nil
}

// DecodeAttachmentPayload unpacks an AttachmentPayload back into an
// AttachmentBlob.
func DecodeAttachmentPayload(payload AttachmentPayload) (AttachmentBlob, error) {
	raw, err := base64.StdEncoding.DecodeString(payload.Blob)
	if err != nil {
		return AttachmentBlob{}, fmt.Errorf("models: decode attachment payload: %w", err)
	}
	var wire attachmentWireBlob
	if err := json.Unmarshal(raw, &wire); err != nil {
		return AttachmentBlob{}, fmt.Errorf("models: unmarshal attachment payload: %w", err)
	}
	return AttachmentBlob{
		ID:                  payload.ID,
		NoteID:              wire.NoteID,
		EncryptedName:       wire.EncryptedName,
		MimeType:            wire.MimeType,
		Size:                wire.Size,
		BlobCiphertext:      wire.BlobCiphertext,
		BlobIV:              wire.BlobIV,
		ThumbnailCiphertext: wire.ThumbnailCiphertext,
		ThumbnailIV:         wire.ThumbnailIV,
	}, nil
}

// PushRequest is the body of POST /api/v1/sync/push.
type PushRequest struct {
	Notes       []Note              `json:"notes"`
	Attachments []AttachmentPayload `json:"attachments"`
}

// PushAccepted describes one note the server accepted.
type PushAccepted struct {
	ID            string    `json:"id"`
	ServerVersion int64     `json:"serverVersion"`
	SyncedAt      time.Time `json:"syncedAt"`
}

// PushRejected describes one note the server rejected, with enough
// information for the client to reconcile on the next pull.
type PushRejected struct {
	ID               string    `json:"id"`
	Reason           string    `json:"reason"`
	ServerModifiedAt time.Time `json:"serverModifiedAt"`
}

// PushResponse is the body returned by POST /api/v1/sync/push.
type PushResponse struct {
	Accepted []PushAccepted `json:"accepted"`
	Rejected []PushRejected `json:"rejected"`
	Errors   []string       `json:"errors"`
}

// PullRequest is the body of POST /api/v1/sync/pull.
type PullRequest struct {
	LastSyncAt   *time.Time `json:"lastSyncAt,omitempty"`
	KnownNoteIDs []string   `json:"knownNoteIds"`
}

// PullDeletion is a tombstone conveyed by a pull response.
type PullDeletion struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}

// PullResponse is the body returned by POST /api/v1/sync/pull.
type PullResponse struct {
	Notes       []ServerNote        `json:"notes"`
	Deletions   []PullDeletion      `json:"deletions"`
	Attachments []AttachmentPayload `json:"attachments"`
	SyncedAt    time.Time           `json:"syncedAt"`
}

// CredentialExport is the base64-JSON payload used to seed a second
// device. It must round-trip with exactly these four keys: unknown keys
// are rejected on import, missing keys are rejected.
type CredentialExport struct {
	Endpoint string `json:"endpoint"`
	ClientID string `json:"clientId"`
	APIKey   string `json:"apiKey"`
	Salt     string `json:"salt"`
}

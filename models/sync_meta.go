// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the per-note sync state machine: synced -> pending on any
// local mutation; pending -> synced on successful push-accept; pending ->
// conflict on push-reject; conflict -> synced when a later pull adopts a
// newer server version; any -> error on transient failures.
type SyncStatus string

const (
	StatusSynced   SyncStatus = "synced"
	StatusPending  SyncStatus = "pending"
	StatusConflict SyncStatus = "conflict"
	StatusError    SyncStatus = "error"
)

// APIKeyKind discriminates the three states the global sync metadata's API
// key field can hold. Modeled as a tagged union rather than a bare string
// with a sentinel prefix so that every consumer away from the storage/wire
// boundary must handle all three cases explicitly.
type APIKeyKind int

const (
	// APIKeyAbsent means no device registration has happened yet.
	APIKeyAbsent APIKeyKind = iota
	// APIKeyEncrypted is the steady state: the key is wrapped under the
	// master key in Encrypted.
	APIKeyEncrypted
	// APIKeyPendingImport means Plaintext holds the cleartext key.
	// ExportCredential reads it, but no code path in this module sets this
	// state: credential import stores the key as APIKeyEncrypted, and
	// unlock does not re-encrypt a Plaintext key.
	APIKeyPendingImport
)

// APIKeyState is the domain-level representation of global sync metadata's
// API key field. The local store persists Kind in its own column next to
// the encrypted and plaintext key columns; no string prefix marks the
// state.
type APIKeyState struct {
	Kind      APIKeyKind `json:"kind"`
	Encrypted Envelope   `json:"encrypted,omitempty"`
	Plaintext string     `json:"plaintext,omitempty"`
}

// GlobalSyncMeta is the single per-store record of sync configuration and
// history.
type GlobalSyncMeta struct {
	LastSyncAt          *time.Time  `json:"lastSyncAt,omitempty"`
	LastPushAttemptAt   *time.Time  `json:"lastPushAttemptAt,omitempty"`
	LastPullAttemptAt   *time.Time  `json:"lastPullAttemptAt,omitempty"`
	APIKey              APIKeyState `json:"apiKey"`
	ClientID            string      `json:"clientId"`
	SyncEnabled         bool        `json:"syncEnabled"`
	SyncEndpoint        string      `json:"syncEndpoint"`
	AutoSyncIntervalMin int         `json:"autoSyncIntervalMinutes"`
}

// NoteSyncMeta is the per-note sync record. Invariant: every locally
// existing, non-purged note has at most one of these.
type NoteSyncMeta struct {
	NoteID              string     `json:"noteId"`
	LastSyncedAt        *time.Time `json:"lastSyncedAt,omitempty"`
	ContentHashAtSync   *string    `json:"contentHashAtSync,omitempty"`
	ServerVersionAtSync int64      `json:"serverVersionAtSync"`
	Status              SyncStatus `json:"status"`
	ErrorMessage        *string    `json:"errorMessage,omitempty"`
}

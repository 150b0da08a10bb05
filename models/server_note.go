// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ServerNote mirrors the client [Note] fields as stored on the server,
// keyed by (ClientID, ID). Invariant: ServerVersion strictly increases on
// every accepted write.
type ServerNote struct {
	ClientID string `json:"-"`
	ID       string `json:"id"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`

	Content Envelope `json:"content"`
	Tags    Envelope `json:"tags"`

	Attachments []AttachmentRef `json:"attachments,omitempty"`

	Pinned bool `json:"pinned"`

	// Deleted is the server's own soft-delete flag, independent of the
	// client's: it is set by the regular (non-admin) sync pathway and
	// conveyed to clients as a pull deletion, never by the hard-delete
	// admin endpoint.
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	ContentHash *string `json:"contentHash,omitempty"`

	WordWrap       bool   `json:"wordWrap"`
	SyntaxLanguage string `json:"syntaxLanguage"`

	// ServerVersion is incremented by the server on every accepted write.
	ServerVersion int64 `json:"serverVersion"`

	// ServerModifiedAt is set by the server, not the client, on every
	// accepted write.
	ServerModifiedAt time.Time `json:"serverModifiedAt"`
}

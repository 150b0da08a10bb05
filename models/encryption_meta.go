// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EncryptionMetadata is the single per-store record describing how the
// master key is derived. It is immutable after initialization: changing
// the password requires a full re-encryption pass, which is out of scope.
type EncryptionMetadata struct {
	// Salt is the random salt used at key derivation time.
	Salt []byte `json:"salt"`

	// Iterations is the PBKDF2 iteration count used at derivation time.
	// Implementations may default new stores to a higher count but must
	// always read back whatever value is stored here.
	Iterations int `json:"iterations"`

	// CreatedAt is when this metadata record was written.
	CreatedAt time.Time `json:"createdAt"`

	// Algorithm is a tag identifying the content cipher, e.g. "AES-256-GCM".
	Algorithm string `json:"algorithm"`
}

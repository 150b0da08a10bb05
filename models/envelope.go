// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the pair produced by AES-256-GCM encryption of a payload
// under the master key: the GCM-sealed ciphertext (authentication tag
// included, as the algorithm defines) and the random IV used to seal it.
// Both fields are base64-encoded for transport and storage.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

// Empty reports whether the envelope carries no ciphertext, i.e. the field
// it wraps was never populated.
func (e Envelope) Empty() bool {
	return e.Ciphertext == "" && e.IV == ""
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side cryptography layer for
// Jottery's end-to-end encryption contract: the server ever only sees
// opaque ciphertext, IVs, and salts.
//
// # Key hierarchy
//
// Unlike a per-payload key scheme, Jottery derives a single master key
// directly from the user's password and a per-store salt:
//
//  1. Salt — a random 32-byte value generated once, at store
//     initialization, and persisted in plaintext as part of the
//     [models.EncryptionMetadata] record.
//  2. Master key — PBKDF2-HMAC-SHA256(password, salt, iterations) → 32
//     bytes. Exists only in memory for the lifetime of an unlocked
//     [KeyManager]; never transmitted or persisted.
//  3. Every note's content and tags are sealed independently under the
//     master key with AES-256-GCM, each with its own random 96-bit IV, as
//     an [models.Envelope].
//
// # Lifecycle
//
// [KeyManager] drives the locked/unlocked state machine described in the
// package's keymanager.go: Initialize (first run), Unlock (verifies the
// password by attempting to decrypt an existing note), Lock, and Wipe
// (terminal — clears all key material and forbids further use).
package crypto

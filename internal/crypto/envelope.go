// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/seesee/jottery/models"
)

const (
	// SaltSize is the size, in bytes, of a newly generated store salt.
	SaltSize = 32

	// KeySize is the size, in bytes, of the derived master key (AES-256).
	KeySize = 32

	// DefaultIterations is the PBKDF2 iteration count used for newly
	// initialized stores. Existing stores always read back whatever
	// count is recorded in [models.EncryptionMetadata], so raising this
	// constant never invalidates an existing password.
	DefaultIterations = 100_000

	// Algorithm identifies the content cipher recorded in
	// [models.EncryptionMetadata].
	Algorithm = "AES-256-GCM"

	nonceSize = 12
)

// GenerateSalt reads a new random store salt from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("crypto: generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives the 256-bit master key from password and salt using
// PBKDF2-HMAC-SHA256 with the given iteration count. It is deterministic:
// the same inputs always produce the same key.
func DeriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
}

// Seal encrypts plaintext under key using AES-256-GCM with a fresh random
// IV, returning the pair as an [models.Envelope]. Both fields are
// base64-standard-encoded.
func Seal(key []byte, plaintext []byte) (models.Envelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.Envelope{}, err
	}

	iv := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.Envelope{}, fmt.Errorf("crypto: generate iv: %w", err)
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)

	return models.Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// SealString is [Seal] for a string payload, the common case for note
// content and the serialized tag list.
func SealString(key []byte, plaintext string) (models.Envelope, error) {
	return Seal(key, []byte(plaintext))
}

// Open decrypts env under key, returning the original plaintext. Any
// failure — wrong key, truncated ciphertext, or a tampered authentication
// tag — collapses to [ErrDecryptFailed]; the three are indistinguishable
// by design.
func Open(key []byte, env models.Envelope) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: bad iv encoding", ErrDecryptFailed)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext encoding", ErrDecryptFailed)
	}
	if len(iv) != nonceSize {
		return nil, fmt.Errorf("%w: bad iv length", ErrDecryptFailed)
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// OpenString is [Open] returning a string.
func OpenString(key []byte, env models.Envelope) (string, error) {
	pt, err := Open(key, env)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// ContentHash returns the hex-encoded SHA-256 digest of plaintext. Used to
// detect whether a note's decrypted content actually changed across a
// sync round without comparing ciphertext (which differs every time due
// to the random IV even for identical plaintext).
func ContentHash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return fmt.Sprintf("%x", sum)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: create gcm: %w", err)
	}
	return gcm, nil
}

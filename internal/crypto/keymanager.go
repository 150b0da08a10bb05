// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"sync"
	"time"

	"github.com/seesee/jottery/models"
)

// State is the lifecycle state of a [KeyManager].
type State int

const (
	// StateUninitialized means no [models.EncryptionMetadata] has been
	// created yet; Initialize must be called before anything else.
	StateUninitialized State = iota
	// StateLocked means metadata exists but no master key is held in
	// memory; Unlock is required before any encrypt/decrypt call.
	StateLocked
	// StateUnlocked means the master key is held in memory and
	// available via GetMasterKey.
	StateUnlocked
	// StateWiped is terminal: Wipe was called and the manager must be
	// discarded.
	StateWiped
)

// VerifyFunc attempts to decrypt something already on disk (typically an
// existing note's content envelope) using a candidate master key. It must
// return an error wrapping [ErrDecryptFailed] (or equivalent) when the key
// is wrong, and nil when the key is correct. A store with zero notes
// should supply a VerifyFunc that always succeeds — there is nothing yet
// to fail the check against.
type VerifyFunc func(candidateKey []byte) error

// KeyManager drives the locked/unlocked lifecycle of the master key and
// enforces an inactivity auto-lock. It is safe for concurrent use.
type KeyManager struct {
	mu    sync.Mutex
	state State

	meta *models.EncryptionMetadata
	key  []byte

	autoLockTimeout time.Duration
	lockTimer       *time.Timer
	onAutoLock      func()
}

// NewKeyManager constructs a KeyManager in [StateUninitialized]. Call
// Initialize for a brand-new store, or Restore+Unlock for an existing one.
func NewKeyManager() *KeyManager {
	return &KeyManager{state: StateUninitialized}
}

// Restore seeds the manager with previously persisted metadata, moving it
// to [StateLocked]. Call this once at startup for an existing store,
// before the first Unlock. Has no effect once the manager is wiped.
func (k *KeyManager) Restore(meta models.EncryptionMetadata) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.state == StateWiped {
		return
	}
	k.meta = &meta
	k.state = StateLocked
}

// Initialize derives a fresh master key from password with a new random
// salt and [DefaultIterations], moving the manager straight to
// [StateUnlocked]. Returns [ErrAlreadyInitialized] if metadata already
// exists (via a prior Restore or Initialize), or [ErrWiped] after Wipe.
func (k *KeyManager) Initialize(password string) (models.EncryptionMetadata, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.state == StateWiped {
		return models.EncryptionMetadata{}, ErrWiped
	}
	if k.meta != nil {
		return models.EncryptionMetadata{}, ErrAlreadyInitialized
	}

	salt, err := GenerateSalt()
	if err != nil {
		return models.EncryptionMetadata{}, err
	}

	meta := models.EncryptionMetadata{
		Salt:       salt,
		Iterations: DefaultIterations,
		CreatedAt:  time.Now().UTC(),
		Algorithm:  Algorithm,
	}

	k.meta = &meta
	k.key = DeriveKey(password, salt, DefaultIterations)
	k.state = StateUnlocked

	return meta, nil
}

// Unlock derives the master key from password against the restored
// metadata and runs verify against it. On success the manager enters
// [StateUnlocked] and the timer-based auto-lock (if configured) is armed.
// On a verify failure the candidate key is discarded and
// [ErrIncorrectPassword] is returned; the manager's state and any key it
// already held are left unchanged.
func (k *KeyManager) Unlock(password string, verify VerifyFunc) error {
	k.mu.Lock()
	if k.state == StateWiped {
		k.mu.Unlock()
		return ErrWiped
	}
	if k.meta == nil {
		k.mu.Unlock()
		return ErrNotInitialized
	}
	meta := *k.meta
	k.mu.Unlock()

	candidate := DeriveKey(password, meta.Salt, meta.Iterations)

	if verify != nil {
		if err := verify(candidate); err != nil {
			return ErrIncorrectPassword
		}
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = candidate
	k.state = StateUnlocked
	k.armLockTimerLocked()

	return nil
}

// Lock discards the in-memory master key and moves the manager to
// [StateLocked]. Safe to call repeatedly.
func (k *KeyManager) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lockLocked()
}

func (k *KeyManager) lockLocked() {
	if k.state == StateWiped {
		return
	}
	wipeBytes(k.key)
	k.key = nil
	k.state = StateLocked
	if k.lockTimer != nil {
		k.lockTimer.Stop()
		k.lockTimer = nil
	}
}

// Wipe discards all key material and metadata and moves the manager to
// the terminal [StateWiped]. No further operation on this KeyManager will
// succeed.
func (k *KeyManager) Wipe() {
	k.mu.Lock()
	defer k.mu.Unlock()

	wipeBytes(k.key)
	k.key = nil
	k.meta = nil
	k.state = StateWiped
	if k.lockTimer != nil {
		k.lockTimer.Stop()
		k.lockTimer = nil
	}
}

// GetMasterKey returns the in-memory master key. Returns [ErrLocked] if
// the manager is not [StateUnlocked], or [ErrWiped] once wiped.
func (k *KeyManager) GetMasterKey() ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch k.state {
	case StateWiped:
		return nil, ErrWiped
	case StateUnlocked:
		return k.key, nil
	default:
		return nil, ErrLocked
	}
}

// State returns the manager's current lifecycle state.
func (k *KeyManager) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Metadata returns the restored or initialized encryption metadata. The
// second return is false before Initialize/Restore has been called.
func (k *KeyManager) Metadata() (models.EncryptionMetadata, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.meta == nil {
		return models.EncryptionMetadata{}, false
	}
	return *k.meta, true
}

// SetAutoLockTimeout configures the inactivity duration after which an
// unlocked manager locks itself. A zero duration disables auto-lock.
// onLocked, if non-nil, is invoked (from the timer's own goroutine) the
// moment the auto-lock fires.
func (k *KeyManager) SetAutoLockTimeout(d time.Duration, onLocked func()) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.autoLockTimeout = d
	k.onAutoLock = onLocked
	if k.state == StateUnlocked {
		k.armLockTimerLocked()
	}
}

// RegisterActivity resets the auto-lock countdown. Callers should invoke
// this on every user-visible action (note read, edit, keystroke) while
// unlocked.
func (k *KeyManager) RegisterActivity() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.state == StateUnlocked {
		k.armLockTimerLocked()
	}
}

// armLockTimerLocked must be called with k.mu held.
func (k *KeyManager) armLockTimerLocked() {
	if k.lockTimer != nil {
		k.lockTimer.Stop()
		k.lockTimer = nil
	}
	if k.autoLockTimeout <= 0 {
		return
	}
	k.lockTimer = time.AfterFunc(k.autoLockTimeout, func() {
		k.mu.Lock()
		wasUnlocked := k.state == StateUnlocked
		k.lockLocked()
		cb := k.onAutoLock
		k.mu.Unlock()
		if wasUnlocked && cb != nil {
			cb()
		}
	})
}

// wipeBytes overwrites a key's backing array with zeroes before it is
// dropped, to narrow the window a memory dump could recover it in.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncPlan is the outcome of comparing local pending-sync state against
// the last known server snapshot, ready for a [ClientSyncService] to
// execute as a push followed by a pull. Unlike a multi-bucket diff, the
// plan only needs to carry what to push — pull always fetches everything
// modified since LastSyncAt and reconciles with last-write-wins.
type SyncPlan struct {
	// ToPush is every locally pending note, already loaded from the local
	// store, ready to ship in a single push request.
	ToPush []Note

	// LastSyncAt is the high-water mark to pull changes since, or nil for
	// a first-ever sync (pull everything).
	LastSyncAt *time.Time

	// KnownNoteIDs lists every local note ID, deleted ones included; the
	// server skips attachment payloads for notes in this list.
	KnownNoteIDs []string
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoteNotFound is returned when a note ID does not resolve to a
	// stored note.
	ErrNoteNotFound = errors.New("service: note not found")

	// ErrSyncInProgress is returned by FullSync when a sync round is
	// already running.
	ErrSyncInProgress = errors.New("service: sync already in progress")

	// ErrSyncDisabled is returned when a sync operation is attempted
	// while the global sync metadata has sync disabled.
	ErrSyncDisabled = errors.New("service: sync is disabled")

	// ErrNotRegistered is returned when a sync operation is attempted
	// before the client has registered with a server.
	ErrNotRegistered = errors.New("service: client is not registered with a sync server")

	// ErrAlreadyRegistered is returned by ClientPairingService.Register
	// when the local store already holds a bearer key.
	ErrAlreadyRegistered = errors.New("service: client is already registered with a sync server")

	// ErrIncompleteCredentialExport is returned by
	// ClientPairingService.ImportCredential when the export payload is
	// missing one of its four required fields.
	ErrIncompleteCredentialExport = errors.New("service: credential export is missing required fields")
)

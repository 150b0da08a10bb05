// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/seesee/jottery/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AppInfoService exposes application metadata such as the running version.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ClientRegistryService manages device registration and bearer-key
// authentication on the server side.
type ClientRegistryService interface {
	// Register creates a new RegisteredClient with a freshly generated
	// bearer API key, returning the plaintext key exactly once.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// Authenticate looks up the client owning the given bearer key,
	// stamping LastSeenAt. Returns ErrUnauthorized if the key is unknown
	// or the client has been deactivated.
	Authenticate(ctx context.Context, bearerKey string) (models.RegisteredClient, error)
}

// NoteSyncService implements the server-side push/pull/status business
// logic atop the opaque server note store. It never decrypts anything: it
// only ever handles [models.ServerNote] envelopes.
type NoteSyncService interface {
	// Push applies a batch of client notes under optimistic concurrency
	// control, returning per-note accept/reject results.
	Push(ctx context.Context, clientID string, req models.PushRequest) (models.PushResponse, error)

	// Pull returns every note modified since req.LastSyncAt (or all notes,
	// if nil), split into live notes and deletion tombstones.
	Pull(ctx context.Context, clientID string, req models.PullRequest) (models.PullResponse, error)

	// Status reports the server's view of clientID's sync state.
	Status(ctx context.Context, clientID string) (models.SyncStatusResponse, error)

	// Delete hard-deletes a single note for administrative/compliance use,
	// bypassing the regular soft-delete tombstone pathway.
	Delete(ctx context.Context, clientID, noteID string) error
}

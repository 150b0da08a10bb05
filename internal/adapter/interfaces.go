// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the Jottery sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// sync service from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for a 409 version conflict).
package adapter

import (
	"context"

	"github.com/seesee/jottery/models"
)

// ServerAdapter defines transport-agnostic communication with the Jottery
// sync server. Implementations are responsible for serialisation, bearer
// API-key header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetAPIKey stores the bearer API key attached to all subsequent
	// authenticated requests. It is called once after Register or after a
	// credential import.
	SetAPIKey(key string)

	// APIKey returns the bearer API key currently stored in the adapter, or
	// an empty string if none has been set.
	APIKey() string

	// Register creates a new device registration on the server. On success
	// the returned API key is also stored via SetAPIKey. Returns an error
	// if the request fails or the server responds with a non-2xx status.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// Push uploads a batch of notes (and any new attachments) to the
	// server. Returns per-note accept/reject results; a rejected note
	// indicates an optimistic-locking conflict the caller must resolve.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull retrieves notes modified since req.LastSyncAt, plus deletions
	// and any attachments the client doesn't have yet.
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// Status reports the server's view of this client's sync state: note
	// count and last-modified timestamp.
	Status(ctx context.Context) (models.SyncStatusResponse, error)
}

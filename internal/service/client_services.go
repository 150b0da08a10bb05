// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/seesee/jottery/internal/adapter"
	"github.com/seesee/jottery/internal/crypto"
	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/store"
)

// ClientServices is the client-side service container, constructed once at
// application startup and threaded through the CLI command layer.
type ClientServices struct {
	// NoteService handles local note CRUD with encrypt-on-write /
	// decrypt-on-read.
	NoteService ClientNoteService

	// SyncService orchestrates push/pull against the sync server.
	SyncService ClientSyncService

	// SyncJob is the background ticker that periodically invokes
	// SyncService.FullSync while auto-sync is enabled.
	SyncJob ClientSyncJob

	// PairingService manages registration with a sync server and
	// credential export/import for adding a second device.
	PairingService ClientPairingService
}

// NewClientServices wires the client-side service container over the local
// repositories, key manager, and server transport.
func NewClientServices(repos *store.Repositories, keyManager *crypto.KeyManager, serverAdapter adapter.ServerAdapter, log *logger.Logger) *ClientServices {
	log.Info().Msg("creating new client services...")

	noteSvc := NewClientNoteService(repos, keyManager)
	syncSvc := NewClientSyncService(repos, serverAdapter)

	return &ClientServices{
		NoteService:    noteSvc,
		SyncService:    syncSvc,
		SyncJob:        NewClientSyncJob(syncSvc),
		PairingService: NewClientPairingService(repos, serverAdapter, keyManager),
	}
}

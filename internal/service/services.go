// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service defines the core business logic interfaces and service
// implementations for Jottery: server-side device registration and opaque
// note sync, and client-side encrypt-on-write note CRUD and sync
// orchestration.
package service

import (
	"fmt"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/server/store"
)

// Services is the top-level container that groups all server-side service
// implementations. It is constructed once at startup and injected into the
// HTTP handler layer.
type Services struct {
	// AppInfoService exposes application metadata such as the current
	// version.
	AppInfoService AppInfoService

	// ClientRegistryService handles device registration and bearer-key
	// authentication.
	ClientRegistryService ClientRegistryService

	// NoteSyncService handles push/pull/status/delete business logic over
	// opaque server notes.
	NoteSyncService NoteSyncService
}

// NewServices constructs and wires all server-side services from the
// given store, app version, and logger.
func NewServices(st store.ServerStore, appVersion string, log *logger.Logger) (*Services, error) {
	log.Info().Msg("creating new services...")

	appService, err := NewAppInfoService(appVersion, log)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AppInfoService:        appService,
		ClientRegistryService: NewClientRegistryService(st.Clients(), log),
		NoteSyncService:       NewNoteSyncService(st.Notes(), st.Attachments()),
	}, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/models"
)

// fakeAppInfoService is a minimal AppInfoService test double.
type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string { return f.version }

// fakeClientRegistryService is a minimal ClientRegistryService test double.
type fakeClientRegistryService struct {
	registerResp models.RegisterResponse
	registerErr  error

	authenticateClient models.RegisteredClient
	authenticateErr    error
	authenticatedKeys  []string
}

func (f *fakeClientRegistryService) Register(_ context.Context, _ models.RegisterRequest) (models.RegisterResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeClientRegistryService) Authenticate(_ context.Context, bearerKey string) (models.RegisteredClient, error) {
	f.authenticatedKeys = append(f.authenticatedKeys, bearerKey)
	return f.authenticateClient, f.authenticateErr
}

// fakeNoteSyncService is a minimal NoteSyncService test double.
type fakeNoteSyncService struct {
	pushResp models.PushResponse
	pushErr  error
	pushReqs []models.PushRequest

	pullResp models.PullResponse
	pullErr  error

	statusResp models.SyncStatusResponse
	statusErr  error

	deleteErr     error
	deletedNoteID string
}

func (f *fakeNoteSyncService) Push(_ context.Context, _ string, req models.PushRequest) (models.PushResponse, error) {
	f.pushReqs = append(f.pushReqs, req)
	return f.pushResp, f.pushErr
}

func (f *fakeNoteSyncService) Pull(_ context.Context, _ string, _ models.PullRequest) (models.PullResponse, error) {
	return f.pullResp, f.pullErr
}

func (f *fakeNoteSyncService) Status(_ context.Context, _ string) (models.SyncStatusResponse, error) {
	return f.statusResp, f.statusErr
}

func (f *fakeNoteSyncService) Delete(_ context.Context, _, noteID string) error {
	f.deletedNoteID = noteID
	return f.deleteErr
}

// testHandler constructs a Handler wired to fake services, for use by
// tests that want to exercise route handlers directly without a live
// store or server-side service implementation.
func testHandler(services *service.Services) *Handler {
	return NewHandler(services, logger.NewLogger("handler-test"), 0)
}

func newTestServices() (*service.Services, *fakeAppInfoService, *fakeClientRegistryService, *fakeNoteSyncService) {
	appInfo := &fakeAppInfoService{version: "1.2.3"}
	registry := &fakeClientRegistryService{}
	noteSync := &fakeNoteSyncService{}

	return &service.Services{
		AppInfoService:        appInfo,
		ClientRegistryService: registry,
		NoteSyncService:       noteSync,
	}, appInfo, registry, noteSync
}

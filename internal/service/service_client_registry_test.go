// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/server/store"
	"github.com/seesee/jottery/models"
)

type fakeClientRepository struct {
	byHash map[string]models.RegisteredClient
	byID   map[string]models.RegisteredClient
}

func newFakeClientRepository() *fakeClientRepository {
	return &fakeClientRepository{byHash: map[string]models.RegisteredClient{}, byID: map[string]models.RegisteredClient{}}
}

func (f *fakeClientRepository) Create(_ context.Context, c models.RegisteredClient) error {
	if _, ok := f.byHash[c.APIKeyHash]; ok {
		return store.ErrDuplicateAPIKey
	}
	f.byHash[c.APIKeyHash] = c
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepository) FindByAPIKeyHash(_ context.Context, hash string) (models.RegisteredClient, error) {
	c, ok := f.byHash[hash]
	if !ok {
		return models.RegisteredClient{}, store.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepository) Get(_ context.Context, clientID string) (models.RegisteredClient, error) {
	c, ok := f.byID[clientID]
	if !ok {
		return models.RegisteredClient{}, store.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepository) UpdateLastSeen(_ context.Context, clientID string, seenAt time.Time) error {
	c, ok := f.byID[clientID]
	if !ok {
		return store.ErrClientNotFound
	}
	c.LastSeenAt = seenAt
	f.byID[clientID] = c
	f.byHash[c.APIKeyHash] = c
	return nil
}

func TestClientRegistryService_Register_Success(t *testing.T) {
	repo := newFakeClientRepository()
	svc := NewClientRegistryService(repo, logger.Nop())

	resp, err := svc.Register(context.Background(), models.RegisterRequest{DeviceName: "laptop", DeviceType: "cli"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.APIKey)
	assert.Len(t, resp.APIKey, 64)
	assert.NotEmpty(t, resp.ClientID)
}

func TestClientRegistryService_Authenticate_Success(t *testing.T) {
	repo := newFakeClientRepository()
	svc := NewClientRegistryService(repo, logger.Nop())

	resp, err := svc.Register(context.Background(), models.RegisterRequest{DeviceName: "laptop"})
	require.NoError(t, err)

	client, err := svc.Authenticate(context.Background(), resp.APIKey)

	require.NoError(t, err)
	assert.Equal(t, resp.ClientID, client.ID)
}

func TestClientRegistryService_Authenticate_UnknownKey(t *testing.T) {
	repo := newFakeClientRepository()
	svc := NewClientRegistryService(repo, logger.Nop())

	_, err := svc.Authenticate(context.Background(), "does-not-exist")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestClientRegistryService_Authenticate_EmptyKey(t *testing.T) {
	repo := newFakeClientRepository()
	svc := NewClientRegistryService(repo, logger.Nop())

	_, err := svc.Authenticate(context.Background(), "   ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestClientRegistryService_Register_EachCallGetsDistinctKey(t *testing.T) {
	repo := newFakeClientRepository()
	svc := NewClientRegistryService(repo, logger.Nop())

	r1, err := svc.Register(context.Background(), models.RegisterRequest{DeviceName: "a"})
	require.NoError(t, err)
	r2, err := svc.Register(context.Background(), models.RegisterRequest{DeviceName: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, r1.APIKey, r2.APIKey)
	assert.NotEqual(t, r1.ClientID, r2.ClientID)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/seesee/jottery/internal/adapter"
	"github.com/seesee/jottery/internal/crypto"
	"github.com/seesee/jottery/internal/store"
	"github.com/seesee/jottery/models"
)

type clientPairingService struct {
	repos      *store.Repositories
	adapter    adapter.ServerAdapter
	keyManager *crypto.KeyManager
}

// NewClientPairingService constructs a ClientPairingService over the local
// repositories, server transport, and key manager.
func NewClientPairingService(repos *store.Repositories, serverAdapter adapter.ServerAdapter, keyManager *crypto.KeyManager) ClientPairingService {
	return &clientPairingService{repos: repos, adapter: serverAdapter, keyManager: keyManager}
}

// Register implements ClientPairingService.
func (s *clientPairingService) Register(ctx context.Context, endpoint, deviceName, deviceType string) (models.CredentialExport, error) {
	global, err := s.repos.Sync.GetGlobal(ctx)
	if err != nil {
		return models.CredentialExport{}, fmt.Errorf("service: load sync metadata: %w", err)
	}
	if global.APIKey.Kind != models.APIKeyAbsent {
		return models.CredentialExport{}, ErrAlreadyRegistered
	}

	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.CredentialExport{}, err
	}

	resp, err := s.adapter.Register(ctx, models.RegisterRequest{DeviceName: deviceName, DeviceType: deviceType})
	if err != nil {
		return models.CredentialExport{}, fmt.Errorf("service: register with sync server: %w", err)
	}

	encryptedKey, err := crypto.SealString(key, resp.APIKey)
	if err != nil {
		return models.CredentialExport{}, fmt.Errorf("service: seal bearer key: %w", err)
	}

	global.ClientID = resp.ClientID
	global.SyncEndpoint = endpoint
	global.SyncEnabled = true
	global.APIKey = models.APIKeyState{Kind: models.APIKeyEncrypted, Encrypted: encryptedKey}

	if err := s.repos.Sync.SaveGlobal(ctx, global); err != nil {
		return models.CredentialExport{}, fmt.Errorf("service: save sync metadata: %w", err)
	}

	meta, ok := s.keyManager.Metadata()
	if !ok {
		return models.CredentialExport{}, crypto.ErrNotInitialized
	}

	return models.CredentialExport{
		Endpoint: endpoint,
		ClientID: resp.ClientID,
		APIKey:   resp.APIKey,
		Salt:     base64.StdEncoding.EncodeToString(meta.Salt),
	}, nil
}

// ImportCredential implements ClientPairingService.
func (s *clientPairingService) ImportCredential(ctx context.Context, export models.CredentialExport, password string) error {
	if export.Endpoint == "" || export.ClientID == "" || export.APIKey == "" || export.Salt == "" {
		return ErrIncompleteCredentialExport
	}

	salt, err := base64.StdEncoding.DecodeString(export.Salt)
	if err != nil {
		return fmt.Errorf("service: decode credential salt: %w", err)
	}

	meta := models.EncryptionMetadata{
		Salt:       salt,
		Iterations: crypto.DefaultIterations,
		Algorithm:  crypto.Algorithm,
	}

	s.keyManager.Restore(meta)
	if err := s.keyManager.Unlock(password, nil); err != nil {
		return fmt.Errorf("service: unlock with imported credential: %w", err)
	}

	if err := s.repos.EncryptionMeta.Save(ctx, meta); err != nil {
		return fmt.Errorf("service: save encryption metadata: %w", err)
	}

	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return err
	}

	encryptedKey, err := crypto.SealString(key, export.APIKey)
	if err != nil {
		return fmt.Errorf("service: seal imported bearer key: %w", err)
	}

	global := models.GlobalSyncMeta{
		ClientID:     export.ClientID,
		SyncEndpoint: export.Endpoint,
		SyncEnabled:  true,
		APIKey:       models.APIKeyState{Kind: models.APIKeyEncrypted, Encrypted: encryptedKey},
	}
	if err := s.repos.Sync.SaveGlobal(ctx, global); err != nil {
		return fmt.Errorf("service: save sync metadata: %w", err)
	}

	s.adapter.SetAPIKey(export.APIKey)

	return nil
}

// ExportCredential implements ClientPairingService.
func (s *clientPairingService) ExportCredential(ctx context.Context) (models.CredentialExport, error) {
	global, err := s.repos.Sync.GetGlobal(ctx)
	if err != nil {
		return models.CredentialExport{}, fmt.Errorf("service: load sync metadata: %w", err)
	}
	if global.APIKey.Kind == models.APIKeyAbsent {
		return models.CredentialExport{}, ErrNotRegistered
	}

	key, err := s.keyManager.GetMasterKey()
	if err != nil {
		return models.CredentialExport{}, err
	}

	var apiKey string
	switch global.APIKey.Kind {
	case models.APIKeyPendingImport:
		apiKey = global.APIKey.Plaintext
	default:
		apiKey, err = crypto.OpenString(key, global.APIKey.Encrypted)
		if err != nil {
			return models.CredentialExport{}, fmt.Errorf("service: decrypt bearer key: %w", err)
		}
	}

	meta, ok := s.keyManager.Metadata()
	if !ok {
		return models.CredentialExport{}, crypto.ErrNotInitialized
	}

	return models.CredentialExport{
		Endpoint: global.SyncEndpoint,
		ClientID: global.ClientID,
		APIKey:   apiKey,
		Salt:     base64.StdEncoding.EncodeToString(meta.Salt),
	}, nil
}

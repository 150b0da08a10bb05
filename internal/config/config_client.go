// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client's sync transport.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the sync server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound sync requests.
	RequestTimeout time.Duration
}

// ClientDB contains the local SQLite store path.
type ClientDB struct {
	// DSN is the filesystem path to the client's local SQLite database.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the auto-sync ticker runs.
	SyncInterval time.Duration
	// AutoLockTimeout defines how long the vault may sit idle before the
	// key manager wipes the master key.
	AutoLockTimeout time.Duration
	// PurgeInterval defines how often soft-deleted notes past retention
	// are permanently purged.
	PurgeInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Version is the client binary's reported version.
	Version string
	// Adapter contains the sync endpoint address and timeout.
	Adapter ClientAdapter
	// Storage contains local store settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Version: cfg.App.Version,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			AutoLockTimeout: cfg.Workers.AutoLockTimeout,
			PurgeInterval:   cfg.Workers.PurgeInterval,
		},
	}

	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = "jottery-client.db"
	}

	return clientCfg, clientCfg.validate()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RegisteredClient is the server-side record of a device that registered
// via POST /api/v1/auth/register. The raw bearer key is never stored —
// only its SHA-256 hash.
type RegisteredClient struct {
	ID         string    `json:"id"`
	APIKeyHash string    `json:"-"`
	DeviceName string    `json:"deviceName"`
	DeviceType string    `json:"deviceType"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	Active     bool      `json:"-"`
}

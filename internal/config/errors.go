// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// ErrInvalidStorageConfigs indicates an invalid client storage DSN (empty,
// or an in-memory SQLite DSN, which can't survive a process restart).
var ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

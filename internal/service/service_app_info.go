// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/seesee/jottery/internal/logger"
)

// appInfoService is the concrete implementation of AppInfoService. It
// holds the application version string read from configuration at
// startup.
type appInfoService struct {
	appVersion string
	logger     *logger.Logger
}

// NewAppInfoService constructs an AppInfoService from the running binary's
// version string. Returns ErrVersionIsNotSpecified if version is empty, so
// the application fails fast at startup rather than serving an empty
// version field.
func NewAppInfoService(version string, log *logger.Logger) (AppInfoService, error) {
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{appVersion: version, logger: log}, nil
}

// GetAppVersion returns the semantic version string of the running
// application. Safe for concurrent use.
func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.appVersion
}

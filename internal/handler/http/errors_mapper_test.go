// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seesee/jottery/internal/app"
	"github.com/seesee/jottery/internal/server/store"
	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/internal/validators"
)

func TestResponseFromError_KnownSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},
		{"server note not found", service.ErrServerNoteNotFound, http.StatusNotFound, app.MsgNoteNotFound},
		{"client not found", store.ErrClientNotFound, http.StatusUnauthorized, app.MsgClientNotFound},
		{"duplicate api key", store.ErrDuplicateAPIKey, http.StatusConflict, app.MsgDuplicateAPIKey},
		{"version conflict", store.ErrVersionConflict, http.StatusConflict, app.MsgVersionConflict},
		{"lock timeout", store.ErrLockTimeout, http.StatusServiceUnavailable, app.MsgLockTimeout},
		{"unsupported type", validators.ErrUnsupportedType, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"invalid note id", validators.ErrInvalidNoteID, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"empty notes", validators.ErrEmptyNotes, http.StatusBadRequest, app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := responseFromError(tt.err)
			assert.Equal(t, tt.wantStatus, resp.status)
			assert.Equal(t, tt.wantMsg, resp.message)
		})
	}
}

func TestResponseFromError_WrappedErrorStillMatches(t *testing.T) {
	wrapped := fmt.Errorf("validation error at index 0: %w", validators.ErrInvalidNoteID)

	resp := responseFromError(wrapped)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestResponseFromError_UnknownErrorMapsToInternalServerError(t *testing.T) {
	resp := responseFromError(errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.Equal(t, app.MsgInternalServerError, resp.message)
}

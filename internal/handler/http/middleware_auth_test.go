// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/internal/utils"
	"github.com/seesee/jottery/models"
)

func TestAuth_MissingHeaderReturnsUnauthorized(t *testing.T) {
	services, _, _, _ := newTestServices()
	h := testHandler(services)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestAuth_MalformedHeaderReturnsUnauthorized(t *testing.T) {
	services, _, _, _ := newTestServices()
	h := testHandler(services)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	req.Header.Set("Authorization", "Bearer")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_EmptyTokenReturnsUnauthorized(t *testing.T) {
	services, _, _, _ := newTestServices()
	h := testHandler(services)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_UnknownKeyReturnsUnauthorized(t *testing.T) {
	services, _, registry, _ := newTestServices()
	registry.authenticateErr = service.ErrUnauthorized
	h := testHandler(services)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	req.Header.Set("Authorization", "Bearer opaque-key")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Len(t, registry.authenticatedKeys, 1)
	assert.Equal(t, "opaque-key", registry.authenticatedKeys[0])
}

func TestAuth_ValidKeyStoresClientIDInContext(t *testing.T) {
	services, _, registry, _ := newTestServices()
	registry.authenticateClient = models.RegisteredClient{ID: "client-1"}
	h := testHandler(services)

	var gotClientID string
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID, ok = utils.GetClientIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	req.Header.Set("Authorization", "Bearer opaque-key")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, ok)
	assert.Equal(t, "client-1", gotClientID)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "missing token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

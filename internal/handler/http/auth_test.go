// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/models"
)

func registerRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(raw))
}

func TestRegister_InvalidJSON(t *testing.T) {
	services, _, _, _ := newTestServices()
	h := testHandler(services)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()

	h.register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_EmptyDeviceNameFailsValidation(t *testing.T) {
	services, _, _, _ := newTestServices()
	h := testHandler(services)

	req := registerRequest(t, models.RegisterRequest{DeviceName: "", DeviceType: "laptop"})
	rr := httptest.NewRecorder()

	h.register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_Success(t *testing.T) {
	services, _, registry, _ := newTestServices()
	registry.registerResp = models.RegisterResponse{
		APIKey:    "opaque-key",
		ClientID:  "client-1",
		CreatedAt: time.Now(),
	}
	h := testHandler(services)

	req := registerRequest(t, models.RegisterRequest{DeviceName: "laptop", DeviceType: "desktop"})
	rr := httptest.NewRecorder()

	h.register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "opaque-key", resp.APIKey)
	assert.Equal(t, "client-1", resp.ClientID)
}

func TestRegister_ServiceErrorIsMapped(t *testing.T) {
	services, _, registry, _ := newTestServices()
	registry.registerErr = service.ErrUnauthorized
	h := testHandler(services)

	req := registerRequest(t, models.RegisterRequest{DeviceName: "laptop"})
	rr := httptest.NewRecorder()

	h.register(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

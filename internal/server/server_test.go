// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/config"
	"github.com/seesee/jottery/internal/handler"
	"github.com/seesee/jottery/internal/logger"
)

func TestNewServer_NoHTTPHandlerReturnsError(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_WithHTTPHandler(t *testing.T) {
	cfg := config.Server{HTTPAddress: freeAddr(t), RequestTimeout: time.Second}

	handlers, err := handler.NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)

	s, err := NewServer(handlers, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestServer_RunAndShutdown(t *testing.T) {
	// RunServer blocks until the process receives SIGTERM/SIGINT/SIGQUIT
	// (it installs its own signal.NotifyContext), so this test only
	// exercises Shutdown's direct effect on the underlying HTTP listener
	// rather than RunServer's OS-signal-driven return path.
	addr := freeAddr(t)
	cfg := config.Server{HTTPAddress: addr, RequestTimeout: time.Second}

	handlers, err := handler.NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)

	s, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	go s.RunServer()

	waitForListener(t, addr)

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Shutdown()

	assert.Eventually(t, func() bool {
		_, err := http.Get("http://" + addr + "/health")
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

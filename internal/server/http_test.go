// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seesee/jottery/internal/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// waitForListener polls until addr accepts TCP connections or the deadline
// passes, since http.Server.ListenAndServe binds asynchronously in the
// goroutine started by the test.
func waitForListener(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server at %s never started listening", addr)
}

func TestHTTPServer_RunAndShutdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	addr := freeAddr(t)
	srv := newHTTPServer(mux, config.Server{HTTPAddress: addr, RequestTimeout: time.Second})

	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	waitForListener(t, addr)

	resp, err := http.Get("http://" + addr + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv.Shutdown()
	<-done
}

func TestHTTPServer_ShutdownIsSafeWhenNeverStarted(t *testing.T) {
	srv := newHTTPServer(http.NewServeMux(), config.Server{HTTPAddress: freeAddr(t)})
	assert.NotPanics(t, func() { srv.Shutdown() })
}

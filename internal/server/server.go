// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/seesee/jottery/internal/config"
	"github.com/seesee/jottery/internal/handler"
	"github.com/seesee/jottery/internal/logger"
)

type server struct {
	httpServer *httpServer
}

// NewServer constructs the [Server] that will run the sync server's HTTP
// transport, wiring the handler's router into a stdlib *http.Server tuned
// by cfg.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg),
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		fmt.Printf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		s.httpServer.Shutdown()
		close(idleConnectionsClosed)
	}()

	fmt.Println("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	fmt.Println("server Shutdown gracefully")

	return nil
}

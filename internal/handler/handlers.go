// Package handler provides initialization logic for the inbound HTTP
// transport used by the Jottery sync server. The package exposes a
// Handlers struct bundling the HTTP handler implementation so it can be
// started uniformly by the application's main entrypoint.
package handler

import (
	"github.com/seesee/jottery/internal/config"
	"github.com/seesee/jottery/internal/handler/http"
	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/service"
)

// Handlers groups all initialized inbound transport handlers. The main
// application uses this structure to start the appropriate servers based
// on configuration.
type Handlers struct {
	// HTTP contains the initialized HTTP handler, if HTTP is enabled in
	// the configuration. If HTTP is disabled, this field remains nil.
	HTTP *http.Handler
}

// NewHandlers constructs the Handlers bundle from the provided service
// layer, server configuration, and logger.
//
// If cfg.HTTPAddress is empty, no handler is created and the function
// returns errNoHandlersAreCreated, failing fast rather than starting an
// application that serves nothing.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger, cfg.MaxPayloadSize)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

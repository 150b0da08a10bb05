// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init constructs and returns a fully configured [chi.Mux] router that
// serves all API endpoints of the sync server.
//
// # Global middleware
//
// Every request passes through the following middleware chain in order:
//   - [middleware.Recoverer] — catches panics in handlers, logs the stack
//     trace, and returns HTTP 500 to the client so the server stays alive.
//   - [Handler.withTraceID] — resolves or generates a trace ID and stores
//     an enriched logger in the request context for structured tracing.
//   - withLogging — emits a structured access-log entry (URI, method,
//     status, duration, response size) after each request completes.
//   - withGZip — transparently decompresses gzip-encoded request bodies and
//     compresses response bodies for clients that advertise gzip support.
//   - [Handler.withMaxPayloadSize] — rejects request bodies larger than the
//     configured maximum, returning HTTP 413.
//
// # Route groups
//
//	/health                       — liveness probe (public).
//
//	/api/v1/auth
//	  POST /register              — register a new device, receive a
//	                                 bearer API key (public).
//
//	/api/v1/sync                  — requires a valid bearer key via [Handler.auth]:
//	  POST /push                  — submit opaque client-encrypted notes.
//	  POST /pull                  — fetch notes/deletions since last sync.
//	  GET  /status                — report the server's view of sync state.
//	  DELETE /notes/{id}          — hard-delete a note (admin/compliance).
//
//	/api/v1/version                — report the server's version (public).
//
// # Method-not-allowed behaviour
//
// [CheckHTTPMethod] is registered as the MethodNotAllowed handler. It
// overrides chi's default HTTP 405 response and returns HTTP 404 instead,
// preventing callers from discovering which HTTP methods are supported on
// a given route through error-code enumeration.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withLogging, withGZip, h.withMaxPayloadSize)

	router.Get("/health", h.health)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.register)
		})

		api.Route("/sync", func(sync chi.Router) {
			sync.Use(h.auth)

			sync.Post("/push", h.push)
			sync.Post("/pull", h.pull)
			sync.Get("/status", h.status)
			sync.Delete("/notes/{id}", h.deleteNote)
		})

		api.Route("/version", func(version chi.Router) {
			version.Get("/", h.version)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// Jottery server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgEmptyAuthorizationHeader is returned when a protected endpoint is
	// called without an Authorization header.
	MsgEmptyAuthorizationHeader = "authorization header is required"

	// MsgInvalidAuthorizationHeader is returned when the Authorization
	// header is present but does not follow the "Bearer <key>" format.
	MsgInvalidAuthorizationHeader = "invalid authorization header"

	// MsgUnauthorized is returned when a bearer API key does not resolve
	// to an active registered client.
	MsgUnauthorized = "invalid or revoked api key"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents device registration.
	MsgRegistrationFailed = "device registration failed"

	// MsgDuplicateAPIKey is returned on the astronomically unlikely event
	// that a freshly generated API key hash collides with an existing one.
	MsgDuplicateAPIKey = "could not allocate a unique api key, please retry"

	// MsgNoteNotFound is returned when a sync operation references a note
	// ID that does not exist for the authenticated client.
	MsgNoteNotFound = "note not found"

	// MsgVersionConflict is returned when a write is rejected because the
	// note's ModifiedAt is not after the server's recorded ServerModifiedAt;
	// the client should pull before retrying.
	MsgVersionConflict = "version conflict, please pull before retrying"

	// MsgLockTimeout is returned when a concurrent write to the same note
	// could not acquire its lock within the bounded wait window.
	MsgLockTimeout = "note is locked by a concurrent write, please retry"

	// MsgPayloadTooLarge is returned when a request body exceeds the
	// configured maximum payload size.
	MsgPayloadTooLarge = "request payload too large"

	// MsgClientNotFound is returned when an admin/compliance operation
	// references a client ID that is not registered.
	MsgClientNotFound = "client not found"
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrVersionIsNotSpecified is returned by NewAppInfoService when the
	// configured version string is empty, so a server fails fast at
	// startup rather than serving an empty version field.
	ErrVersionIsNotSpecified = errors.New("service: app version is not specified")

	// ErrUnauthorized is returned when a bearer API key does not resolve
	// to an active registered client.
	ErrUnauthorized = errors.New("service: unauthorized")

	// ErrServerNoteNotFound is returned when a note ID does not resolve to
	// a server-stored note for the given client.
	ErrServerNoteNotFound = errors.New("service: note not found")
)

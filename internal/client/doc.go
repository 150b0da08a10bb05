// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the non-interactive client application
// runtime.
//
// It wires the local encrypted store, the client-side service container,
// and sync-server transport into a small set of one-shot subcommands plus
// a long-running daemon mode for background synchronization.
package client

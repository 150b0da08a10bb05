// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the server-side persistence layer: registered clients
// and the per-client notes they have pushed, plus attachment blobs.
//
// Two backends are supported behind the same [ServerStore] interface.
// SQLite is the zero-config default (a single file, created on first run);
// Postgres is selected automatically when DATABASE_URL uses a postgres://
// scheme, for deployments that want a shared, horizontally-accessible
// database. The two backends are built from the same queries wherever
// possible, diverging only where placeholder syntax or locking primitives
// require it (squirrel's sq.Question for SQLite vs sq.Dollar for Postgres;
// an in-process keyed mutex standing in for SQLite's lack of row-level
// locks vs a real SELECT ... FOR UPDATE under Postgres).
package store

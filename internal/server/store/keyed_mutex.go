// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"
)

// keyedMutex hands out one capacity-1 channel per key to serialize access
// to that key without blocking unrelated keys. Channels are created lazily
// and never removed, so memory is bounded by the number of distinct keys
// ever locked (distinct note IDs for a modestly sized vault), not by
// request volume.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// Lock blocks until the named lock is acquired or ctx is done, whichever
// comes first. The returned unlock func must be called exactly once when
// err is nil.
func (k *keyedMutex) Lock(ctx context.Context, key string) (unlock func(), err error) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]chan struct{})
	}
	ch, ok := k.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[key] = ch
	}
	k.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	}
}

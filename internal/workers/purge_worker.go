// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/seesee/jottery/internal/logger"
)

// PurgeFunc permanently removes every note soft-deleted before cutoff,
// returning the count removed. It is satisfied by
// [github.com/seesee/jottery/internal/service.ClientNoteService.PurgeOld].
type PurgeFunc func(ctx context.Context, cutoff time.Time) (int, error)

// purgeWorker periodically sweeps soft-deleted notes past their retention
// window. It implements [Worker]: Run launches a background ticker
// goroutine and returns immediately, so it can be aggregated alongside
// other workers in a [Workers] without blocking them.
type purgeWorker struct {
	purge     PurgeFunc
	interval  time.Duration
	retention time.Duration
	logger    *logger.Logger

	cancel context.CancelFunc
}

// NewPurgeWorker constructs a Worker that calls purge every interval,
// targeting notes soft-deleted more than retention ago. A non-positive
// interval defaults to one hour; a non-positive retention defaults to 30
// days.
func NewPurgeWorker(purge PurgeFunc, interval, retention time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &purgeWorker{purge: purge, interval: interval, retention: retention, logger: log}
}

// Run implements Worker. It starts a background ticker goroutine that
// calls purge once immediately and then on every tick, until Stop is
// called.
func (w *purgeWorker) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		w.sweep(ctx)

		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.sweep(ctx)
			}
		}
	}()
}

// Stop cancels the background sweep goroutine. Safe to call when Run has
// not been called yet.
func (w *purgeWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *purgeWorker) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-w.retention)
	n, err := w.purge(ctx, cutoff)
	if err != nil {
		w.logger.Err(err).Msg("purge worker: sweep failed")
		return
	}
	if n > 0 {
		w.logger.Info().Int("count", n).Msg("purge worker: removed old deleted notes")
	}
}

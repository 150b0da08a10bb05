// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seesee/jottery/internal/logger"
)

func TestPurgeWorker_Run_SweepsImmediatelyAndOnTick(t *testing.T) {
	var calls int32
	purge := func(_ context.Context, _ time.Time) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, nil
	}

	w := NewPurgeWorker(purge, 20*time.Millisecond, time.Hour, logger.NewLogger("test"))
	pw := w.(*purgeWorker)
	w.Run()
	defer pw.Stop()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&calls) >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if atomic.LoadInt32(&calls) < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", calls)
	}
}

func TestPurgeWorker_Run_StopEndsSweeping(t *testing.T) {
	var calls int32
	purge := func(_ context.Context, _ time.Time) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, nil
	}

	w := NewPurgeWorker(purge, 10*time.Millisecond, time.Hour, logger.NewLogger("test"))
	pw := w.(*purgeWorker)
	w.Run()
	time.Sleep(15 * time.Millisecond)
	pw.Stop()

	afterStop := atomic.LoadInt32(&calls)
	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt32(&calls) > afterStop+1 {
		t.Fatalf("expected sweeping to stop, calls grew from %d to %d", afterStop, calls)
	}
}

func TestPurgeWorker_DefaultsAppliedForNonPositiveDurations(t *testing.T) {
	w := NewPurgeWorker(func(context.Context, time.Time) (int, error) { return 0, nil }, 0, 0, logger.NewLogger("test"))
	pw := w.(*purgeWorker)

	if pw.interval != time.Hour {
		t.Fatalf("expected default interval of 1h, got %v", pw.interval)
	}
	if pw.retention != 30*24*time.Hour {
		t.Fatalf("expected default retention of 30 days, got %v", pw.retention)
	}
}

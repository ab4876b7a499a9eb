// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"context"

	"code.hybscloud.com/atomix"
	"golang.org/x/sync/semaphore"
)

// Semaphore is a counting semaphore with a fixed ceiling.
//
// Waiters park in FIFO order; there is no busy-waiting. The count never
// exceeds the capacity given at construction, so a Signal without a matching
// Wait indicates a protocol error and panics.
type Semaphore struct {
	w     *semaphore.Weighted
	cap   int
	avail atomix.Int64
}

// NewSemaphore creates a semaphore holding initial permits out of capacity.
// initial is clamped to [0, capacity].
func NewSemaphore(capacity, initial int) *Semaphore {
	if capacity < 1 {
		panic("bbuf: semaphore capacity must be >= 1")
	}
	initial = min(max(initial, 0), capacity)

	s := &Semaphore{
		w:   semaphore.NewWeighted(int64(capacity)),
		cap: capacity,
	}
	// Missing permits are held by the semaphore itself.
	if held := capacity - initial; held > 0 && !s.w.TryAcquire(int64(held)) {
		panic("bbuf: semaphore failed to reserve held permits")
	}
	s.avail.Store(int64(initial))
	return s
}

// Wait blocks until a permit is available and takes it.
func (s *Semaphore) Wait() {
	// Acquire only fails on context cancellation.
	_ = s.w.Acquire(context.Background(), 1)
	s.avail.Add(-1)
}

// TryWait takes a permit without blocking.
// Returns nil on success, ErrWouldBlock if none is available.
func (s *Semaphore) TryWait() error {
	if !s.w.TryAcquire(1) {
		return ErrWouldBlock
	}
	s.avail.Add(-1)
	return nil
}

// Signal returns one permit and wakes the oldest waiter, if any.
func (s *Semaphore) Signal() {
	// Counted before the release so a woken waiter never drives it negative.
	s.avail.Add(1)
	s.w.Release(1)
}

// Available returns the number of permits not currently taken.
// Under concurrent use the value is a snapshot and may lag a Wait in
// progress by one permit per waiter.
func (s *Semaphore) Available() int {
	return int(min(max(s.avail.Load(), 0), int64(s.cap)))
}

// Cap returns the semaphore's ceiling.
func (s *Semaphore) Cap() int {
	return s.cap
}

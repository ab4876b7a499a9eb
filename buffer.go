// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Buffer is a bounded producer/consumer ring.
//
// A Buffer is created once per run and shared by pointer with every worker.
// All ring state is reached through the guard; flow control between full and
// empty slots goes through two semaphores that are never waited on while the
// guard is held.
//
// Memory: one Slot (16 bytes) per unit of capacity plus padded cursors
type Buffer struct {
	guard   Guard
	empty   *Semaphore // free slots
	full    *Semaphore // slots holding an item or a sentinel
	ring    ring
	stats   counters
	metrics *metrics
	delay   int
	sink    int // result of the critical-section delay loop
	once    sync.Once
}

// counters are written only inside the guard.
type counters struct {
	produced   atomix.Int64
	consumed   atomix.Int64
	terminated atomix.Int64
}

// NewBuffer validates cfg and returns a buffer with every slot empty.
// The returned buffer records no Prometheus metrics; use [Builder.Registerer]
// for that.
func NewBuffer(cfg Config) (*Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBuffer(cfg, nil), nil
}

func newBuffer(cfg Config, m *metrics) *Buffer {
	return &Buffer{
		guard:   NewGuard(cfg.Strategy),
		empty:   NewSemaphore(cfg.BufferSize, cfg.BufferSize),
		full:    NewSemaphore(cfg.BufferSize, 0),
		ring:    newRing(cfg.BufferSize, cfg.Limit),
		metrics: m,
		delay:   cfg.Delay,
	}
}

// Cap returns the number of slots.
func (b *Buffer) Cap() int {
	return b.ring.cap()
}

// Len returns the number of items currently in the ring.
// Sentinels are not counted. The result is a snapshot.
func (b *Buffer) Len() int {
	b.guard.Acquire()
	n := b.ring.len()
	b.guard.Release()
	return n
}

// Stats returns a snapshot of the buffer's counters.
func (b *Buffer) Stats() Stats {
	b.guard.Acquire()
	s := Stats{
		Produced:   b.stats.produced.Load(),
		Consumed:   b.stats.consumed.Load(),
		Terminated: b.stats.terminated.Load(),
	}
	b.guard.Release()
	return s
}

// hold runs the configured critical-section delay.
// Must be called with the guard held.
func (b *Buffer) hold() {
	if b.delay <= 0 {
		return
	}
	acc := b.sink
	for i := range b.delay {
		acc += i
	}
	b.sink = acc
}

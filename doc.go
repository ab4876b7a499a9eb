// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bbuf provides a bounded producer/consumer buffer with blocking
// flow control and a deterministic shutdown handshake.
//
// A [Buffer] is a fixed-capacity ring shared by any number of producer and
// consumer goroutines. Producers claim values from a single shared counter
// (0, 1, 2, ...) and stop at a configured limit. Consumers remove values in
// ring order. Every item produced is consumed exactly once.
//
// # Quick Start
//
// Run a complete producer/consumer session:
//
//	rep, err := bbuf.New(4).Producers(2).Consumers(3).Limit(10).Run()
//	if err != nil {
//	    return err // *UsageError for invalid configuration
//	}
//	fmt.Println(rep) // Elapsed Time: 0.00 seconds
//
// Or drive the buffer directly:
//
//	b, err := bbuf.New(64).Limit(1000).Blocking().Build()
//
//	go func() { // producer
//	    for {
//	        if _, ok := b.Produce(); !ok {
//	            return
//	        }
//	    }
//	}()
//
//	// ... once every producer has returned:
//	b.Terminate()
//
// # Synchronization
//
// Three primitives cooperate on each operation:
//
//	empty Semaphore - free slots, starts at capacity
//	full  Semaphore - filled slots, starts at 0
//	Guard           - mutual exclusion over the ring cursors and counter
//
// A producer waits on empty, enters the guard, writes, leaves the guard and
// signals full. A consumer does the mirror image. A semaphore is never waited
// on while the guard is held.
//
// # Lock Strategies
//
// The guard is chosen once per buffer:
//
//	Spinning - SpinGuard, CAS with CPU pause hints; never parks (default)
//	Blocking - MutexGuard, sync.Mutex; contended callers park
//
// Both satisfy [Guard]; call sites do not branch on the strategy.
//
// # Shutdown
//
// When every producer has returned, [Buffer.Terminate] writes one
// termination sentinel into each slot of the ring. A consumer that finds a
// sentinel at the read cursor leaves it in place, hands its full permit back
// and exits. The returned permit lets the next consumer observe the same
// sentinel, so any number of consumers terminate, including more consumers
// than slots.
//
// # Error Handling
//
// Configuration problems are reported as [*UsageError], which matches
// [ErrInvalidConfig] under errors.Is. Non-blocking attempts return
// [ErrWouldBlock], sourced from [code.hybscloud.com/iox]:
//
//	if err := guard.TryAcquire(); bbuf.IsWouldBlock(err) {
//	    // held by another goroutine
//	}
//
// [IsSemantic] and [IsNonFailure] classify those results the same way
// the rest of the iox ecosystem does: ErrWouldBlock is a flow signal, a
// UsageError is a failure.
//
// # Race Detection
//
// SpinGuard synchronizes through [code.hybscloud.com/atomix] orderings that
// the race detector cannot observe. Ring accesses guarded by a SpinGuard may
// be reported as races under -race; tests using the spinning strategy
// concurrently are excluded via [RaceEnabled]. MutexGuard runs are fully
// visible to the detector.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for counters and the spin
// lock word, [code.hybscloud.com/spin] for CPU pause while spinning,
// [code.hybscloud.com/iox] for semantic errors, [golang.org/x/sync] for
// counting semaphores and worker groups, and Prometheus client_golang for
// optional metrics.
package bbuf

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"fmt"
	"strings"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// LockStrategy selects the Guard implementation for a buffer.
type LockStrategy uint8

const (
	// Spinning busy-polls with CPU pause hints (SpinGuard).
	Spinning LockStrategy = iota
	// Blocking parks contended goroutines (MutexGuard).
	Blocking
)

func (s LockStrategy) String() string {
	switch s {
	case Spinning:
		return "spin"
	case Blocking:
		return "mutex"
	default:
		return fmt.Sprintf("LockStrategy(%d)", uint8(s))
	}
}

// ParseLockStrategy accepts "spin", "spinning", "mutex" or "blocking",
// case-insensitively.
func ParseLockStrategy(s string) (LockStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spin", "spinning", "spinlock":
		return Spinning, nil
	case "mutex", "blocking":
		return Blocking, nil
	}
	return 0, fmt.Errorf("bbuf: unknown lock strategy %q", s)
}

// NewGuard returns the Guard for strategy s.
// Unknown strategies fall back to Spinning.
func NewGuard(s LockStrategy) Guard {
	if s == Blocking {
		return &MutexGuard{}
	}
	return &SpinGuard{}
}

// MutexGuard is a Guard backed by sync.Mutex.
// Contended callers are parked by the runtime.
type MutexGuard struct {
	mu sync.Mutex
}

// Acquire locks the mutex.
func (g *MutexGuard) Acquire() {
	g.mu.Lock()
}

// Release unlocks the mutex.
func (g *MutexGuard) Release() {
	g.mu.Unlock()
}

// TryAcquire locks the mutex if it is free.
func (g *MutexGuard) TryAcquire() error {
	if !g.mu.TryLock() {
		return ErrWouldBlock
	}
	return nil
}

// SpinGuard is a test-and-test-and-set spin lock.
//
// A contended caller keeps polling the lock word with CPU pause hints and is
// never parked. Cheap under light contention; burns CPU under heavy
// contention.
type SpinGuard struct {
	_     cpu.CacheLinePad
	state atomix.Uint64 // 0 = free, 1 = held
	_     cpu.CacheLinePad
}

// Acquire spins until the guard is held by the caller.
func (g *SpinGuard) Acquire() {
	sw := spin.Wait{}
	for {
		if g.state.LoadRelaxed() == 0 && g.state.CompareAndSwapAcqRel(0, 1) {
			return
		}
		sw.Once()
	}
}

// Release frees the guard. Panics if the guard is not held.
func (g *SpinGuard) Release() {
	if !g.state.CompareAndSwapAcqRel(1, 0) {
		panic("bbuf: release of unlocked SpinGuard")
	}
}

// TryAcquire takes the guard if it is free.
func (g *SpinGuard) TryAcquire() error {
	if !g.state.CompareAndSwapAcqRel(0, 1) {
		return ErrWouldBlock
	}
	return nil
}

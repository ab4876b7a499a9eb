// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import "strconv"

// Guard serializes access to a buffer's critical section.
//
// Release must be called exactly once by the goroutine that acquired, on
// every exit path. Implementations are interchangeable at the call site.
type Guard interface {
	// Acquire blocks until the caller has exclusive access.
	Acquire()

	// Release relinquishes exclusive access.
	Release()

	// TryAcquire acquires without waiting.
	// Returns nil on success, ErrWouldBlock if the guard is held.
	TryAcquire() error
}

type slotKind uint8

const (
	slotTerminate slotKind = iota // zero value: an unwritten slot is a sentinel
	slotItem
)

// Slot is one ring cell: either an item or the termination sentinel.
//
// The zero Slot is the sentinel, so a freshly allocated ring reads as
// "terminated" everywhere. Any int, including negative values, is a valid
// item and never collides with the sentinel.
type Slot struct {
	value int
	kind  slotKind
}

// Item returns a slot holding v.
func Item(v int) Slot {
	return Slot{value: v, kind: slotItem}
}

// Terminate returns the termination sentinel.
func Terminate() Slot {
	return Slot{}
}

// IsTerminate reports whether s is the sentinel.
func (s Slot) IsTerminate() bool {
	return s.kind == slotTerminate
}

// Value returns the item and true, or (0, false) for the sentinel.
func (s Slot) Value() (int, bool) {
	if s.kind != slotItem {
		return 0, false
	}
	return s.value, true
}

func (s Slot) String() string {
	if s.kind != slotItem {
		return "Terminate"
	}
	return "Item(" + strconv.Itoa(s.value) + ")"
}

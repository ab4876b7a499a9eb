// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import "golang.org/x/sys/cpu"

// ring is the state shared by every worker of a run.
//
// ring has no synchronization of its own. Every method must be called with
// the owning Buffer's guard held.
type ring struct {
	_       cpu.CacheLinePad
	write   int // next slot a producer or the coordinator fills
	next    int // shared production counter
	_       cpu.CacheLinePad
	read    int // next slot a consumer inspects
	_       cpu.CacheLinePad
	items   int // occupied item slots; sentinels are not counted
	ceiling int
	slots   []Slot
}

func newRing(size, ceiling int) ring {
	return ring{
		ceiling: ceiling,
		slots:   make([]Slot, size),
	}
}

// exhausted reports whether production has reached the ceiling.
func (r *ring) exhausted() bool {
	return r.next >= r.ceiling
}

// produce writes the next counter value at the write cursor.
// The caller must have checked exhausted.
func (r *ring) produce() int {
	v := r.next
	r.next++
	r.put(Item(v))
	return v
}

func (r *ring) put(s Slot) {
	r.slots[r.write] = s
	r.write = (r.write + 1) % len(r.slots)
	if !s.IsTerminate() {
		r.items++
	}
}

func (r *ring) peek() Slot {
	return r.slots[r.read]
}

// take removes the slot at the read cursor. The cell is reset to the
// sentinel.
func (r *ring) take() Slot {
	s := r.slots[r.read]
	r.slots[r.read] = Slot{}
	r.read = (r.read + 1) % len(r.slots)
	if !s.IsTerminate() {
		r.items--
	}
	return s
}

func (r *ring) len() int {
	return r.items
}

func (r *ring) cap() int {
	return len(r.slots)
}

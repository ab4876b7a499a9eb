// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

// Produce claims the next counter value and writes it into the ring.
//
// Blocks while the ring is full. Returns (item, true) after writing, or
// (0, false) once the counter has reached the limit; the calling producer is
// done at that point and no further value is ever written. The limit check and
// the increment happen under the same guard, so the counter never passes the
// limit.
func (b *Buffer) Produce() (int, bool) {
	b.empty.Wait()

	b.guard.Acquire()
	b.hold()
	if b.ring.exhausted() {
		b.guard.Release()
		// Unused permit goes back for the other producers and the coordinator.
		b.empty.Signal()
		return 0, false
	}
	v := b.ring.produce()
	b.stats.produced.Add(1)
	b.metrics.recordProduce(b.ring.len())
	b.guard.Release()

	b.full.Signal()
	return v, true
}

// Producer is the per-goroutine parameter block for a producing worker.
type Producer struct {
	ID     int
	Buffer *Buffer
}

// Run produces until the limit is reached and returns how many items this
// producer wrote.
func (p Producer) Run() int {
	n := 0
	for {
		if _, ok := p.Buffer.Produce(); !ok {
			return n
		}
		n++
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

// Consume removes the item at the read cursor.
//
// Blocks while the ring is empty. Returns (item, true) after removing an item,
// or (0, false) when the read cursor holds a termination sentinel; the calling
// consumer is done at that point.
//
// The sentinel is left in place and the full permit is handed back rather
// than consumed, so the next waiting consumer observes the same sentinel.
func (b *Buffer) Consume() (int, bool) {
	b.full.Wait()

	b.guard.Acquire()
	b.hold()
	if b.ring.peek().IsTerminate() {
		b.stats.terminated.Add(1)
		b.guard.Release()
		b.full.Signal()
		b.metrics.recordTerminate()
		return 0, false
	}
	v, _ := b.ring.take().Value()
	b.stats.consumed.Add(1)
	b.metrics.recordConsume(b.ring.len())
	b.guard.Release()

	b.empty.Signal()
	return v, true
}

// Consumer is the per-goroutine parameter block for a consuming worker.
type Consumer struct {
	ID     int
	Buffer *Buffer

	// OnItem, if set, receives every item this consumer removes.
	// It runs outside the critical section.
	OnItem func(consumer, item int)
}

// Run consumes until a sentinel is observed and returns how many items this
// consumer removed.
func (c Consumer) Run() int {
	n := 0
	for {
		v, ok := c.Buffer.Consume()
		if !ok {
			return n
		}
		n++
		if c.OnItem != nil {
			c.OnItem(c.ID, v)
		}
	}
}

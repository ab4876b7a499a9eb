// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

// Terminate fills every slot of the ring with the termination sentinel.
//
// Call Terminate only after every producer has returned from Produce with
// ok=false; no value may be written afterwards. Each sentinel waits for a
// free slot like a regular item, so items still in the ring are consumed
// before any consumer observes a sentinel.
//
// Terminate blocks until all Cap sentinels are written, which requires at
// least one running consumer while items remain. Subsequent calls return
// immediately.
func (b *Buffer) Terminate() {
	b.once.Do(b.terminate)
}

func (b *Buffer) terminate() {
	for range b.ring.cap() {
		b.empty.Wait()
		b.guard.Acquire()
		b.ring.put(Terminate())
		b.guard.Release()
		b.full.Signal()
	}
}

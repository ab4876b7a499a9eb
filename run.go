// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run executes a complete session and blocks until every worker has exited.
//
// Sequence:
//
//  1. Build the buffer (validation errors are returned before any goroutine starts)
//  2. Start Producers producer goroutines, then Consumers consumer goroutines
//  3. Wait for every producer
//  4. Terminate the buffer
//  5. Wait for every consumer
//
// Worker IDs start at 1. There is no timeout: a run whose workers cannot
// finish does not return.
func (b *Builder) Run() (Report, error) {
	rep := Report{Config: b.cfg}
	buf, err := b.Build()
	if err != nil {
		return rep, err
	}

	log := b.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("lock", b.cfg.Strategy.String(), "buffer_size", b.cfg.BufferSize)

	start := time.Now()

	var producers, consumers errgroup.Group
	for id := 1; id <= b.cfg.Producers; id++ {
		p := Producer{ID: id, Buffer: buf}
		producers.Go(func() error {
			n := p.Run()
			log.Debug("producer exited", "producer", p.ID, "items", n)
			return nil
		})
	}
	for id := 1; id <= b.cfg.Consumers; id++ {
		c := Consumer{ID: id, Buffer: buf, OnItem: b.onItem}
		consumers.Go(func() error {
			n := c.Run()
			log.Debug("consumer exited", "consumer", c.ID, "items", n)
			return nil
		})
	}

	if err := producers.Wait(); err != nil {
		return rep, err
	}
	log.Debug("producers finished, injecting sentinels", "limit", b.cfg.Limit)
	buf.Terminate()

	if err := consumers.Wait(); err != nil {
		return rep, err
	}

	rep.Elapsed = time.Since(start)
	rep.Stats = buf.Stats()
	log.Info("run complete",
		"produced", rep.Stats.Produced,
		"consumed", rep.Stats.Consumed,
		"elapsed", rep.Elapsed,
	)
	return rep, nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Config describes one producer/consumer run.
type Config struct {
	BufferSize int          // ring slots, >= 1
	Producers  int          // producer goroutines, >= 1
	Consumers  int          // consumer goroutines, >= 1
	Limit      int          // items 0..Limit-1 are produced, >= 0
	Strategy   LockStrategy // guard implementation
	Delay      int          // busy iterations inside each critical section, >= 0
}

// Validate reports the first field that cannot start a run.
func (c Config) Validate() error {
	switch {
	case c.BufferSize < 1:
		return &UsageError{Field: "buffer_size", Value: c.BufferSize, Reason: "must be >= 1"}
	case c.Producers < 1:
		return &UsageError{Field: "num_producers", Value: c.Producers, Reason: "must be >= 1"}
	case c.Consumers < 1:
		return &UsageError{Field: "num_consumers", Value: c.Consumers, Reason: "must be >= 1"}
	case c.Limit < 0:
		return &UsageError{Field: "upper_limit", Value: c.Limit, Reason: "must be >= 0"}
	case c.Delay < 0:
		return &UsageError{Field: "delay", Value: c.Delay, Reason: "must be >= 0"}
	case c.Strategy != Spinning && c.Strategy != Blocking:
		return &UsageError{Field: "lock", Value: int(c.Strategy), Reason: "unknown lock strategy"}
	}
	return nil
}

// Builder configures buffers and runs with a fluent API.
//
// Example:
//
//	// Buffer only; caller manages goroutines
//	b, err := bbuf.New(64).Limit(1 << 20).Blocking().Build()
//
//	// Full run with 4 producers and 8 consumers
//	rep, err := bbuf.New(64).Producers(4).Consumers(8).Limit(1 << 20).Run()
type Builder struct {
	cfg    Config
	onItem func(consumer, item int)
	logger *slog.Logger
	reg    prometheus.Registerer
}

// New creates a builder for a ring of bufferSize slots.
//
// Defaults: one producer, one consumer, limit 0, Spinning strategy.
// bufferSize is validated by Build and Run, not here.
func New(bufferSize int) *Builder {
	return &Builder{cfg: Config{
		BufferSize: bufferSize,
		Producers:  1,
		Consumers:  1,
		Strategy:   Spinning,
	}}
}

// FromConfig creates a builder from an existing Config.
func FromConfig(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Producers sets the number of producer goroutines started by Run.
func (b *Builder) Producers(n int) *Builder {
	b.cfg.Producers = n
	return b
}

// Consumers sets the number of consumer goroutines started by Run.
func (b *Builder) Consumers(n int) *Builder {
	b.cfg.Consumers = n
	return b
}

// Limit sets the production ceiling: items 0..n-1 are produced.
func (b *Builder) Limit(n int) *Builder {
	b.cfg.Limit = n
	return b
}

// Strategy selects the guard implementation.
func (b *Builder) Strategy(s LockStrategy) *Builder {
	b.cfg.Strategy = s
	return b
}

// Blocking selects MutexGuard.
func (b *Builder) Blocking() *Builder {
	return b.Strategy(Blocking)
}

// Spinning selects SpinGuard.
func (b *Builder) Spinning() *Builder {
	return b.Strategy(Spinning)
}

// Delay adds n busy iterations to every critical section.
// Used to compare lock strategies under a longer hold time.
func (b *Builder) Delay(n int) *Builder {
	b.cfg.Delay = n
	return b
}

// OnItem registers a callback invoked by Run's consumers for every item.
// fn is called concurrently from all consumers, outside the critical section.
func (b *Builder) OnItem(fn func(consumer, item int)) *Builder {
	b.onItem = fn
	return b
}

// Logger sets the logger used by Run. The default discards everything.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Registerer enables Prometheus metrics, registered with reg on Build.
func (b *Builder) Registerer(reg prometheus.Registerer) *Builder {
	b.reg = reg
	return b
}

// Config returns the configuration collected so far.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build validates the configuration and creates a Buffer.
//
// Returns a *UsageError for invalid configuration, or the registration error
// if metrics were requested and could not be registered.
func (b *Builder) Build() (*Buffer, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	var m *metrics
	if b.reg != nil {
		var err error
		if m, err = newMetrics(b.reg, b.cfg.Strategy); err != nil {
			return nil, err
		}
	}
	return newBuffer(b.cfg, m), nil
}

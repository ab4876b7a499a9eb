// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking attempt could not proceed.
//
// For Guard.TryAcquire: the guard is held by another goroutine.
// For Semaphore.TryWait: no permit is available.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidConfig is matched by every [*UsageError].
var ErrInvalidConfig = errors.New("bbuf: invalid configuration")

// UsageError reports a configuration value that cannot start a run.
// No goroutine is started when a UsageError is returned.
type UsageError struct {
	Field  string
	Value  int
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("bbuf: %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns [ErrInvalidConfig].
func (e *UsageError) Unwrap() error {
	return ErrInvalidConfig
}

// IsUsage reports whether err is a configuration error.
func IsUsage(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsWouldBlock reports whether err is [ErrWouldBlock], possibly wrapped.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a flow signal from a non-blocking attempt
// rather than a fault. A [*UsageError] is never semantic.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a flow signal. Every error
// returned by [Guard.TryAcquire] and [Semaphore.TryWait] satisfies it, so
// callers polling either can treat anything else as a fault.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

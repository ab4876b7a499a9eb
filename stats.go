// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import (
	"fmt"
	"time"
)

// Stats counts the work done on a buffer.
type Stats struct {
	Produced   int64 // items written by producers
	Consumed   int64 // items removed by consumers
	Terminated int64 // consumers that observed a sentinel and exited
}

// Report summarizes a completed run.
type Report struct {
	Config  Config
	Stats   Stats
	Elapsed time.Duration // wall-clock, from first spawn to last join
}

// String formats the elapsed time in seconds with two decimals.
func (r Report) String() string {
	return fmt.Sprintf("Elapsed Time: %.2f seconds", r.Elapsed.Seconds())
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bbuf

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent SpinGuard runs, whose atomix orderings
// are invisible to the detector and produce false positives on ring fields.
const RaceEnabled = true

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package queue

// RaceEnabled is true when the race detector is active. Tests use it to
// skip concurrent linearizability checks, which the race detector flags as
// data races even though the queue's correctness rests on acquire/release
// orderings the detector doesn't model across independent atomics.
const RaceEnabled = true

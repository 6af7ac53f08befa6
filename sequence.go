// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"slices"

	"code.hybscloud.com/kont"
)

// Sequence describes a process that runs each of ds as a child until it
// reaches an end state, one after another, then ends calling onEnd. The
// sequence's end Result is the Result of the last child.
func Sequence(ds []*Descriptor, onEnd func()) *Descriptor {
	steps := slices.Clone(ds)
	return Routine(func(*Scope) kont.Eff[*Descriptor] {
		return awaitAll(steps, nil, onEnd)
	}).WithLabel("sequence")
}

// awaitAll awaits ds in order, threading the last result into the end state.
func awaitAll(ds []*Descriptor, last any, onEnd func()) kont.Eff[*Descriptor] {
	if len(ds) == 0 {
		return kont.Pure(EndState(EndProps{Result: last, OnEnd: onEnd}))
	}
	return kont.Bind(Await(ds[0]), func(o Outcome) kont.Eff[*Descriptor] {
		return awaitAll(ds[1:], o.Result, onEnd)
	})
}

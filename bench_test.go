// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/proc"
)

// BenchmarkEventWake measures one event delivery and rerun.
func BenchmarkEventWake(b *testing.B) {
	m := newMachine(b)
	ping, emit := proc.DefineEvent[int]("ping")
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		n, _ := proc.UseEvent(s, ping)
		proc.UseMemo(s, func() int { return n * 2 }, []any{n})
		return nil
	}))
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		i++
		emit.Send(m, i)
	}
}

// BenchmarkRunToEnd measures starting a chain that ends immediately.
func BenchmarkRunToEnd(b *testing.B) {
	m := newMachine(b)
	d := proc.State(func(*proc.Scope) *proc.Descriptor {
		return proc.EndState(proc.EndProps{})
	})
	b.ReportAllocs()
	for b.Loop() {
		m.Run(d)
	}
}

// BenchmarkRoutineAwait measures a routine awaiting a child end state.
func BenchmarkRoutineAwait(b *testing.B) {
	m := newMachine(b)
	child := proc.State(func(*proc.Scope) *proc.Descriptor {
		return proc.EndState(proc.EndProps{Result: 1})
	})
	d := proc.Routine(func(*proc.Scope) kont.Eff[*proc.Descriptor] {
		return kont.Bind(proc.Await(child), func(proc.Outcome) kont.Eff[*proc.Descriptor] {
			return kont.Pure(proc.EndState(proc.EndProps{}))
		})
	})
	b.ReportAllocs()
	for b.Loop() {
		m.Run(d)
	}
}

// BenchmarkSequence3 measures a three-step sequence.
func BenchmarkSequence3(b *testing.B) {
	m := newMachine(b)
	step := proc.State(func(*proc.Scope) *proc.Descriptor {
		return proc.EndState(proc.EndProps{})
	})
	b.ReportAllocs()
	for b.Loop() {
		m.Run(proc.Sequence([]*proc.Descriptor{step, step, step}, nil))
	}
}

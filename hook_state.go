// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type stateSlot[T any] struct {
	value T
	owner *process
}

// Setter writes a state slot created by UseState.
type Setter[T any] struct {
	sl *stateSlot[T]
}

// UseState returns the process's local state and its setter. initial is
// used on the first run only.
func UseState[T any](s *Scope, initial T) (T, Setter[T]) {
	sl := acquire(s, func() *stateSlot[T] {
		return &stateSlot[T]{value: initial, owner: s.p}
	})
	return sl.value, Setter[T]{sl: sl}
}

// Set replaces the state. A value that differs from the current one marks
// the process dirty so it runs again.
func (st Setter[T]) Set(v T) {
	st.sl.write(func(T) T { return v })
}

// Update replaces the state with f applied to the current value.
func (st Setter[T]) Update(f func(T) T) {
	st.sl.write(f)
}

func (sl *stateSlot[T]) write(next func(T) T) {
	sl.owner.m.turn(func() { sl.apply(next) })
}

func (sl *stateSlot[T]) apply(next func(T) T) {
	p := sl.owner
	switch p.lifecycle {
	case Idle, Effect, CleaningUp:
		if p.pendingCancel || p.cancelling {
			return
		}
		v := next(sl.value)
		if Same(v, sl.value) {
			return
		}
		sl.value = v
		p.markDirty()
	case Running:
		v := next(sl.value)
		if Same(v, sl.value) {
			return
		}
		sl.value = v
		p.m.logger.Warn("proc: state written while its step function runs; it will not run again for this write",
			"chain", p.id, "label", p.label)
	}
}

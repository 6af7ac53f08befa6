// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type memoSlot[T any] struct {
	value T
	deps  []any
}

// UseMemo returns compute's result, recomputing only when deps change.
func UseMemo[T any](s *Scope, compute func() T, deps []any) T {
	sl := acquire(s, func() *memoSlot[T] { return &memoSlot[T]{} })
	if !depsUnchanged(sl.deps, deps) {
		sl.value = compute()
		sl.deps = deps
	}
	return sl.value
}

// Ref is a mutable cell that survives runs without marking the process
// dirty.
type Ref[T any] struct {
	Current T
}

type refSlot[T any] struct {
	ref Ref[T]
}

// UseRef returns the process's ref cell, initialized on the first run.
func UseRef[T any](s *Scope, initial T) *Ref[T] {
	sl := acquire(s, func() *refSlot[T] { return &refSlot[T]{ref: Ref[T]{Current: initial}} })
	return &sl.ref
}

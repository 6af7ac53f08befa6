// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// slot is one hook's storage in a process. Slots are addressed by call
// position and keep their kind for the life of the process.
type slot interface {
	kind() string
}

func (*stateSlot[T]) kind() string { return "UseState" }
func (*effectSlot) kind() string { return "UseEffect" }
func (*eventSlot[T]) kind() string { return "UseEvent" }
func (*memoSlot[T]) kind() string { return "UseMemo" }
func (*refSlot[T]) kind() string { return "UseRef" }
func (*nestedSlot) kind() string { return "UseNested" }
func (*inspectorSlot) kind() string { return "UseInspector" }
func (*cleanupSlot) kind() string { return "OnCleanup" }

// acquire advances the hook cursor of the process behind s and returns the
// slot recorded there, allocating it with fresh on the first run.
func acquire[S slot](s *Scope, fresh func() S) S {
	var zero S
	p := s.hook(zero.kind())
	p.cursor++
	if p.cursor == len(p.slots) {
		sl := fresh()
		p.slots = append(p.slots, sl)
		return sl
	}
	sl, ok := p.slots[p.cursor].(S)
	if !ok {
		panic(&HookError{
			Index: p.cursor,
			Want:  p.slots[p.cursor].kind(),
			Got:   zero.kind(),
			Stack: p.labelStack(),
		})
	}
	return sl
}

// hook returns the process behind s after checking that it is the one
// running its step function.
func (s *Scope) hook(op string) *process {
	p := s.process(op)
	if p.m.processing != p || p.lifecycle != Running {
		panic(&UsageError{Op: op, Err: ErrNoProcess, Stack: p.labelStack()})
	}
	return p
}

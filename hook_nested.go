// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type nestedSlot struct {
	chain   ChainID
	started bool
	done    bool
	result  any
}

type inspectorSlot struct {
	h *Handle
}

// UseNested starts d as a child of the process the first time start is
// true. The child inherits the process's ambients and is canceled when the
// process transitions or ends. UseNested reports whether the child's chain
// has reached an end state and, if so, the end state's result.
func UseNested(s *Scope, start bool, d *Descriptor) (done bool, result any) {
	return useNested(s, func() *Descriptor {
		if start {
			return d
		}
		return nil
	})
}

// UseNestedFunc is UseNested with a lazily built descriptor. provider is
// called on every run until it returns a non-nil descriptor.
func UseNestedFunc(s *Scope, provider func() *Descriptor) (done bool, result any) {
	return useNested(s, provider)
}

func useNested(s *Scope, provide func() *Descriptor) (bool, any) {
	sl := acquire(s, func() *nestedSlot { return &nestedSlot{} })
	if sl.started {
		return sl.done, sl.result
	}
	d := provide()
	if d == nil {
		return false, nil
	}
	p := s.p
	child := p.m.newProcess(d, p.m.nextChainID(), p, p.overlay)
	sl.started = true
	sl.chain = child.id
	p.m.onComplete(child.id, func(result any) {
		sl.done, sl.result = true, result
		p.markDirty()
	})
	p.m.enlist(child)
	child.markDirty()
	return false, nil
}

// UseInspector returns a handle on the process's own chain.
func UseInspector(s *Scope) *Handle {
	sl := acquire(s, func() *inspectorSlot { return &inspectorSlot{} })
	if sl.h == nil {
		sl.h = &Handle{m: s.p.m, id: s.p.id}
	}
	return sl.h
}

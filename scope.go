// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Scope is the view a step function or routine has of its own process.
// Hooks take it as their first argument and are only valid while the step
// function it was passed to is running.
type Scope struct {
	p *process
}

func (s *Scope) process(op string) *process {
	if s == nil || s.p == nil {
		panic(&UsageError{Op: op, Err: ErrNoProcess})
	}
	return s.p
}

// ChainID returns the id of the chain the process belongs to.
func (s *Scope) ChainID() ChainID { return s.process("ChainID").id }

// Machine returns the machine the process runs on.
func (s *Scope) Machine() *Machine { return s.process("Machine").m }

// Props returns the props of the process's descriptor.
func (s *Scope) Props() any { return s.process("Props").desc.props }

// Cancel requests cancellation of the process. It is idempotent.
func (s *Scope) Cancel() { s.process("Cancel").cancel() }

// SetLabel replaces the process's label.
func (s *Scope) SetLabel(label string) { s.process("SetLabel").label = label }

// Labels returns the label stack from the root process down to this one.
func (s *Scope) Labels() []string { return s.process("Labels").labelStack() }

// OnCleanup registers fn to run when the process cleans up. Cleanups run in
// registration order, before effect cleanups. A cleanup registered after the
// process has cleaned up runs immediately.
//
// Called from a step function, OnCleanup is a hook: it holds one cleanup
// per call position and each run replaces it with the latest fn.
func OnCleanup(s *Scope, fn func()) {
	p := s.process("OnCleanup")
	switch {
	case p.lifecycle == Ended:
		fn()
	case p.lifecycle == Running && p.m.processing == p && p.desc.routine == nil:
		sl := acquire(s, func() *cleanupSlot {
			sl := &cleanupSlot{}
			p.cleanups = append(p.cleanups, sl.run)
			return sl
		})
		sl.fn = fn
	default:
		p.cleanups = append(p.cleanups, fn)
	}
}

type cleanupSlot struct {
	fn func()
}

func (sl *cleanupSlot) run() {
	if sl.fn != nil {
		sl.fn()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"code.hybscloud.com/kont"
)

// Outcome is what an awaited descriptor resumes a routine with.
type Outcome struct {
	// Result is the Result of the end state the awaited chain reached.
	Result any
}

// awaitOp is the effect operation behind Await.
type awaitOp struct {
	kont.Phantom[Outcome]
	desc *Descriptor
}

// Await suspends the routine until d's chain reaches an end state. Awaiting
// an end state directly ends the routine's process with that end state.
func Await(d *Descriptor) kont.Eff[Outcome] {
	return kont.Perform(awaitOp{desc: d})
}

// NewRoutine describes a process driven by a resumable computation instead
// of a step function. The computation is built once, when the process first
// runs, and advanced each time an awaited child completes. Its result is the
// descriptor to transition to, or nil to end. Hooks are not available inside
// a routine; use OnCleanup for cleanup. A routine that completes with nil
// stays idle until canceled.
func NewRoutine[P any](fn func(*Scope, P) kont.Eff[*Descriptor], props P) *Descriptor {
	return &Descriptor{
		routine: func(s *Scope, v any) kont.Eff[*Descriptor] { return fn(s, as[P](v)) },
		props:   props,
		label:   funcLabel(fn),
	}
}

// Routine is NewRoutine for routines without props.
func Routine(fn func(*Scope) kont.Eff[*Descriptor]) *Descriptor {
	return &Descriptor{
		routine: func(s *Scope, _ any) kont.Eff[*Descriptor] { return fn(s) },
		label:   funcLabel(fn),
	}
}

// step advances the routine until its next suspension or completion.
// It returns the descriptor to transition to.
func (p *process) step() *Descriptor {
	var (
		result *Descriptor
		susp   *kont.Suspension[*Descriptor]
	)
	switch {
	case !p.started:
		p.started = true
		result, susp = kont.StepExpr(kont.Reify(p.desc.routine(&p.scope, p.desc.props)))
	case p.susp != nil && p.resumed:
		pending, v := p.susp, p.resumeValue
		p.susp, p.resumed, p.resumeValue = nil, false, nil
		result, susp = pending.Resume(Outcome{Result: v})
	default:
		return nil
	}
	if p.cursor != -1 {
		panic(&UsageError{Op: "routine", Err: ErrHookInRoutine, Stack: p.labelStack()})
	}
	if susp == nil {
		return result
	}
	op, ok := susp.Op().(awaitOp)
	if !ok {
		panic("proc: unhandled effect in routine")
	}
	if op.desc.end {
		susp.Discard()
		return op.desc
	}
	p.susp = susp
	if p.pendingCancel {
		return nil
	}
	p.await(op.desc)
	return nil
}

// await starts d as a child whose completion resumes p.
func (p *process) await(d *Descriptor) {
	m := p.m
	child := m.newProcess(d, m.nextChainID(), p, p.overlay)
	m.onComplete(child.id, func(v any) {
		p.resumeValue, p.resumed = v, true
		p.markDirty()
	})
	m.start(child)
}

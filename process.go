// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"slices"

	"code.hybscloud.com/kont"
)

// process is one incarnation of a chain: a descriptor instantiated with
// hook slots and a lifecycle.
type process struct {
	m        *Machine
	id       ChainID
	desc     *Descriptor
	label    string
	parent   *process
	children []*process
	overlay  *overlay
	scope    Scope

	lifecycle     Lifecycle
	dirty         bool
	selfDirty     int
	pendingCancel bool
	cancelling    bool
	next          *Descriptor

	slots           []slot
	cursor          int
	hookCount       int
	pendingCleanups []func()
	cleanups        []func()

	started     bool
	susp        *kont.Suspension[*Descriptor]
	resumed     bool
	resumeValue any
}

func (m *Machine) newProcess(d *Descriptor, id ChainID, parent *process, ambientParent *overlay) *process {
	label := d.label
	if label == "" {
		label = "anonymous"
	}
	p := &process{
		m:         m,
		id:        id,
		desc:      d,
		label:     label,
		parent:    parent,
		overlay:   d.overlay.withParent(ambientParent),
		dirty:     true,
		cursor:    -1,
		hookCount: -1,
	}
	p.scope.p = p
	return p
}

func (p *process) ambient() map[*ambientKey]any { return p.overlay.build() }

func (p *process) labelStack() []string {
	var stack []string
	for q := p; q != nil; q = q.parent {
		stack = append(stack, q.label)
	}
	slices.Reverse(stack)
	return stack
}

// adoptable reports whether p may still take on children. A process that
// is winding down has already canceled its children.
func (p *process) adoptable() bool {
	switch p.lifecycle {
	case Running, Effect, Idle:
		return !p.pendingCancel
	}
	return false
}

// markDirty schedules p to run in the next pass. A process that keeps
// scheduling itself from its own step function or effects for more
// consecutive passes than the schedule limit panics with ErrRunaway.
func (p *process) markDirty() {
	if p.lifecycle == Ended {
		return
	}
	if p.m.processing == p {
		p.selfDirty++
		if p.selfDirty > p.m.limit {
			p.m.logger.Error("proc: schedule limit exceeded", "chain", p.id, "label", p.label, "limit", p.m.limit)
			panic(&UsageError{Op: "schedule", Err: ErrRunaway, Stack: p.labelStack()})
		}
	} else {
		p.selfDirty = 0
	}
	p.dirty = true
	p.m.schedule()
}

// cancel requests cancellation. An idle process is canceled synchronously;
// otherwise the request is honored at its next phase boundary.
func (p *process) cancel() {
	if p.lifecycle == Ended || p.pendingCancel || p.cancelling {
		return
	}
	p.pendingCancel = true
	p.next = nil
	if p.lifecycle == Idle {
		p.lifecycle = Canceling
		p.advance(parkSettled)
	}
}

// advance runs the lifecycle until park accepts the phase reached or the
// process ends. Reaching Ended is always handled before returning.
func (p *process) advance(park func(Lifecycle) bool) {
	for {
		switch p.lifecycle {
		case Idle:
			if !p.dirty {
				return
			}
			p.lifecycle = Running
			p.lifecycle = p.run()
		case Effect:
			p.lifecycle = p.effects()
		case Transitioning:
			p.cancelChildren()
			if p.pendingCancel {
				p.lifecycle = Canceling
			} else {
				p.lifecycle = CleaningUp
			}
		case Canceling:
			p.cancelling = true
			p.cancelChildren()
			p.lifecycle = CleaningUp
		case CleaningUp:
			p.lifecycle = p.cleanup()
		case Ended:
			p.m.end(p)
			return
		default:
			panic(&UsageError{Op: "advance", Err: ErrInvariant, Stack: p.labelStack()})
		}
		if p.lifecycle != Ended && park(p.lifecycle) {
			return
		}
	}
}

// enter makes p the processing process until the returned func is called.
func (p *process) enter() func() {
	prev := p.m.processing
	p.m.processing = p
	return func() { p.m.processing = prev }
}

func (p *process) run() Lifecycle {
	defer p.enter()()
	p.dirty = false
	p.cursor = -1
	var next *Descriptor
	if p.desc.routine != nil {
		next = p.step()
	} else {
		next = p.desc.step(&p.scope, p.desc.props)
		p.checkHookCount()
	}
	p.flushPendingCleanups()
	switch {
	case p.pendingCancel:
		return Canceling
	case next != nil:
		p.next = next
		return Transitioning
	}
	return Effect
}

func (p *process) checkHookCount() {
	n := p.cursor + 1
	if p.hookCount < 0 {
		p.hookCount = n
		return
	}
	if n != p.hookCount {
		p.m.logger.Warn("proc: inconsistent hook count; hooks must not be called conditionally",
			"chain", p.id, "label", p.label, "want", p.hookCount, "got", n)
	}
}

func (p *process) flushPendingCleanups() {
	for len(p.pendingCleanups) > 0 {
		fn := p.pendingCleanups[0]
		p.pendingCleanups = p.pendingCleanups[1:]
		fn()
	}
}

func (p *process) effects() Lifecycle {
	if p.pendingCancel {
		return Canceling
	}
	defer p.enter()()
	for _, sl := range p.slots {
		es, ok := sl.(*effectSlot)
		if !ok || es.action == nil {
			continue
		}
		action := es.action
		es.action = nil
		if cleanup := action(); cleanup != nil {
			es.cleanup = cleanup
		}
		if p.pendingCancel {
			return Canceling
		}
	}
	return Idle
}

func (p *process) cleanup() Lifecycle {
	defer p.enter()()
	if p.susp != nil {
		p.susp.Discard()
		p.susp = nil
	}
	for len(p.cleanups) > 0 {
		fn := p.cleanups[0]
		p.cleanups = p.cleanups[1:]
		fn()
	}
	for _, sl := range p.slots {
		if es, ok := sl.(*effectSlot); ok && es.cleanup != nil {
			fn := es.cleanup
			es.cleanup = nil
			fn()
		}
	}
	p.flushPendingCleanups()
	switch {
	case p.cancelling || p.next != nil:
		return Ended
	case p.pendingCancel:
		return Canceling
	}
	panic(&UsageError{Op: "cleanup", Err: ErrInvariant, Stack: p.labelStack()})
}

func (p *process) cancelChildren() {
	for _, c := range slices.Clone(p.children) {
		c.cancel()
	}
}

func (p *process) detach(child *process) {
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
}

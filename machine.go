// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"log/slog"
	"slices"

	"code.hybscloud.com/atomix"
)

// defaultScheduleLimit bounds how many consecutive passes a process may
// schedule for itself.
const defaultScheduleLimit = 100

// Machine owns a registry of processes and runs them cooperatively on the
// caller's goroutine. A Machine is not safe for concurrent use; other
// goroutines reach it through a Mailbox.
type Machine struct {
	procs       map[ChainID]*process
	order       []*process
	processing  *process
	events      eventManager
	completions map[ChainID][]func(any)
	serial      atomix.Uint32
	mailboxes   []*Mailbox

	depth    int
	armed    bool
	draining bool
	limit    int
	manual   bool

	logger *slog.Logger
	hooks  Hooks
}

// New creates a machine with no processes.
func New(opts ...Option) *Machine {
	m := &Machine{
		procs:       make(map[ChainID]*process),
		events:      newEventManager(),
		completions: make(map[ChainID][]func(any)),
		limit:       defaultScheduleLimit,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	id       ChainID
	detached bool
}

// WithID starts the chain under id instead of a generated one. Run panics
// with ErrDuplicateChain when id is live.
func WithID(id ChainID) RunOption {
	return func(c *runConfig) { c.id = id }
}

// Detached starts the chain at top level even when called from a running
// process: it has no parent and inherits no ambients.
func Detached() RunOption {
	return func(c *runConfig) { c.detached = true }
}

// Run starts a process for d and drives it until it is idle or ended.
// Called from inside a process, the new process is its child and inherits
// its ambients.
func (m *Machine) Run(d *Descriptor, opts ...RunOption) *Handle {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var h *Handle
	m.turn(func() {
		id := cfg.id
		if id == "" {
			id = m.nextChainID()
		}
		var parent *process
		var amb *overlay
		if q := m.processing; q != nil && !cfg.detached {
			amb = q.overlay
			if q.adoptable() {
				parent = q
			}
		}
		p := m.newProcess(d, id, parent, amb)
		h = &Handle{m: m, id: id}
		m.start(p)
	})
	return h
}

// Cancel cancels the live process of chain id, if any.
func (m *Machine) Cancel(id ChainID) {
	m.turn(func() {
		if p := m.procs[id]; p != nil {
			p.cancel()
		}
	})
}

// Len returns the number of live processes.
func (m *Machine) Len() int { return len(m.order) }

// Pending reports whether a pass is scheduled.
func (m *Machine) Pending() bool { return m.armed }

// Pass runs one scheduled pass. It is meant for machines created with
// WithManualPasses and reports whether a pass ran.
func (m *Machine) Pass() bool {
	if !m.armed {
		return false
	}
	for _, p := range m.order {
		p.selfDirty = 0
	}
	m.turn(m.pass)
	return true
}

// turn runs fn as part of a turn. The outermost turn drains scheduled
// passes before returning.
func (m *Machine) turn(fn func()) {
	m.depth++
	func() {
		defer func() { m.depth-- }()
		fn()
	}()
	if m.depth == 0 && !m.manual && !m.draining {
		m.drain()
	}
}

func (m *Machine) drain() {
	m.draining = true
	defer func() { m.draining = false }()
	for m.armed {
		m.pass()
	}
}

// schedule arms the next pass.
func (m *Machine) schedule() {
	m.armed = true
}

// pass steps every dirty idle process in registration order, then runs
// their effects, then completes their transitions.
func (m *Machine) pass() {
	m.armed = false
	var dirty []*process
	for _, p := range m.order {
		if p.dirty && p.lifecycle == Idle {
			dirty = append(dirty, p)
		}
	}
	m.hooks.pass(len(dirty))
	for _, p := range dirty {
		if p.dirty && p.lifecycle == Idle {
			p.advance(parkPhased)
		}
	}
	for _, p := range dirty {
		if p.lifecycle == Effect {
			p.advance(parkSettled)
		}
	}
	for _, p := range dirty {
		if p.lifecycle == Transitioning {
			p.advance(parkSettled)
		}
	}
	for _, p := range dirty {
		if !p.dirty {
			p.selfDirty = 0
		}
	}
}

// start registers a new chain and drives it.
func (m *Machine) start(p *process) {
	m.enlist(p)
	p.advance(parkSettled)
}

// enlist registers a new chain without driving it.
func (m *Machine) enlist(p *process) {
	m.register(p)
	m.logger.Debug("proc: start", "chain", p.id, "label", p.label)
	m.hooks.start(p)
}

func (m *Machine) register(p *process) {
	if _, live := m.procs[p.id]; live {
		panic(&UsageError{Op: "Run", Err: ErrDuplicateChain, Stack: m.processingStack()})
	}
	m.procs[p.id] = p
	m.order = append(m.order, p)
	if p.parent != nil {
		p.parent.children = append(p.parent.children, p)
	}
}

func (m *Machine) unregister(p *process) {
	if m.procs[p.id] == p {
		delete(m.procs, p.id)
	}
	if i := slices.Index(m.order, p); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	m.events.unsubscribeAll(p)
	if p.parent != nil {
		p.parent.detach(p)
	}
}

// end removes p from the registry and starts its successor, if any, under
// the same chain id.
func (m *Machine) end(p *process) {
	m.unregister(p)
	next := p.next
	if next == nil {
		delete(m.completions, p.id)
		m.logger.Debug("proc: end", "chain", p.id, "label", p.label)
		m.hooks.end(p)
		return
	}
	succ := m.newProcess(next, p.id, p.parent, p.overlay)
	m.register(succ)
	m.logger.Debug("proc: transition", "chain", p.id, "from", p.label, "to", succ.label)
	m.hooks.transition(p, succ)
	succ.advance(parkSettled)
}

func (m *Machine) onComplete(id ChainID, fn func(any)) {
	m.completions[id] = append(m.completions[id], fn)
}

// complete fires and forgets the completion callbacks of chain id.
func (m *Machine) complete(id ChainID, result any) {
	fns := m.completions[id]
	delete(m.completions, id)
	for _, fn := range fns {
		fn(result)
	}
}

func (m *Machine) processingStack() []string {
	if m.processing == nil {
		return nil
	}
	return m.processing.labelStack()
}

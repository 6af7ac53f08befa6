// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import "log/slog"

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger for warnings and lifecycle debug records.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithScheduleLimit sets how many consecutive passes a process may schedule
// for itself, from its step function or effects, before the machine panics
// with ErrRunaway. Passes scheduled by other processes or events do not
// count. The default is 100.
func WithScheduleLimit(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithManualPasses stops the machine from draining scheduled passes at the
// end of each turn. The caller runs them with Pass.
func WithManualPasses() Option {
	return func(m *Machine) { m.manual = true }
}

// WithHooks installs lifecycle observers.
func WithHooks(h Hooks) Option {
	return func(m *Machine) { m.hooks = h }
}

// Hooks observes the machine. Nil fields are skipped. Observers run
// synchronously on the machine's goroutine and must not block.
type Hooks struct {
	// OnStart is called when a new chain starts.
	OnStart func(ProcessInfo)
	// OnTransition is called when a process hands its chain to a successor.
	OnTransition func(from, to ProcessInfo)
	// OnEnd is called when a chain ends without a successor.
	OnEnd func(ProcessInfo)
	// OnPass is called at the start of each pass with the number of dirty
	// processes it will step.
	OnPass func(dirty int)
}

func (h *Hooks) start(p *process) {
	if h.OnStart != nil {
		h.OnStart(p.info())
	}
}

func (h *Hooks) transition(from, to *process) {
	if h.OnTransition != nil {
		h.OnTransition(from.info(), to.info())
	}
}

func (h *Hooks) end(p *process) {
	if h.OnEnd != nil {
		h.OnEnd(p.info())
	}
}

func (h *Hooks) pass(dirty int) {
	if h.OnPass != nil {
		h.OnPass(dirty)
	}
}

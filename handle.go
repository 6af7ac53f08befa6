// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Handle refers to a chain. It stays valid across transitions and becomes
// inert once the chain ends.
type Handle struct {
	m  *Machine
	id ChainID
}

// ChainID returns the chain's id.
func (h *Handle) ChainID() ChainID { return h.id }

// Alive reports whether the chain has a live process.
func (h *Handle) Alive() bool {
	_, ok := h.m.procs[h.id]
	return ok
}

// Cancel cancels the chain's live process.
func (h *Handle) Cancel() { h.m.Cancel(h.id) }

// OnComplete registers fn to be called with the Result of the end state the
// chain reaches. Callbacks are dropped if the chain is canceled instead.
// Registering on an ended chain is a no-op.
func (h *Handle) OnComplete(fn func(result any)) {
	if !h.Alive() {
		return
	}
	h.m.onComplete(h.id, fn)
}

// Labels returns the label stack of the chain's live process, root first.
func (h *Handle) Labels() []string {
	if p := h.m.procs[h.id]; p != nil {
		return p.labelStack()
	}
	return nil
}

// Info describes the chain's live process.
func (h *Handle) Info() (ProcessInfo, bool) {
	if p := h.m.procs[h.id]; p != nil {
		return p.info(), true
	}
	return ProcessInfo{}, false
}

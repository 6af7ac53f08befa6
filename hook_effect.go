// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type effectSlot struct {
	action  func() func()
	cleanup func()
	deps    []any
}

// UseEffect schedules fn to run after the step function returns, when deps
// differ from the previous run. Nil deps run fn after every run; empty deps
// run it once. A non-nil func returned by fn is its cleanup, called before
// fn runs again and when the process cleans up.
func UseEffect(s *Scope, fn func() func(), deps []any) {
	sl := acquire(s, func() *effectSlot { return &effectSlot{} })
	if depsUnchanged(sl.deps, deps) {
		return
	}
	if sl.cleanup != nil {
		s.p.pendingCleanups = append(s.p.pendingCleanups, sl.cleanup)
		sl.cleanup = nil
	}
	sl.action = fn
	sl.deps = deps
}

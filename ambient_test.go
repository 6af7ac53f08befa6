// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/proc"
)

func TestAmbientProvideGet(t *testing.T) {
	m := newMachine(t)
	depth, provide := proc.DefineAmbient[int]("depth")
	got := 0
	m.Run(provide.Provide(3, proc.State(func(s *proc.Scope) *proc.Descriptor {
		got = proc.Get(s, depth)
		return nil
	})))

	if got != 3 {
		t.Fatalf("ambient got %d, want 3", got)
	}
}

func TestAmbientOuterProvideWins(t *testing.T) {
	m := newMachine(t)
	name, provide := proc.DefineAmbient[string]("name")
	got := ""
	d := proc.State(func(s *proc.Scope) *proc.Descriptor {
		got = proc.Get(s, name)
		return nil
	})
	m.Run(proc.Pipe(d, provide.With("inner"), provide.With("outer")))

	if got != "outer" {
		t.Fatalf("ambient got %q, want outer", got)
	}
}

func TestAmbientFlowsDownChains(t *testing.T) {
	m := newMachine(t)
	name, provide := proc.DefineAmbient[string]("name")
	var r recorder
	nested := proc.State(func(s *proc.Scope) *proc.Descriptor {
		r.add("nested %s", proc.Get(s, name))
		return nil
	})
	effectChild := proc.State(func(s *proc.Scope) *proc.Descriptor {
		r.add("effect child %s", proc.Get(s, name))
		return nil
	})
	successor := proc.State(func(s *proc.Scope) *proc.Descriptor {
		r.add("successor %s", proc.Get(s, name))
		return nil
	})
	m.Run(provide.Provide("root", proc.State(func(s *proc.Scope) *proc.Descriptor {
		proc.UseNested(s, true, nested)
		proc.UseEffect(s, func() func() {
			s.Machine().Run(effectChild)
			return nil
		}, []any{})
		if useNextTick(s) {
			return successor
		}
		return nil
	})))

	r.equal(t, "effect child root", "nested root", "successor root")
}

func TestAmbientNotInheritedAtTopLevel(t *testing.T) {
	m := newMachine(t)
	name, provide := proc.DefineAmbient[string]("name")
	var (
		topHas      bool
		detachedHas bool
	)
	m.Run(provide.Provide("root", proc.State(func(*proc.Scope) *proc.Descriptor { return nil })))
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		topHas = proc.Has(s, name)
		return nil
	}))
	m.Run(provide.Provide("root", proc.State(func(s *proc.Scope) *proc.Descriptor {
		proc.UseEffect(s, func() func() {
			s.Machine().Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
				detachedHas = proc.Has(s, name)
				return nil
			}), proc.Detached())
			return nil
		}, []any{})
		return nil
	})))

	if topHas {
		t.Fatal("top-level process sees a sibling's ambient")
	}
	if detachedHas {
		t.Fatal("detached process inherits ambients")
	}
}

func TestAmbientChildShadowsParent(t *testing.T) {
	m := newMachine(t)
	name, provide := proc.DefineAmbient[string]("name")
	var parentSees, childSees string
	m.Run(provide.Provide("parent", proc.State(func(s *proc.Scope) *proc.Descriptor {
		parentSees = proc.Get(s, name)
		proc.UseNested(s, true, provide.Provide("child", proc.State(func(s *proc.Scope) *proc.Descriptor {
			childSees = proc.Get(s, name)
			return nil
		})))
		return nil
	})))

	if parentSees != "parent" || childSees != "child" {
		t.Fatalf("parent=%q child=%q, want parent and child", parentSees, childSees)
	}
}

func TestAmbientMissing(t *testing.T) {
	m := newMachine(t)
	name, _ := proc.DefineAmbient[string]("name")
	var fallback string
	err := panicErr(func() {
		m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
			fallback = proc.GetOr(s, name, "default")
			proc.Get(s, name)
			return nil
		}).WithLabel("reader"))
	})

	if fallback != "default" {
		t.Fatalf("GetOr got %q, want default", fallback)
	}
	var ae *proc.AmbientNotFoundError
	if !errors.As(err, &ae) || !errors.Is(err, proc.ErrAmbientNotFound) {
		t.Fatalf("got %v, want *AmbientNotFoundError", err)
	}
	if ae.Label != "name" || len(ae.Stack) != 1 || ae.Stack[0] != "reader" {
		t.Fatalf("error got %+v", ae)
	}
}

func TestAmbientDistinctIdentities(t *testing.T) {
	m := newMachine(t)
	a, provideA := proc.DefineAmbient[int]("same")
	b, _ := proc.DefineAmbient[int]("same")
	var hasA, hasB bool
	m.Run(provideA.Provide(1, proc.State(func(s *proc.Scope) *proc.Descriptor {
		hasA, hasB = proc.Has(s, a), proc.Has(s, b)
		return nil
	})))

	if !hasA || hasB {
		t.Fatalf("hasA=%v hasB=%v, want true false", hasA, hasB)
	}
}

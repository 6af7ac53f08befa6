// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"reflect"
	"runtime"
	"strings"

	"code.hybscloud.com/kont"
)

// Descriptor describes a process to start: a step function or a routine,
// the props it is called with, and the ambient values bound on it.
// Descriptors are immutable; Provide and WithLabel return copies.
type Descriptor struct {
	step    func(*Scope, any) *Descriptor
	routine func(*Scope, any) kont.Eff[*Descriptor]
	props   any
	overlay *overlay
	label   string
	end     bool
}

// NewState describes a process that calls fn with props each time it runs.
// fn returns the descriptor to transition to, or nil to stay.
func NewState[P any](fn func(*Scope, P) *Descriptor, props P) *Descriptor {
	return &Descriptor{
		step:  func(s *Scope, v any) *Descriptor { return fn(s, as[P](v)) },
		props: props,
		label: funcLabel(fn),
	}
}

// State is NewState for step functions without props.
func State(fn func(*Scope) *Descriptor) *Descriptor {
	return &Descriptor{
		step:  func(s *Scope, _ any) *Descriptor { return fn(s) },
		label: funcLabel(fn),
	}
}

// WithLabel returns a copy of d with the given label.
func (d *Descriptor) WithLabel(label string) *Descriptor {
	c := d.clone()
	c.label = label
	return c
}

// Label returns the label used in label stacks and snapshots.
func (d *Descriptor) Label() string { return d.label }

// Props returns the props d was built with.
func (d *Descriptor) Props() any { return d.props }

// IsEnd reports whether d is an end state.
func (d *Descriptor) IsEnd() bool { return d.end }

func (d *Descriptor) clone() *Descriptor {
	c := *d
	return &c
}

// EndProps configures an end state.
type EndProps struct {
	// Result is delivered to completion callbacks and awaiting routines.
	Result any
	// OnEnd runs once when the end state takes effect.
	OnEnd func()
}

// EndState describes the terminal state of a chain. Entering it runs OnEnd,
// fires the chain's completion callbacks with Result, and cancels itself.
func EndState(props EndProps) *Descriptor {
	return &Descriptor{step: endStep, props: props, label: "end", end: true}
}

func endStep(s *Scope, v any) *Descriptor {
	props := as[EndProps](v)
	UseEffect(s, func() func() {
		if props.OnEnd != nil {
			props.OnEnd()
		}
		s.p.m.complete(s.p.id, props.Result)
		s.Cancel()
		return nil
	}, []any{})
	return nil
}

// funcLabel derives a label from fn's name. Function literals are
// "anonymous".
func funcLabel(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "anonymous"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	last := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		last = name[i+1:]
	}
	if name == "" || isLiteral(last) {
		return "anonymous"
	}
	return strings.TrimSuffix(name, "-fm")
}

// isLiteral matches compiler names of function literals such as "func1"
// and of literals nested in them such as "2".
func isLiteral(name string) bool {
	rest := strings.TrimPrefix(name, "func")
	if rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

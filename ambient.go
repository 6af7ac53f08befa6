// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type ambientKey struct {
	label string
}

// Ambient reads a typed value provided by an enclosing descriptor.
// Ambients flow down a chain: a process sees the values bound on its own
// descriptor layered over those of the process that started it.
type Ambient[T any] struct {
	key *ambientKey
}

// Provider binds values for the Ambient it was defined with.
type Provider[T any] struct {
	key *ambientKey
}

// DefineAmbient creates a new ambient identity. Two calls with the same
// label yield distinct ambients.
func DefineAmbient[T any](label string) (Ambient[T], Provider[T]) {
	k := &ambientKey{label: label}
	return Ambient[T]{key: k}, Provider[T]{key: k}
}

// Label returns the label the ambient was defined with.
func (a Ambient[T]) Label() string { return a.key.label }

// Provide returns a copy of d that binds value for the ambient. When the
// same ambient is provided twice on one descriptor the outer call wins.
func (p Provider[T]) Provide(value T, d *Descriptor) *Descriptor {
	c := d.clone()
	c.overlay = c.overlay.set(p.key, value)
	return c
}

// With is Provide curried for use with Pipe.
func (p Provider[T]) With(value T) func(*Descriptor) *Descriptor {
	return func(d *Descriptor) *Descriptor { return p.Provide(value, d) }
}

// Pipe applies mods to d from left to right.
func Pipe(d *Descriptor, mods ...func(*Descriptor) *Descriptor) *Descriptor {
	for _, mod := range mods {
		d = mod(d)
	}
	return d
}

// Lookup returns the ambient's value visible to the process behind s.
func Lookup[T any](s *Scope, a Ambient[T]) (T, bool) {
	p := s.process("Lookup")
	v, ok := p.ambient()[a.key]
	if !ok {
		var zero T
		return zero, false
	}
	return as[T](v), true
}

// Get returns the ambient's value or panics with *AmbientNotFoundError.
func Get[T any](s *Scope, a Ambient[T]) T {
	v, ok := Lookup(s, a)
	if !ok {
		panic(&AmbientNotFoundError{Label: a.key.label, Stack: s.p.labelStack()})
	}
	return v
}

// GetOr returns the ambient's value or def when none is provided.
func GetOr[T any](s *Scope, a Ambient[T], def T) T {
	if v, ok := Lookup(s, a); ok {
		return v
	}
	return def
}

// Has reports whether the ambient is provided to the process behind s.
func Has[T any](s *Scope, a Ambient[T]) bool {
	_, ok := Lookup(s, a)
	return ok
}

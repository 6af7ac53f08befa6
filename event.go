// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type eventRef struct {
	name string
}

type stage func(any) (any, bool)

// Event is the subscriber side of an event, optionally carrying a pipeline
// of filters and mappings applied to each payload before delivery.
type Event[T any] struct {
	ref      *eventRef
	pipeline []stage
}

// Emitter is the sender side of an event.
type Emitter[T any] struct {
	ref *eventRef
}

// DefineEvent creates a new event identity.
func DefineEvent[T any](name string) (Event[T], Emitter[T]) {
	ref := &eventRef{name: name}
	return Event[T]{ref: ref}, Emitter[T]{ref: ref}
}

// Name returns the name the event was defined with.
func (e Event[T]) Name() string { return e.ref.name }

// Filter returns an event that drops payloads for which pred is false.
func (e Event[T]) Filter(pred func(T) bool) Event[T] {
	return Event[T]{ref: e.ref, pipeline: appendStage(e.pipeline, func(v any) (any, bool) {
		return v, pred(as[T](v))
	})}
}

// MapEvent returns an event whose payloads are transformed by f.
func MapEvent[T, U any](e Event[T], f func(T) U) Event[U] {
	return Event[U]{ref: e.ref, pipeline: appendStage(e.pipeline, func(v any) (any, bool) {
		return f(as[T](v)), true
	})}
}

func appendStage(p []stage, s stage) []stage {
	out := make([]stage, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

func runPipeline(p []stage, data any) (any, bool) {
	for _, s := range p {
		var ok bool
		if data, ok = s(data); !ok {
			return nil, false
		}
	}
	return data, true
}

// Name returns the name the event was defined with.
func (e Emitter[T]) Name() string { return e.ref.name }

// Send delivers data to every process of m subscribed to the event and
// schedules them to run.
func (e Emitter[T]) Send(m *Machine, data T) {
	m.turn(func() { m.events.deliver(e.ref, data) })
}

// receiver is implemented by event hook slots.
type receiver interface {
	receive(ref *eventRef, data any) bool
}

// eventManager indexes subscriptions in both directions.
type eventManager struct {
	subscribers map[*eventRef]*orderedSet[*process]
	subscribed  map[*process]*orderedSet[*eventRef]
}

func newEventManager() eventManager {
	return eventManager{
		subscribers: make(map[*eventRef]*orderedSet[*process]),
		subscribed:  make(map[*process]*orderedSet[*eventRef]),
	}
}

func (em *eventManager) subscribe(ref *eventRef, p *process) {
	ps := em.subscribers[ref]
	if ps == nil {
		ps = newOrderedSet[*process]()
		em.subscribers[ref] = ps
	}
	ps.add(p)
	refs := em.subscribed[p]
	if refs == nil {
		refs = newOrderedSet[*eventRef]()
		em.subscribed[p] = refs
	}
	refs.add(ref)
}

func (em *eventManager) unsubscribeAll(p *process) {
	refs := em.subscribed[p]
	if refs == nil {
		return
	}
	for _, ref := range refs.items {
		if ps := em.subscribers[ref]; ps != nil {
			ps.remove(p)
			if ps.len() == 0 {
				delete(em.subscribers, ref)
			}
		}
	}
	delete(em.subscribed, p)
}

// deliver runs each subscribed slot's pipeline and wakes the processes that
// accepted the payload.
func (em *eventManager) deliver(ref *eventRef, data any) int {
	ps := em.subscribers[ref]
	if ps == nil {
		return 0
	}
	woken := 0
	for _, p := range ps.snapshot() {
		if p.lifecycle == Ended {
			continue
		}
		accepted := false
		for _, sl := range p.slots {
			if r, ok := sl.(receiver); ok && r.receive(ref, data) {
				accepted = true
			}
		}
		if accepted {
			p.markDirty()
			woken++
		}
	}
	return woken
}

func (em *eventManager) subscriptions(p *process) []string {
	refs := em.subscribed[p]
	if refs == nil {
		return nil
	}
	out := make([]string, 0, refs.len())
	for _, ref := range refs.items {
		out = append(out, ref.name)
	}
	return out
}

// orderedSet keeps insertion order for deterministic iteration.
type orderedSet[T comparable] struct {
	index map[T]int
	items []T
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{index: make(map[T]int)}
}

func (s *orderedSet[T]) add(v T) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
}

func (s *orderedSet[T]) remove(v T) {
	i, ok := s.index[v]
	if !ok {
		return
	}
	delete(s.index, v)
	copy(s.items[i:], s.items[i+1:])
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
}

func (s *orderedSet[T]) len() int { return len(s.items) }

func (s *orderedSet[T]) snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

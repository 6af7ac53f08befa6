// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

type eventSlot[T any] struct {
	bind      Event[T]
	payload   T
	delivered bool
}

func (sl *eventSlot[T]) receive(ref *eventRef, data any) bool {
	if sl.bind.ref != ref {
		return false
	}
	v, ok := runPipeline(sl.bind.pipeline, data)
	if !ok {
		return false
	}
	sl.payload = as[T](v)
	sl.delivered = true
	return true
}

// UseEvent subscribes the process to ev. It returns the payload delivered
// since the previous run and true, or the zero value and false. A delivered
// payload is returned once. Changing ev's pipeline between runs takes
// effect from the next delivery.
func UseEvent[T any](s *Scope, ev Event[T]) (T, bool) {
	sl := acquire(s, func() *eventSlot[T] { return &eventSlot[T]{} })
	sl.bind = ev
	s.p.m.events.subscribe(ev.ref, s.p)
	var zero T
	if !sl.delivered {
		return zero, false
	}
	v := sl.payload
	sl.payload, sl.delivered = zero, false
	return v, true
}

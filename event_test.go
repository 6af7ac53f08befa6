// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"strconv"
	"testing"

	"code.hybscloud.com/proc"
)

func TestEventDeliveredOnce(t *testing.T) {
	m := newMachine(t)
	ping, emit := proc.DefineEvent[int]("ping")
	var (
		got  []int
		bump proc.Setter[int]
	)
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		_, bump = proc.UseState(s, 0)
		if v, ok := proc.UseEvent(s, ping); ok {
			got = append(got, v)
		}
		return nil
	}))
	emit.Send(m, 7)
	bump.Set(1)
	emit.Send(m, 8)

	if len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Fatalf("payloads got %v, want [7 8]", got)
	}
}

func TestEventWakesAllSubscribersInOnePass(t *testing.T) {
	passes := 0
	m := newMachine(t, proc.WithHooks(proc.Hooks{
		OnPass: func(int) { passes++ },
	}))
	ping, emit := proc.DefineEvent[string]("ping")
	var got []string
	for i := range 3 {
		name := strconv.Itoa(i)
		m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
			if v, ok := proc.UseEvent(s, ping); ok {
				got = append(got, name+v)
			}
			return nil
		}))
	}
	passes = 0
	emit.Send(m, "!")

	if passes != 1 {
		t.Fatalf("passes got %d, want 1", passes)
	}
	want := []string{"0!", "1!", "2!"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEventFilterAndMap(t *testing.T) {
	m := newMachine(t)
	num, emit := proc.DefineEvent[int]("num")
	even := proc.MapEvent(num.Filter(func(n int) bool { return n%2 == 0 }), strconv.Itoa)
	runs := 0
	var got []string
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		runs++
		if v, ok := proc.UseEvent(s, even); ok {
			got = append(got, v)
		}
		return nil
	}))
	for i := range 5 {
		emit.Send(m, i)
	}

	if runs != 4 {
		t.Fatalf("runs got %d, want 4", runs)
	}
	if len(got) != 3 || got[0] != "0" || got[1] != "2" || got[2] != "4" {
		t.Fatalf("got %v, want [0 2 4]", got)
	}
}

func TestEventUnsubscribedOnEnd(t *testing.T) {
	m := newMachine(t)
	ping, emit := proc.DefineEvent[int]("ping")
	runs := 0
	h := m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		runs++
		proc.UseEvent(s, ping)
		return nil
	}))
	h.Cancel()
	emit.Send(m, 1)

	if runs != 1 {
		t.Fatalf("runs got %d, want 1", runs)
	}
	if m.Pending() {
		t.Fatal("pass scheduled for an ended subscriber")
	}
}

func TestEventLatestPayloadWins(t *testing.T) {
	m := newMachine(t, proc.WithManualPasses())
	ping, emit := proc.DefineEvent[int]("ping")
	var got []int
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		if v, ok := proc.UseEvent(s, ping); ok {
			got = append(got, v)
		}
		return nil
	}))
	emit.Send(m, 1)
	emit.Send(m, 2)
	m.Pass()

	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("got %v, want [2]", got)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/proc"
)

func TestMailboxPostDrain(t *testing.T) {
	m := newMachine(t)
	mb := m.NewMailbox(2)
	var got []int
	posted := 0
	var err error
	for i := range 16 {
		if err = mb.Post(func(*proc.Machine) { got = append(got, i) }); err != nil {
			break
		}
		posted++
	}
	if !iox.IsWouldBlock(err) {
		t.Fatalf("full mailbox got %v, want ErrWouldBlock", err)
	}
	if n := m.Drain(); n != posted {
		t.Fatalf("drained %d, want %d", n, posted)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("drain order got %v", got)
		}
	}
	if n := m.Drain(); n != 0 {
		t.Fatalf("second drain got %d, want 0", n)
	}
}

func TestMailboxServe(t *testing.T) {
	skipRace(t)
	m := newMachine(t)
	ping, emit := proc.DefineEvent[int]("ping")
	last := 0
	m.Run(proc.State(func(s *proc.Scope) *proc.Descriptor {
		if v, ok := proc.UseEvent(s, ping); ok {
			last = v
		}
		return nil
	}))

	mb := m.NewMailbox(4)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stop, halt := context.WithCancel(ctx)
	var got []int
	go func() {
		for i := 1; i <= 100; i++ {
			if err := mb.PostWait(ctx, func(m *proc.Machine) {
				got = append(got, i)
				emit.Send(m, i)
			}); err != nil {
				return
			}
		}
		_ = mb.PostWait(ctx, func(*proc.Machine) { halt() })
	}()

	err := m.Serve(stop)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve got %v, want context.Canceled", err)
	}
	if len(got) != 100 {
		t.Fatalf("calls got %d, want 100", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("call order broken at %d: %d", i, v)
		}
	}
	if last != 100 {
		t.Fatalf("last payload got %d, want 100", last)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"code.hybscloud.com/proc"
)

// newMachine returns a machine that discards log output.
func newMachine(tb testing.TB, opts ...proc.Option) *proc.Machine {
	tb.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return proc.New(append([]proc.Option{proc.WithLogger(logger)}, opts...)...)
}

// panicErr runs fn and returns the error it panicked with, if any.
func panicErr(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("%v", r)
	}()
	fn()
	return nil
}

// useNextTick reports false on the first run and schedules a rerun that
// reports true.
func useNextTick(s *proc.Scope) bool {
	done, set := proc.UseState(s, false)
	proc.UseEffect(s, func() func() {
		set.Set(true)
		return nil
	}, []any{})
	return done
}

// recorder collects an ordered trace.
type recorder struct {
	lines []string
}

func (r *recorder) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recorder) equal(t *testing.T, want ...string) {
	t.Helper()
	if len(r.lines) != len(want) {
		t.Fatalf("trace got %q, want %q", r.lines, want)
	}
	for i := range want {
		if r.lines[i] != want[i] {
			t.Fatalf("trace got %q, want %q", r.lines, want)
		}
	}
}

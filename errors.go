// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors carried by the panic values of usage errors.
// Recover the panic value and test it with errors.Is.
var (
	ErrNoProcess       = errors.New("proc: no running process")
	ErrHookMismatch    = errors.New("proc: hook kind does not match recorded slot")
	ErrHookInRoutine   = errors.New("proc: hooks cannot be used inside a routine")
	ErrAmbientNotFound = errors.New("proc: ambient not provided")
	ErrRunaway         = errors.New("proc: process rescheduled itself past the schedule limit")
	ErrDuplicateChain  = errors.New("proc: chain id is already live")
	ErrInvariant       = errors.New("proc: lifecycle invariant violated")
)

// UsageError is the panic value raised when the runtime is misused.
// Stack is the label stack of the process that was executing, root first.
type UsageError struct {
	Op    string
	Err   error
	Stack []string
}

func (e *UsageError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	writeStack(&b, e.Stack)
	return b.String()
}

func (e *UsageError) Unwrap() error { return e.Err }

// HookError reports a hook whose kind differs from the slot recorded at the
// same call position on an earlier run. This usually means a hook was called
// inside a conditional or a loop.
type HookError struct {
	Index int
	Want  string
	Got   string
	Stack []string
}

func (e *HookError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "proc: hook %d is %s but %s was called", e.Index, e.Want, e.Got)
	writeStack(&b, e.Stack)
	return b.String()
}

func (e *HookError) Unwrap() error { return ErrHookMismatch }

// AmbientNotFoundError is raised by Get when the ambient has no value in the
// process's chain.
type AmbientNotFoundError struct {
	Label string
	Stack []string
}

func (e *AmbientNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "proc: cannot find ambient %q", e.Label)
	writeStack(&b, e.Stack)
	return b.String()
}

func (e *AmbientNotFoundError) Unwrap() error { return ErrAmbientNotFound }

func writeStack(b *strings.Builder, stack []string) {
	if len(stack) == 0 {
		return
	}
	b.WriteString(" at")
	for _, label := range stack {
		b.WriteString("\n   ")
		b.WriteString(label)
	}
}

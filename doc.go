// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package proc runs cooperative, single-threaded processes written as step
// functions with hooks.
//
// A process is an instance of a [Descriptor]. Its step function is called
// whenever the process is dirty and returns either nil, to stay, or the
// descriptor of the process that replaces it. The replacement keeps the
// process's [ChainID]; a chain ends when it reaches an [EndState] or is
// canceled.
//
// # Architecture
//
//   - Scheduling: [Machine] batches dirty processes into passes. Each pass steps every dirty process, then runs their effects, then completes their transitions.
//   - Lifecycle: every process moves through [Lifecycle] phases. Cancellation cascades from a process to its children before its own cleanups run.
//   - Hooks: [UseState], [UseEffect], [UseEvent], [UseMemo], [UseRef], [UseNested], [UseInspector] and [OnCleanup] keep per-process state addressed by call order.
//   - Events: [DefineEvent] returns an [Event] to subscribe with and an [Emitter] to send with. [Event.Filter] and [MapEvent] build delivery pipelines.
//   - Ambients: [DefineAmbient] returns an [Ambient] to read and a [Provider] to bind values on descriptors. Values flow down chains.
//   - Routines: [NewRoutine] runs a [code.hybscloud.com/kont] computation that suspends on [Await] until a child chain ends. [Sequence] is built on it.
//
// # Integration
//
//   - Turns: every public entry point is a turn. The outermost turn drains scheduled passes before returning. A process that keeps rescheduling itself for more consecutive passes than [WithScheduleLimit] allows panics with [ErrRunaway].
//   - Cross-goroutine: a [Mailbox] carries calls to the machine's goroutine over a lock-free SPSC queue from [code.hybscloud.com/lfq]. [Machine.Serve] drains mailboxes with [code.hybscloud.com/iox.Backoff].
//   - Observability: [WithLogger] takes a [log/slog.Logger]; [WithHooks] observes lifecycle events; [Machine.WriteSnapshot] dumps live processes as YAML.
//
// # Example
//
//	tick, emit := proc.DefineEvent[int]("tick")
//	counter := proc.State(func(s *proc.Scope) *proc.Descriptor {
//		n, set := proc.UseState(s, 0)
//		v, ok := proc.UseEvent(s, tick)
//		proc.UseEffect(s, func() func() {
//			if ok {
//				set.Update(func(n int) int { return n + v })
//			}
//			return nil
//		}, nil)
//		if n >= 10 {
//			return proc.EndState(proc.EndProps{Result: n})
//		}
//		return nil
//	})
//	m := proc.New()
//	h := m.Run(counter)
//	h.OnComplete(func(result any) { fmt.Println(result) })
//	for range 10 {
//		emit.Send(m, 1)
//	}
package proc

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"context"
	"math/bits"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// mailboxCapacity is the default bounded capacity of a Mailbox.
const mailboxCapacity = 64

// Mailbox carries calls from one producer goroutine to the machine's
// goroutine over a bounded lock-free SPSC queue. Use one Mailbox per
// producer.
type Mailbox struct {
	q lfq.SPSC[func(*Machine)]
}

// NewMailbox attaches a mailbox to m. capacity is rounded up to a power of
// two; zero or less selects the default.
func (m *Machine) NewMailbox(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = mailboxCapacity
	}
	mb := &Mailbox{}
	mb.q.Init(1 << bits.Len(uint(capacity-1)))
	m.mailboxes = append(m.mailboxes, mb)
	return mb
}

// Post queues fn to run on the machine's goroutine. Non-blocking: returns
// iox.ErrWouldBlock when the mailbox is full.
func (mb *Mailbox) Post(fn func(*Machine)) error {
	return mb.q.Enqueue(&fn)
}

// PostWait is Post that waits past a full mailbox with adaptive backoff.
func (mb *Mailbox) PostWait(ctx context.Context, fn func(*Machine)) error {
	var bo iox.Backoff
	for {
		err := mb.Post(fn)
		if err == nil || !iox.IsWouldBlock(err) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		bo.Wait()
	}
}

// Drain runs every queued call as one turn and returns how many ran.
func (m *Machine) Drain() int {
	n := 0
	m.turn(func() {
		for _, mb := range m.mailboxes {
			for {
				fn, err := mb.q.Dequeue()
				if err != nil {
					break
				}
				fn(m)
				n++
			}
		}
	})
	return n
}

// Serve drains mailboxes on the calling goroutine until ctx is done,
// backing off while they are empty. It returns ctx.Err().
func (m *Machine) Serve(ctx context.Context) error {
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		progress := m.Drain() > 0
		if m.manual && m.Pass() {
			progress = true
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package proc_test

import "testing"

// skipRace skips mailbox tests that hand calls between goroutines.
// Mailbox publishes each call through the queue's index, not a lock, and
// the race detector reports the call's captured state as unsynchronized.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: mailbox hand-off is invisible to the race detector")
}

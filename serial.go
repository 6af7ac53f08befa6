// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import "strconv"

// ChainID identifies a chain of processes. A process that transitions hands
// its ChainID to its successor; an independently started process gets a
// fresh one.
type ChainID string

// nextChainID returns the next free chain id of the form "state-N".
// Ids forced with WithID are skipped.
func (m *Machine) nextChainID() ChainID {
	for {
		id := ChainID("state-" + strconv.FormatUint(uint64(m.serial.Add(1)), 10))
		if _, live := m.procs[id]; !live {
			return id
		}
	}
}

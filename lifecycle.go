// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Lifecycle is the phase a process is in.
//
//	Idle → Running → Effect → Idle
//	Running → Transitioning → CleaningUp → Ended
//	any → Canceling → CleaningUp → Ended
type Lifecycle uint8

const (
	// Idle waits for the process to be marked dirty.
	Idle Lifecycle = iota
	// Running invokes the step function.
	Running
	// Effect runs pending effect actions.
	Effect
	// CleaningUp releases routine cleanups and effect cleanups.
	CleaningUp
	// Transitioning cancels children before the process is replaced.
	Transitioning
	// Canceling cancels children before the process ends.
	Canceling
	// Ended is terminal for this incarnation of the chain.
	Ended
)

var lifecycleNames = [...]string{
	Idle:          "idle",
	Running:       "running",
	Effect:        "effect",
	CleaningUp:    "cleaning_up",
	Transitioning: "transitioning",
	Canceling:     "canceling",
	Ended:         "ended",
}

func (l Lifecycle) String() string {
	if int(l) < len(lifecycleNames) {
		return lifecycleNames[l]
	}
	return "unknown"
}

// MarshalYAML encodes the lifecycle by name.
func (l Lifecycle) MarshalYAML() (any, error) {
	return l.String(), nil
}

// parkSettled stops a drive once the process is quiescent.
func parkSettled(l Lifecycle) bool { return l == Idle }

// parkPhased stops a drive at every phase boundary of a scheduling pass.
func parkPhased(l Lifecycle) bool {
	return l == Idle || l == Effect || l == Transitioning
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ProcessInfo describes a live process for debugging.
type ProcessInfo struct {
	ChainID   ChainID   `yaml:"chain"`
	Label     string    `yaml:"label"`
	Lifecycle Lifecycle `yaml:"lifecycle"`
	Dirty     bool      `yaml:"dirty,omitempty"`
	Hooks     int       `yaml:"hooks"`
	Parent    ChainID   `yaml:"parent,omitempty"`
	Stack     []string  `yaml:"stack,flow"`
	Ambients  []string  `yaml:"ambients,flow,omitempty"`
	Events    []string  `yaml:"events,flow,omitempty"`
	PropsText string    `yaml:"props,omitempty"`
	Props     any       `yaml:"-"`
}

func (p *process) info() ProcessInfo {
	info := ProcessInfo{
		ChainID:   p.id,
		Label:     p.label,
		Lifecycle: p.lifecycle,
		Dirty:     p.dirty,
		Hooks:     len(p.slots),
		Stack:     p.labelStack(),
		Ambients:  p.overlay.labels(),
		Events:    p.m.events.subscriptions(p),
		Props:     p.desc.props,
	}
	if p.parent != nil {
		info.Parent = p.parent.id
	}
	if p.desc.props != nil {
		info.PropsText = fmt.Sprint(p.desc.props)
	}
	return info
}

// Snapshot describes the live processes in registration order.
func (m *Machine) Snapshot() []ProcessInfo {
	out := make([]ProcessInfo, 0, len(m.order))
	for _, p := range m.order {
		out = append(out, p.info())
	}
	return out
}

type snapshotDoc struct {
	Processes []ProcessInfo `yaml:"processes"`
}

// WriteSnapshot writes Snapshot to w as a YAML document.
func (m *Machine) WriteSnapshot(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshotDoc{Processes: m.Snapshot()}); err != nil {
		return err
	}
	return enc.Close()
}

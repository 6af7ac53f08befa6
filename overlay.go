// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// overlay is a persistent chain of ambient bindings. A nil *overlay is the
// empty overlay. Nodes are never mutated after construction apart from the
// memoized flattened map.
type overlay struct {
	key    *ambientKey
	value  any
	prev   *overlay
	parent *overlay
	built  map[*ambientKey]any
}

// set returns an overlay binding k to v on top of o.
func (o *overlay) set(k *ambientKey, v any) *overlay {
	return &overlay{key: k, value: v, prev: o}
}

// withParent returns an overlay whose own bindings shadow parent's.
func (o *overlay) withParent(parent *overlay) *overlay {
	switch {
	case o == nil:
		return parent
	case parent == nil:
		return o
	}
	return &overlay{prev: o, parent: parent}
}

// build flattens the chain once. Parent bindings are applied first and the
// newest own binding wins.
func (o *overlay) build() map[*ambientKey]any {
	if o == nil {
		return nil
	}
	if o.built != nil {
		return o.built
	}
	nodes := o.collect(nil)
	built := make(map[*ambientKey]any, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		built[nodes[i].key] = nodes[i].value
	}
	o.built = built
	return built
}

// collect appends binding nodes newest first.
func (o *overlay) collect(nodes []*overlay) []*overlay {
	if o.key != nil {
		nodes = append(nodes, o)
	}
	if o.prev != nil {
		nodes = o.prev.collect(nodes)
	}
	if o.parent != nil {
		nodes = o.parent.collect(nodes)
	}
	return nodes
}

// labels lists the bound ambient labels, newest binding first.
func (o *overlay) labels() []string {
	if o == nil {
		return nil
	}
	seen := make(map[*ambientKey]bool)
	var out []string
	for _, n := range o.collect(nil) {
		if !seen[n.key] {
			seen[n.key] = true
			out = append(out, n.key.label)
		}
	}
	return out
}

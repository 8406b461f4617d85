// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dag

// View is a DAG view pinned by a sink set: the ancestor-closure of those
// sinks, plus enough bookkeeping to merge two views and to answer
// lowest-common-ancestor queries.
type View[V, E any] struct {
	nodes map[*Node[V, E]]bool
	order []*Node[V, E]
}

// FromSinks returns the ancestor-closure of sinks: every sink, every
// ancestor of every sink, with no duplicates.
func FromSinks[V, E any](sinks []*Node[V, E]) *View[V, E] {
	return FromSinksWhile(sinks, func(*Node[V, E]) bool { return true })
}

// FromSinksWhile returns the ancestor-closure of sinks, except that a
// node for which pred returns false is included in the view but its
// parents are not traversed further.
func FromSinksWhile[V, E any](sinks []*Node[V, E], pred func(*Node[V, E]) bool) *View[V, E] {
	v := &View[V, E]{nodes: make(map[*Node[V, E]]bool)}
	var visit func(n *Node[V, E])
	visit = func(n *Node[V, E]) {
		if v.nodes[n] {
			return
		}
		v.nodes[n] = true
		if pred(n) {
			for _, e := range n.Incoming() {
				visit(e.Source())
			}
		}
		v.order = append(v.order, n)
	}
	for _, s := range sinks {
		visit(s)
	}
	return v
}

// Contains reports whether n is part of the view.
func (v *View[V, E]) Contains(n *Node[V, E]) bool {
	return v.nodes[n]
}

// Nodes returns the nodes of the view in the depth-first post-order of
// the closure: each node comes after the parents traversed from it.
func (v *View[V, E]) Nodes() []*Node[V, E] {
	out := make([]*Node[V, E], len(v.order))
	copy(out, v.order)
	return out
}

// Len returns the number of nodes in the view.
func (v *View[V, E]) Len() int {
	return len(v.nodes)
}

// OutgoingWithin returns the outgoing edges of n whose target also lies
// within the view.
func (v *View[V, E]) OutgoingWithin(n *Node[V, E]) []OutEdge[V, E] {
	var out []OutEdge[V, E]
	for _, oe := range n.OutgoingEdges() {
		if v.Contains(oe.Target) {
			out = append(out, oe)
		}
	}
	return out
}

// MergeStrategy controls how Merge reacts to a node gaining new outgoing
// edges as a result of the union.
type MergeStrategy int

const (
	// IgnoreConflicts unions the views unconditionally.
	IgnoreConflicts MergeStrategy = iota
	// FailOnConflicts runs check against every node that gains outgoing
	// edges from the union, aborting (view left unchanged) on the first
	// failure.
	FailOnConflicts
)

// Merge returns the union of v and other. With FailOnConflicts, check is
// invoked for every node whose within-view outgoing-edge set grows as a
// result of the union; if check returns an error for any such node, the
// merge is aborted and that error is returned with a nil view.
func (v *View[V, E]) Merge(other *View[V, E], strategy MergeStrategy, check func(n *Node[V, E]) error) (*View[V, E], error) {
	merged := &View[V, E]{nodes: make(map[*Node[V, E]]bool, v.Len()+other.Len())}
	for _, n := range v.order {
		merged.nodes[n] = true
		merged.order = append(merged.order, n)
	}
	var grown []*Node[V, E]
	for _, n := range other.order {
		if merged.nodes[n] {
			continue
		}
		merged.nodes[n] = true
		merged.order = append(merged.order, n)
	}
	if strategy == FailOnConflicts {
		for _, n := range merged.order {
			before := len(v.OutgoingWithin(n))
			if !v.Contains(n) {
				before = 0
			}
			after := len(merged.OutgoingWithin(n))
			if after > before {
				grown = append(grown, n)
			}
		}
		for _, n := range grown {
			if err := check(n); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// LowestCommonAncestors returns the lowest common ancestors of the given
// views: nodes that are ancestors of every view (members of each view's
// closure) and which have no child also common to every view.
func LowestCommonAncestors[V, E any](views []*View[V, E]) []*Node[V, E] {
	if len(views) == 0 {
		return nil
	}
	common := make(map[*Node[V, E]]bool)
	for n := range views[0].nodes {
		inAll := true
		for _, v := range views[1:] {
			if !v.Contains(n) {
				inAll = false
				break
			}
		}
		if inAll {
			common[n] = true
		}
	}
	var lowest []*Node[V, E]
	for n := range common {
		hasLowerCommonChild := false
		for _, oe := range n.OutgoingEdges() {
			if common[oe.Target] {
				hasLowerCommonChild = true
				break
			}
		}
		if !hasLowerCommonChild {
			lowest = append(lowest, n)
		}
	}
	SortNodes(lowest)
	return lowest
}

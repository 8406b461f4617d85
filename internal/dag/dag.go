// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dag implements the ancestry-DAG collaborator required by
// portdiff: a shared, immutable node holding a value plus an ordered list
// of incoming edges to parent nodes, with weak back-references from
// parents to children so that descendants which are no longer reachable
// by any caller can be dropped silently.
//
// Node identity is the pointer itself: two nodes are equal iff they are
// the same *Node, and ordering (for use as map/set keys that need a
// total order) is the pointer value.
package dag

import (
	"sort"
	"sync"
	"unsafe"
	"weak"
)

// Node is a single vertex of the ancestry DAG. A Node is immutable once
// constructed except for its child list, which is append-only.
type Node[V, E any] struct {
	value    V
	incoming []*InEdge[V, E]

	mu       sync.Mutex
	children []weak.Pointer[Node[V, E]]
}

// InEdge is one incoming edge of a Node, carrying the edge payload and a
// strong reference to the source (parent) Node.
type InEdge[V, E any] struct {
	source *Node[V, E]
	data   E
}

// NewNode constructs a Node holding value with the given parents, each
// paired with the edge data describing the rewrite that produced this
// node from that parent. The new node is registered as a (weak) child
// of every parent.
func NewNode[V, E any](value V, parents []*Node[V, E], data []E) *Node[V, E] {
	if len(parents) != len(data) {
		panic("dag: parents and data must have the same length")
	}
	n := &Node[V, E]{value: value}
	n.incoming = make([]*InEdge[V, E], len(parents))
	for i, p := range parents {
		n.incoming[i] = &InEdge[V, E]{source: p, data: data[i]}
	}
	wp := weak.Make(n)
	for _, p := range parents {
		p.addChild(wp)
	}
	return n
}

// Value returns the value held at n.
func (n *Node[V, E]) Value() V { return n.value }

// Incoming returns the ordered incoming edges of n.
func (n *Node[V, E]) Incoming() []*InEdge[V, E] {
	return n.incoming
}

// Source returns the parent endpoint of e.
func (e *InEdge[V, E]) Source() *Node[V, E] { return e.source }

// Data returns the payload carried by e.
func (e *InEdge[V, E]) Data() E { return e.data }

// Parents returns the distinct source nodes of n's incoming edges, in
// first-occurrence order.
func (n *Node[V, E]) Parents() []*Node[V, E] {
	seen := make(map[*Node[V, E]]bool, len(n.incoming))
	out := make([]*Node[V, E], 0, len(n.incoming))
	for _, e := range n.incoming {
		if !seen[e.source] {
			seen[e.source] = true
			out = append(out, e.source)
		}
	}
	return out
}

// addChild registers wp as a (weak) child of n. The child list is
// append-only: existing observers may continue to iterate over a stale
// snapshot safely.
func (n *Node[V, E]) addChild(wp weak.Pointer[Node[V, E]]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, wp)
}

// Children returns the live children of n, dropping any weak reference
// whose target has been collected. Order is the order in which children
// were constructed (the DAG's edge order).
func (n *Node[V, E]) Children() []*Node[V, E] {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node[V, E], 0, len(n.children))
	alive := n.children[:0:0]
	for _, wp := range n.children {
		if c := wp.Value(); c != nil {
			out = append(out, c)
			alive = append(alive, wp)
		}
	}
	n.children = alive
	return out
}

// OutEdge is an outgoing edge of a Node: a live child together with the
// incoming-edge payload that child recorded for this source.
type OutEdge[V, E any] struct {
	Target *Node[V, E]
	Data   E
}

// OutgoingEdges returns the outgoing edges of n: for every live child of
// n, every incoming edge of that child whose source is n.
func (n *Node[V, E]) OutgoingEdges() []OutEdge[V, E] {
	var out []OutEdge[V, E]
	for _, c := range n.Children() {
		for _, e := range c.Incoming() {
			if e.source == n {
				out = append(out, OutEdge[V, E]{Target: c, Data: e.data})
			}
		}
	}
	return out
}

// Less gives a total, arbitrary order over nodes based on pointer value,
// suitable for deterministic iteration of node sets.
func Less[V, E any](a, b *Node[V, E]) bool {
	return uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b))
}

// SortNodes sorts nodes in place using Less.
func SortNodes[V, E any](nodes []*Node[V, E]) {
	sort.Slice(nodes, func(i, j int) bool { return Less(nodes[i], nodes[j]) })
}

// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import (
	"fmt"

	"github.com/lmondada/portdiff/internal/dag"
)

// AreCompatible reports whether diffs are squashable: whether, for every
// node in the ancestry DAG induced by diffs, the outgoing edges of that
// node within the induced DAG have pairwise-disjoint Subgraph.Nodes.
//
// Compatibility is symmetric and closed under subset: if AreCompatible(S)
// then AreCompatible(T) for every T subset of S, since removing sinks can
// only shrink the induced DAG and each node's outgoing-edge set within
// it.
func AreCompatible[P comparable, G Graph[P]](diffs []*PortDiff[P, G]) bool {
	view := viewOf(diffs)
	return isSquashable(view) == nil
}

func viewOf[P comparable, G Graph[P]](diffs []*PortDiff[P, G]) *dag.View[PortDiffData[P, G], EdgeData] {
	sinks := make([]*dagNode[P, G], len(diffs))
	for i, d := range diffs {
		sinks[i] = d.node
	}
	return dag.FromSinks(sinks)
}

// isSquashable checks the §4.5 predicate directly against a DAG view.
func isSquashable[P comparable, G Graph[P]](view *dag.View[PortDiffData[P, G], EdgeData]) error {
	for _, n := range view.Nodes() {
		seen := make(map[NodeID]bool)
		for _, oe := range view.OutgoingWithin(n) {
			for _, nd := range oe.Data.Subgraph.Nodes {
				if seen[nd] {
					return &IncompatiblePortDiffError{
						Reason: fmt.Sprintf("node %d is rewritten by two distinct descendants of a common ancestor", nd),
					}
				}
				seen[nd] = true
			}
		}
	}
	return nil
}

// checkNewIncoming validates that forming a new PortDiff with the given
// parents and per-parent EdgeData keeps the resulting ancestry
// squashable: the per-parent ancestor DAGs are merged, and the union of
// the new edges with each parent's already-existing outgoing edges
// within that merged view must remain pairwise node-disjoint. Outgoing
// edges to diffs outside the view (such as earlier sibling rewrites of a
// parent) are not considered.
func checkNewIncoming[P comparable, G Graph[P]](parents []*PortDiff[P, G], edges []EdgeData) error {
	view := viewOf(parents)
	if err := isSquashable(view); err != nil {
		return err
	}
	// Simulate the new outgoing edges at each parent: a node is touched
	// twice if it appears both in the new EdgeData.Subgraph.Nodes and in
	// an existing (already squashable) outgoing edge of that same parent
	// within the merged view, or in another parent's new edge data for
	// the same parent (ruled out earlier by invariant 3, checked again
	// here defensively).
	perParentNew := make(map[*dagNode[P, G]][]NodeID)
	for i, p := range parents {
		perParentNew[p.node] = append(perParentNew[p.node], edges[i].Subgraph.Nodes...)
	}
	for parentNode, newNodes := range perParentNew {
		seen := make(map[NodeID]bool)
		for _, oe := range view.OutgoingWithin(parentNode) {
			for _, nd := range oe.Data.Subgraph.Nodes {
				seen[nd] = true
			}
		}
		for _, nd := range newNodes {
			if seen[nd] {
				return &IncompatiblePortDiffError{
					Reason: fmt.Sprintf("node %d is removed both by an existing descendant and by this rewrite", nd),
				}
			}
			seen[nd] = true
		}
	}
	return nil
}

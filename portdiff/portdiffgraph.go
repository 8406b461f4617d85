// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import "github.com/lmondada/portdiff/internal/dag"

// PortDiffGraph is a view over the ancestry DAG pinned by a set of sink
// PortDiffs: the sinks together with every ancestor reachable from them.
// It is the unit that Squash/ExtractGraph operate over.
type PortDiffGraph[P comparable, G Graph[P]] struct {
	view *dag.View[PortDiffData[P, G], EdgeData]
}

// FromSinks returns the PortDiffGraph view of sinks: every sink and every
// ancestor of every sink.
func FromSinks[P comparable, G Graph[P]](sinks []*PortDiff[P, G]) *PortDiffGraph[P, G] {
	return &PortDiffGraph[P, G]{view: dag.FromSinks(toNodes(sinks))}
}

// FromSinksWhile returns the PortDiffGraph view of sinks, except that a
// diff for which pred returns false is included in the view but its
// parents are not traversed further.
func FromSinksWhile[P comparable, G Graph[P]](sinks []*PortDiff[P, G], pred func(*PortDiff[P, G]) bool) *PortDiffGraph[P, G] {
	wrapped := func(n *dagNode[P, G]) bool { return pred(wrapNode[P, G](n)) }
	return &PortDiffGraph[P, G]{view: dag.FromSinksWhile(toNodes(sinks), wrapped)}
}

func toNodes[P comparable, G Graph[P]](diffs []*PortDiff[P, G]) []*dagNode[P, G] {
	out := make([]*dagNode[P, G], len(diffs))
	for i, d := range diffs {
		out[i] = d.node
	}
	return out
}

// Contains reports whether d is part of the view.
func (pg *PortDiffGraph[P, G]) Contains(d *PortDiff[P, G]) bool {
	return pg.view.Contains(d.node)
}

// Diffs returns the diffs in the view, ancestors before the descendants
// that pulled them in.
func (pg *PortDiffGraph[P, G]) Diffs() []*PortDiff[P, G] {
	nodes := pg.view.Nodes()
	out := make([]*PortDiff[P, G], len(nodes))
	for i, n := range nodes {
		out[i] = wrapNode[P, G](n)
	}
	return out
}

// Len returns the number of diffs in the view.
func (pg *PortDiffGraph[P, G]) Len() int {
	return pg.view.Len()
}

// Merge returns the union of pg and other. With FailOnConflicts, every
// diff whose within-view outgoing-edge set grows as a result of the
// union is re-checked for squashability; on the first violation the
// merge is aborted and an *IncompatiblePortDiffError is returned.
func (pg *PortDiffGraph[P, G]) Merge(other *PortDiffGraph[P, G], strategy dag.MergeStrategy) (*PortDiffGraph[P, G], error) {
	inUnion := func(n *dagNode[P, G]) bool {
		return pg.view.Contains(n) || other.view.Contains(n)
	}
	check := func(n *dagNode[P, G]) error {
		seen := make(map[NodeID]bool)
		for _, oe := range n.OutgoingEdges() {
			if !inUnion(oe.Target) {
				continue
			}
			for _, nd := range oe.Data.Subgraph.Nodes {
				if seen[nd] {
					return &IncompatiblePortDiffError{
						Reason: "merge introduces two descendants of a common ancestor that rewrite the same node",
					}
				}
				seen[nd] = true
			}
		}
		return nil
	}
	merged, err := pg.view.Merge(other.view, strategy, check)
	if err != nil {
		return nil, err
	}
	return &PortDiffGraph[P, G]{view: merged}, nil
}

// IsSquashable reports whether pg's view satisfies the compatibility
// predicate of §4.5.
func (pg *PortDiffGraph[P, G]) IsSquashable() bool {
	return isSquashable[P, G](pg.view) == nil
}

// LowestCommonAncestors returns the lowest common ancestors of the given
// views: diffs that are ancestors of every view which have no child also
// common to every view.
func LowestCommonAncestors[P comparable, G Graph[P]](views []*PortDiffGraph[P, G]) []*PortDiff[P, G] {
	raw := make([]*dag.View[PortDiffData[P, G], EdgeData], len(views))
	for i, v := range views {
		raw[i] = v.view
	}
	nodes := dag.LowestCommonAncestors(raw)
	out := make([]*PortDiff[P, G], len(nodes))
	for i, n := range nodes {
		out[i] = wrapNode[P, G](n)
	}
	return out
}

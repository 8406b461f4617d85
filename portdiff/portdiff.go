// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import (
	"iter"

	"github.com/lmondada/portdiff/internal/dag"
)

// IncomingEdgeIndex indexes into a PortDiff's ordered incoming edges.
type IncomingEdgeIndex int

// BoundaryEntry is one position in a PortDiff's boundary list: the site
// it resolves to, and which incoming edge's port_map it is reached
// through.
type BoundaryEntry[P comparable] struct {
	Site     BoundarySite[P]
	Incoming IncomingEdgeIndex
}

// PortDiffData is the value held at a PortDiff node: the replacement
// graph for this diff, plus its boundary.
type PortDiffData[P comparable, G Graph[P]] struct {
	Graph    G
	Boundary []BoundaryEntry[P]
	// Value is an optional opaque payload (e.g. a cached cost),
	// transparent to the core.
	Value any
}

// EdgeData is the payload of a parent-to-child ancestry edge: the
// subgraph of the parent being replaced, and the bijection between the
// parent ports that cross into the child and the child's boundary
// indices.
type EdgeData struct {
	Subgraph Subgraph
	PortMap  *PortMap
}

type dagNode[P comparable, G Graph[P]] = dag.Node[PortDiffData[P, G], EdgeData]
type dagInEdge[P comparable, G Graph[P]] = dag.InEdge[PortDiffData[P, G], EdgeData]

// PortDiff is a node in the ancestry DAG holding one PortDiffData, with
// ordered incoming edges each carrying EdgeData and referring to a
// parent PortDiff.
//
// A PortDiff is created once and never mutated. Identity is by pointer:
// two PortDiffs are Equal iff they are the same node, and Less gives a
// total, arbitrary order suitable for deterministic iteration.
type PortDiff[P comparable, G Graph[P]] struct {
	node *dagNode[P, G]
}

func wrapNode[P comparable, G Graph[P]](n *dagNode[P, G]) *PortDiff[P, G] {
	if n == nil {
		return nil
	}
	return &PortDiff[P, G]{node: n}
}

// FromGraph returns a root PortDiff over g: empty boundary, no incoming
// edges.
func FromGraph[P comparable, G Graph[P]](g G) *PortDiff[P, G] {
	n := dag.NewNode[PortDiffData[P, G], EdgeData](PortDiffData[P, G]{Graph: g}, nil, nil)
	return wrapNode[P, G](n)
}

// newDiffNode builds the DAG node for a freshly constructed PortDiff,
// wiring one incoming edge per parent in order.
func newDiffNode[P comparable, G Graph[P]](g G, boundary []BoundaryEntry[P], parents []*PortDiff[P, G], edges []EdgeData) *dagNode[P, G] {
	parentNodes := make([]*dagNode[P, G], len(parents))
	for i, p := range parents {
		parentNodes[i] = p.node
	}
	return dag.NewNode[PortDiffData[P, G], EdgeData](
		PortDiffData[P, G]{Graph: g, Boundary: boundary},
		parentNodes,
		edges,
	)
}

// Equal reports whether d and other are the same PortDiff node.
func (d *PortDiff[P, G]) Equal(other *PortDiff[P, G]) bool {
	return d == other || (d != nil && other != nil && d.node == other.node)
}

// Less gives a total, arbitrary order over PortDiffs, usable to make
// iteration over PortDiff sets deterministic within a run.
func Less[P comparable, G Graph[P]](a, b *PortDiff[P, G]) bool {
	return dag.Less(a.node, b.node)
}

// Graph returns the replacement graph held by d.
func (d *PortDiff[P, G]) Graph() G {
	return d.node.Value().Graph
}

// Value returns the opaque value attached to d, if any.
func (d *PortDiff[P, G]) Value() any {
	return d.node.Value().Value
}

// NBoundaryPorts returns the number of boundary positions of d.
func (d *PortDiff[P, G]) NBoundaryPorts() int {
	return len(d.node.Value().Boundary)
}

// BoundarySite returns the boundary site at index i.
func (d *PortDiff[P, G]) BoundarySite(i BoundaryIndex) BoundarySite[P] {
	return d.node.Value().Boundary[i].Site
}

// BoundaryIter returns every boundary index of d, in order.
func (d *PortDiff[P, G]) BoundaryIter() []BoundaryIndex {
	out := make([]BoundaryIndex, d.NBoundaryPorts())
	for i := range out {
		out[i] = BoundaryIndex(i)
	}
	return out
}

// AllIncoming returns d's incoming edges, in order.
func (d *PortDiff[P, G]) AllIncoming() []*dagInEdge[P, G] {
	return d.node.Incoming()
}

// AllParents returns the distinct parents of d, in first-occurrence
// order.
func (d *PortDiff[P, G]) AllParents() []*PortDiff[P, G] {
	ps := d.node.Parents()
	out := make([]*PortDiff[P, G], len(ps))
	for i, p := range ps {
		out[i] = wrapNode[P, G](p)
	}
	return out
}

// incomingEdgeIndex returns which incoming edge boundary index i is
// reached through.
func (d *PortDiff[P, G]) incomingEdgeIndex(i BoundaryIndex) IncomingEdgeIndex {
	return d.node.Value().Boundary[i].Incoming
}

// ParentPort returns the port in the parent that boundary index i maps
// to, via the port_map of the incoming edge i is attached to.
func (d *PortDiff[P, G]) ParentPort(i BoundaryIndex) Owned[Port, P, G] {
	edge := d.node.Incoming()[d.incomingEdgeIndex(i)]
	parentPort, ok := edge.Data().PortMap.Reverse(i)
	if !ok {
		panic("portdiff: boundary index has no parent port mapping")
	}
	return Owned[Port, P, G]{Data: parentPort, Owner: wrapNode[P, G](edge.Source())}
}

// BoundAncestor follows parent chains from boundary index i while the
// mapped port is itself a boundary port, stopping at the first Bound
// port. It terminates because every chain is finite and strictly
// ascends the DAG.
func (d *PortDiff[P, G]) BoundAncestor(i BoundaryIndex) Owned[BoundPort, P, G] {
	cur := d
	idx := i
	for {
		pp := cur.ParentPort(idx)
		if pp.Data.IsBoundary {
			cur = pp.Owner
			idx = pp.Data.Boundary
			continue
		}
		return Owned[BoundPort, P, G]{Data: pp.Data.Bound, Owner: pp.Owner}
	}
}

// boundAncestorOfPort generalizes BoundAncestor to an arbitrary owned
// Port: if the port is already Bound it is its own bound ancestor,
// otherwise BoundAncestor is used.
func boundAncestorOfPort[P comparable, G Graph[P]](owned Owned[Port, P, G]) Owned[BoundPort, P, G] {
	if !owned.Data.IsBoundary {
		return Owned[BoundPort, P, G]{Data: owned.Data.Bound, Owner: owned.Owner}
	}
	return owned.Owner.BoundAncestor(owned.Data.Boundary)
}

// Descendants lazily walks the transitive closure of outgoing edges
// starting at bp (on d), following each successive port_map to the
// child's boundary index it is exposed at. The walk is depth-first,
// parent before child, ties broken by the DAG's edge order; bp itself
// (owned by d) is the first element produced.
func (d *PortDiff[P, G]) Descendants(bp BoundPort) iter.Seq[Owned[Port, P, G]] {
	return func(yield func(Owned[Port, P, G]) bool) {
		var walk func(owner *PortDiff[P, G], port Port) bool
		walk = func(owner *PortDiff[P, G], port Port) bool {
			if !yield(Owned[Port, P, G]{Data: port, Owner: owner}) {
				return false
			}
			for _, child := range owner.node.Children() {
				for _, e := range child.Incoming() {
					if e.Source() != owner.node {
						continue
					}
					if bi, ok := e.Data().PortMap.Get(port); ok {
						if !walk(wrapNode[P, G](child), BoundaryPort(bi)) {
							return false
						}
					}
				}
			}
			return true
		}
		walk(d, BoundPortOf(bp))
	}
}

// OppositePorts returns the descendants of the bound port opposite to
// port's bound ancestor: the set of ports in other diffs that are the
// "other side" of the logical edge reached through port.
func OppositePorts[P comparable, G Graph[P]](port Owned[Port, P, G]) iter.Seq[Owned[Port, P, G]] {
	ba := boundAncestorOfPort(port)
	return ba.Owner.Descendants(ba.Data.Opposite())
}

// ResolvePort follows wire chains from port until a concrete site is
// reached or the wire leaves the subsystem (no matching end recorded in
// this diff). It returns at most one port: the first port reached that
// is Bound or sits on a concrete site, or nil when the wire's other end
// is not recorded in its diff. The descendants of that port are not
// enumerated.
func ResolvePort[P comparable, G Graph[P]](port Owned[Port, P, G]) []Owned[Port, P, G] {
	if !port.Data.IsBoundary {
		return []Owned[Port, P, G]{port}
	}
	site := port.Owner.BoundarySite(port.Data.Boundary)
	if !site.IsWire {
		return []Owned[Port, P, G]{port}
	}
	for _, j := range port.Owner.BoundaryIter() {
		if j == port.Data.Boundary {
			continue
		}
		other := port.Owner.BoundarySite(j)
		if other.IsWire && other.WireID == site.WireID && other.End != site.End {
			// Having crossed the wire to its opposite end within this
			// diff, continue resolution from where that end comes from
			// in the parent, rather than re-examining this diff's own
			// boundary (which would just rediscover port itself).
			return ResolvePort(port.Owner.ParentPort(j))
		}
	}
	return nil
}

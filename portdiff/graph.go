// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package portdiff implements an incremental, persistent data structure
// for representing and composing local rewrites of attributed graphs.
//
// A PortDiff records a single rewrite (a subgraph replacement) as a node
// in an ancestry DAG whose edges carry the subgraph being replaced
// together with a bijection between affected boundary ports in parent
// and child. From any consistent (squashable) set of PortDiffs one can
// extract a single concrete rewritten graph; an inconsistent set is
// rejected with IncompatiblePortDiffError.
package portdiff

// NodeID identifies a node within a Graph implementation. Node identity
// is assigned and owned by the Graph implementation, not by portdiff.
type NodeID int64

// EdgeID identifies an edge within a Graph implementation.
type EdgeID int64

// EdgeEnd distinguishes the two ends of an edge. It is assigned by the
// Graph implementation when the edge is created and is independent of
// any directedness the edge may additionally carry.
type EdgeEnd int8

const (
	Left EdgeEnd = iota
	Right
)

// Opposite returns the other end of the same edge.
func (e EdgeEnd) Opposite() EdgeEnd {
	if e == Left {
		return Right
	}
	return Left
}

func (e EdgeEnd) String() string {
	if e == Left {
		return "Left"
	}
	return "Right"
}

// Site is a position on a node where edges may attach: zero, one, or
// many edges may meet at a single site.
type Site[P comparable] struct {
	Node NodeID
	Port P
}

// BoundPort uniquely identifies one endpoint of an existing edge.
type BoundPort struct {
	Edge EdgeID
	End  EdgeEnd
}

// Opposite returns the other endpoint of the same edge.
func (bp BoundPort) Opposite() BoundPort {
	return BoundPort{Edge: bp.Edge, End: bp.End.Opposite()}
}

// Graph is the abstract ported-graph trait the portdiff core is built
// against. Concrete implementations (a general port-graph, a circuit
// adapter, ...) are out of scope for this package; see the testgraph
// package for a minimal conformance implementation used by this
// package's own tests.
//
// All methods must be total over their documented domain and must not
// retain a reference to slices they return: callers are free to mutate
// returned slices.
type Graph[P comparable] interface {
	// Nodes returns every node in the graph, in a stable order for a
	// given graph value.
	Nodes() []NodeID

	// Edges returns every edge in the graph, in a stable order for a
	// given graph value.
	Edges() []EdgeID

	// PortSite translates a bound port to the site it sits at. It is
	// total and fully determined by the edge's stored endpoints.
	PortSite(bp BoundPort) Site[P]

	// BoundPorts returns the bound ports currently sitting at s. It may
	// return zero, one, or many: sites are not unique per edge.
	BoundPorts(s Site[P]) []BoundPort

	// Sites returns every site present on n.
	Sites(n NodeID) []Site[P]

	// IncidentNode returns the node incident to edge at end.
	IncidentNode(edge EdgeID, end EdgeEnd) NodeID

	// LinkSites mutates the graph by attaching a new edge between left
	// and right. The new edge's Left end sits at left, its Right end at
	// right.
	LinkSites(left, right Site[P])

	// AddSubgraph copies the node-induced subgraph of src on nodes into
	// the receiver: every node in nodes, and every edge of src whose
	// both endpoints lie in nodes. It returns a map from the copied
	// node's identity in src to its identity in the receiver.
	AddSubgraph(src Graph[P], nodes []NodeID) map[NodeID]NodeID
}

// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

// Subgraph is a (nodes, internal-edges) pair within a graph: the nodes
// removed by a rewrite together with the edges of the parent graph
// entirely contained in that node set.
type Subgraph struct {
	Nodes []NodeID
	Edges []EdgeID
}

// NodeSet returns Nodes as a set for membership testing.
func (s Subgraph) NodeSet() map[NodeID]bool {
	set := make(map[NodeID]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		set[n] = true
	}
	return set
}

// HasNode reports whether n is one of s's nodes.
func (s Subgraph) HasNode(n NodeID) bool {
	for _, m := range s.Nodes {
		if m == n {
			return true
		}
	}
	return false
}

// EdgeSet returns Edges as a set for membership testing.
func (s Subgraph) EdgeSet() map[EdgeID]bool {
	set := make(map[EdgeID]bool, len(s.Edges))
	for _, e := range s.Edges {
		set[e] = true
	}
	return set
}

// induced builds the Subgraph of g consisting of nodes and every edge of
// g whose both endpoints lie in nodes.
func induced[P comparable](g Graph[P], nodes []NodeID) Subgraph {
	nodeSet := make(map[NodeID]bool, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = true
	}
	var edges []EdgeID
	for _, e := range g.Edges() {
		l := g.IncidentNode(e, Left)
		r := g.IncidentNode(e, Right)
		if nodeSet[l] && nodeSet[r] {
			edges = append(edges, e)
		}
	}
	return Subgraph{Nodes: append([]NodeID(nil), nodes...), Edges: edges}
}

// boundaryBoundPorts returns the bound ports on the boundary of s within
// g: bound ports at sites on s.Nodes whose edge is not internal to s
// (i.e. not in s.Edges).
func boundaryBoundPorts[P comparable](g Graph[P], s Subgraph) []BoundPort {
	internal := s.EdgeSet()
	var out []BoundPort
	for _, n := range s.Nodes {
		for _, site := range g.Sites(n) {
			for _, bp := range g.BoundPorts(site) {
				if !internal[bp.Edge] {
					out = append(out, bp)
				}
			}
		}
	}
	return out
}

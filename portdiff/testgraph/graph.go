// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testgraph provides a minimal, in-memory implementation of
// portdiff.Graph used to exercise the portdiff package's own tests: a
// directed multigraph whose nodes carry a fixed, ordered list of named
// ports.
package testgraph

import (
	"sort"

	"github.com/lmondada/portdiff/portdiff"
)

type nodeInfo[P comparable] struct {
	ports []P
}

type edge[P comparable] struct {
	left, right portdiff.Site[P]
}

// Graph is a directed multigraph over node IDs and EdgeID-addressed
// edges, each edge joining two sites. Node and edge IDs are assigned by
// monotonically increasing counters, mirroring the allocation strategy
// of the package this module's graph abstractions are styled on.
type Graph[P comparable] struct {
	nextNode portdiff.NodeID
	nextEdge portdiff.EdgeID
	nodes    map[portdiff.NodeID]*nodeInfo[P]
	edges    map[portdiff.EdgeID]edge[P]
}

// New returns an empty Graph.
func New[P comparable]() *Graph[P] {
	return &Graph[P]{
		nodes: make(map[portdiff.NodeID]*nodeInfo[P]),
		edges: make(map[portdiff.EdgeID]edge[P]),
	}
}

// AddNode adds a new node with the given ordered port labels and returns
// its ID.
func (g *Graph[P]) AddNode(ports ...P) portdiff.NodeID {
	id := g.nextNode
	g.nextNode++
	g.nodes[id] = &nodeInfo[P]{ports: append([]P(nil), ports...)}
	return id
}

// Link adds a new edge between left and right and returns its ID. Left
// is attached at the edge's Left end, right at its Right end.
func (g *Graph[P]) Link(left, right portdiff.Site[P]) portdiff.EdgeID {
	id := g.nextEdge
	g.nextEdge++
	g.edges[id] = edge[P]{left: left, right: right}
	return id
}

// Nodes returns every node ID, in ascending order.
func (g *Graph[P]) Nodes() []portdiff.NodeID {
	out := make([]portdiff.NodeID, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every edge ID, in ascending order.
func (g *Graph[P]) Edges() []portdiff.EdgeID {
	out := make([]portdiff.EdgeID, 0, len(g.edges))
	for e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PortSite returns the site at the given end of bp.Edge.
func (g *Graph[P]) PortSite(bp portdiff.BoundPort) portdiff.Site[P] {
	e, ok := g.edges[bp.Edge]
	if !ok {
		panic("testgraph: unknown edge")
	}
	if bp.End == portdiff.Left {
		return e.left
	}
	return e.right
}

// BoundPorts returns every bound port currently sitting at s.
func (g *Graph[P]) BoundPorts(s portdiff.Site[P]) []portdiff.BoundPort {
	var out []portdiff.BoundPort
	for _, id := range g.Edges() {
		e := g.edges[id]
		if e.left == s {
			out = append(out, portdiff.BoundPort{Edge: id, End: portdiff.Left})
		}
		if e.right == s {
			out = append(out, portdiff.BoundPort{Edge: id, End: portdiff.Right})
		}
	}
	return out
}

// Sites returns every site declared on n, in the order its ports were
// given to AddNode.
func (g *Graph[P]) Sites(n portdiff.NodeID) []portdiff.Site[P] {
	info, ok := g.nodes[n]
	if !ok {
		return nil
	}
	out := make([]portdiff.Site[P], len(info.ports))
	for i, p := range info.ports {
		out[i] = portdiff.Site[P]{Node: n, Port: p}
	}
	return out
}

// IncidentNode returns the node incident to edge at end.
func (g *Graph[P]) IncidentNode(edgeID portdiff.EdgeID, end portdiff.EdgeEnd) portdiff.NodeID {
	return g.PortSite(portdiff.BoundPort{Edge: edgeID, End: end}).Node
}

// LinkSites attaches a new edge between left and right.
func (g *Graph[P]) LinkSites(left, right portdiff.Site[P]) {
	g.Link(left, right)
}

// AddSubgraph copies the node-induced subgraph of src on nodes into g:
// every node in nodes (with its port labels preserved) and every edge of
// src whose both endpoints lie in nodes.
func (g *Graph[P]) AddSubgraph(src portdiff.Graph[P], nodes []portdiff.NodeID) map[portdiff.NodeID]portdiff.NodeID {
	mapping := make(map[portdiff.NodeID]portdiff.NodeID, len(nodes))
	nodeSet := make(map[portdiff.NodeID]bool, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = true
		var ports []P
		for _, s := range src.Sites(n) {
			ports = append(ports, s.Port)
		}
		mapping[n] = g.AddNode(ports...)
	}
	for _, e := range src.Edges() {
		l := src.IncidentNode(e, portdiff.Left)
		r := src.IncidentNode(e, portdiff.Right)
		if !nodeSet[l] || !nodeSet[r] {
			continue
		}
		ls := src.PortSite(portdiff.BoundPort{Edge: e, End: portdiff.Left})
		rs := src.PortSite(portdiff.BoundPort{Edge: e, End: portdiff.Right})
		g.Link(
			portdiff.Site[P]{Node: mapping[ls.Node], Port: ls.Port},
			portdiff.Site[P]{Node: mapping[rs.Node], Port: rs.Port},
		)
	}
	return mapping
}

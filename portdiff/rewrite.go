// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

// BoundaryMapFunc places a parent port into the child being constructed
// by Rewrite: given a port on one of the rewritten parents (either a
// bound port newly exposed on a subgraph's boundary, or one of that
// parent's own existing boundary ports that sits on a removed node), it
// returns the BoundarySite that port becomes in the new diff's graph.
type BoundaryMapFunc[P comparable, G Graph[P]] func(Owned[Port, P, G]) BoundarySite[P]

// RewriteInput bundles the arguments to Rewrite.
type RewriteInput[P comparable, G Graph[P]] struct {
	// Nodes are the nodes-to-remove, each tagged with its owning parent
	// PortDiff.
	Nodes []Owned[NodeID, P, G]
	// Edges are cross-diff logical edges: each a pair of ports, either
	// Bound (removed by this rewrite from that parent) or Boundary (a
	// parent's own existing boundary hook).
	Edges [][2]Owned[Port, P, G]
	// NewGraph is the replacement graph for the new diff.
	NewGraph G
	// BoundaryMap places affected parent ports into NewGraph's boundary.
	BoundaryMap BoundaryMapFunc[P, G]
}

// Rewrite validates and assembles a new PortDiff from in, the general
// rewrite constructor of §4.4. On success the returned PortDiff is
// published into the ancestry DAG with one incoming edge per distinct
// parent diff touched by in.Nodes. On any validation failure, no node is
// added to the DAG.
func Rewrite[P comparable, G Graph[P]](in RewriteInput[P, G]) (*PortDiff[P, G], error) {
	nodesByDiff, parentOrder := groupNodesByDiff(in.Nodes)

	internalEdges := make(map[*PortDiff[P, G]][]EdgeID)
	usedBound := make(map[*PortDiff[P, G]]map[BoundPort]bool)
	usedBoundary := make(map[*PortDiff[P, G]]map[BoundaryIndex]bool)
	markBound := func(o Owned[Port, P, G]) {
		m, ok := usedBound[o.Owner]
		if !ok {
			m = make(map[BoundPort]bool)
			usedBound[o.Owner] = m
		}
		m[o.Data.Bound] = true
	}
	markBoundary := func(o Owned[Port, P, G]) {
		m, ok := usedBoundary[o.Owner]
		if !ok {
			m = make(map[BoundaryIndex]bool)
			usedBoundary[o.Owner] = m
		}
		m[o.Data.Boundary] = true
	}

	for _, pair := range in.Edges {
		a, b := pair[0], pair[1]
		switch {
		case !a.Data.IsBoundary && !b.Data.IsBoundary:
			if !a.Owner.Equal(b.Owner) || a.Data.Bound.Edge != b.Data.Bound.Edge {
				return nil, &InvalidRewriteError{Kind: BoundPortsEdge,
					Reason: "a Bound-Bound edge must name the same owner and edge"}
			}
			internalEdges[a.Owner] = append(internalEdges[a.Owner], a.Data.Bound.Edge)
		case a.Data.IsBoundary && b.Data.IsBoundary:
			if !arePortsOpposite(a, b) {
				return nil, &InvalidRewriteError{Kind: InvalidEdge,
					Reason: "Boundary-Boundary edge endpoints are not opposite ports"}
			}
			markBoundary(a)
			markBoundary(b)
		default:
			bound, boundary := a, b
			if bound.Data.IsBoundary {
				bound, boundary = b, a
			}
			if bound.Owner.Equal(boundary.Owner) {
				return nil, &InvalidRewriteError{Kind: InvalidEdge,
					Reason: "Bound-Boundary edge requires distinct owners"}
			}
			if !arePortsOpposite(a, b) {
				return nil, &InvalidRewriteError{Kind: InvalidEdge,
					Reason: "Bound-Boundary edge endpoints are not opposite ports"}
			}
			markBound(bound)
			markBoundary(boundary)
		}
	}

	for owner := range internalEdges {
		if _, ok := nodesByDiff[owner]; !ok {
			return nil, &InvalidRewriteError{Kind: InvalidEdge,
				Reason: "internal edges reference a parent with no nodes selected"}
		}
	}

	var boundary []BoundaryEntry[P]
	var edgeDatas []EdgeData
	for parentIdx, parent := range parentOrder {
		nodes := nodesByDiff[parent]
		sub := Subgraph{Nodes: nodes, Edges: internalEdges[parent]}
		portMap := NewPortMap()
		incomingIdx := IncomingEdgeIndex(parentIdx)

		for _, bp := range boundaryBoundPorts(parent.Graph(), sub) {
			if usedBound[parent] != nil && usedBound[parent][bp] {
				delete(usedBound[parent], bp)
				continue
			}
			parentPort := BoundPortOf(bp)
			site := in.BoundaryMap(Owned[Port, P, G]{Data: parentPort, Owner: parent})
			idx := BoundaryIndex(len(boundary))
			boundary = append(boundary, BoundaryEntry[P]{Site: site, Incoming: incomingIdx})
			if err := portMap.Set(parentPort, idx); err != nil {
				return nil, &InvalidRewriteError{Kind: InvalidEdge, Reason: err.Error()}
			}
		}

		removed := sub.NodeSet()
		for _, idx := range parent.BoundaryIter() {
			site, ok := parent.BoundarySite(idx).TryIntoSite()
			onRemoved := ok && removed[site.Node]
			if usedBoundary[parent] != nil && usedBoundary[parent][idx] {
				if onRemoved {
					delete(usedBoundary[parent], idx)
				}
				continue
			}
			if !onRemoved {
				continue
			}
			parentPort := BoundaryPort(idx)
			newSite := in.BoundaryMap(Owned[Port, P, G]{Data: parentPort, Owner: parent})
			newIdx := BoundaryIndex(len(boundary))
			boundary = append(boundary, BoundaryEntry[P]{Site: newSite, Incoming: incomingIdx})
			if err := portMap.Set(parentPort, newIdx); err != nil {
				return nil, &InvalidRewriteError{Kind: InvalidEdge, Reason: err.Error()}
			}
		}

		edgeDatas = append(edgeDatas, EdgeData{Subgraph: sub, PortMap: portMap})
	}

	for _, left := range usedBound {
		if len(left) > 0 {
			return nil, &InvalidRewriteError{Kind: InvalidEdge,
				Reason: "an edge references a bound port absent from any selected subgraph"}
		}
	}
	for _, left := range usedBoundary {
		if len(left) > 0 {
			return nil, &InvalidRewriteError{Kind: InvalidEdge,
				Reason: "an edge references a boundary port absent from any removed node"}
		}
	}

	if err := checkNewIncoming(parentOrder, edgeDatas); err != nil {
		return nil, err
	}

	n := newDiffNode(in.NewGraph, boundary, parentOrder, edgeDatas)
	return wrapNode[P, G](n), nil
}

// RewriteInduced is sugar over Rewrite: it selects exactly the edges of
// self's graph whose endpoints both lie in nodes as the internal edges
// of the rewritten subgraph, with no other cross-diff edges.
func (d *PortDiff[P, G]) RewriteInduced(nodes []NodeID, newGraph G, boundaryMap BoundaryMapFunc[P, G]) (*PortDiff[P, G], error) {
	sub := induced(d.Graph(), nodes)
	return d.rewriteWithSubgraph(sub, newGraph, boundaryMap)
}

// RewriteEdges is sugar over Rewrite: it derives the removed node set
// from the endpoint sites of edges, and uses edges as the internal edges
// of the rewritten subgraph.
func (d *PortDiff[P, G]) RewriteEdges(edges []EdgeID, newGraph G, boundaryMap BoundaryMapFunc[P, G]) (*PortDiff[P, G], error) {
	nodeSet := make(map[NodeID]bool)
	var nodes []NodeID
	for _, e := range edges {
		for _, end := range [2]EdgeEnd{Left, Right} {
			n := d.Graph().IncidentNode(e, end)
			if !nodeSet[n] {
				nodeSet[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	return d.rewriteWithSubgraph(Subgraph{Nodes: nodes, Edges: append([]EdgeID(nil), edges...)}, newGraph, boundaryMap)
}

func (d *PortDiff[P, G]) rewriteWithSubgraph(sub Subgraph, newGraph G, boundaryMap BoundaryMapFunc[P, G]) (*PortDiff[P, G], error) {
	if len(sub.Nodes) == 0 {
		// Rewrite only registers a parent for nodes named in in.Nodes, so a
		// selection of zero nodes would otherwise leave d out of the new
		// diff's incoming edges entirely, publishing a disconnected root
		// instead of a child of d. Attach d directly, with the (necessarily
		// empty) subgraph it still descends from.
		edgeData := EdgeData{Subgraph: sub, PortMap: NewPortMap()}
		if err := checkNewIncoming([]*PortDiff[P, G]{d}, []EdgeData{edgeData}); err != nil {
			return nil, err
		}
		n := newDiffNode(newGraph, nil, []*PortDiff[P, G]{d}, []EdgeData{edgeData})
		return wrapNode[P, G](n), nil
	}
	var edges [][2]Owned[Port, P, G]
	for _, e := range sub.Edges {
		edges = append(edges, [2]Owned[Port, P, G]{
			{Data: BoundPortOf(BoundPort{Edge: e, End: Left}), Owner: d},
			{Data: BoundPortOf(BoundPort{Edge: e, End: Right}), Owner: d},
		})
	}
	var nodes []Owned[NodeID, P, G]
	for _, n := range sub.Nodes {
		nodes = append(nodes, Owned[NodeID, P, G]{Data: n, Owner: d})
	}
	return Rewrite(RewriteInput[P, G]{Nodes: nodes, Edges: edges, NewGraph: newGraph, BoundaryMap: boundaryMap})
}

func groupNodesByDiff[P comparable, G Graph[P]](nodes []Owned[NodeID, P, G]) (map[*PortDiff[P, G]][]NodeID, []*PortDiff[P, G]) {
	byDiff := make(map[*PortDiff[P, G]][]NodeID)
	var order []*PortDiff[P, G]
	for _, n := range nodes {
		if _, ok := byDiff[n.Owner]; !ok {
			order = append(order, n.Owner)
		}
		byDiff[n.Owner] = append(byDiff[n.Owner], n.Data)
	}
	return byDiff, order
}

func arePortsOpposite[P comparable, G Graph[P]](a, b Owned[Port, P, G]) bool {
	for cand := range OppositePorts(a) {
		if cand.Owner.Equal(b.Owner) && cand.Data == b.Data {
			return true
		}
	}
	return false
}

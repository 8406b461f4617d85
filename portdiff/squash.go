// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import (
	"sort"

	"github.com/lmondada/portdiff/internal/unionfind"
)

// NewGraphFunc constructs a fresh, empty graph value to receive the
// combined replacement produced by a squash. Graph implementations are
// not required to be default-constructible, so callers supply this
// factory explicitly.
type NewGraphFunc[P comparable, G Graph[P]] func() G

// TrySquash flattens pg into a single new PortDiff with no outgoing
// edges, per §4.7: surviving subgraphs are copied into a fresh graph
// built by empty, boundaries are reclassified and resolved upward
// through the ancestry chain, and leftover wires are tied off via
// union-find. It returns *IncompatiblePortDiffError if pg is not
// squashable, and panics if it finds any other invariant violation
// along the way.
func (pg *PortDiffGraph[P, G]) TrySquash(empty NewGraphFunc[P, G]) (*PortDiff[P, G], error) {
	if !pg.IsSquashable() {
		return nil, &IncompatiblePortDiffError{Reason: "view is not squashable"}
	}
	return squash[P, G](pg, empty), nil
}

type boundKey[P comparable, G Graph[P]] struct {
	owner *PortDiff[P, G]
	bound BoundPort
}

type resolvedEntry[P comparable, G Graph[P]] struct {
	key  boundKey[P, G]
	site BoundarySite[P]
}

func squash[P comparable, G Graph[P]](pg *PortDiffGraph[P, G], empty NewGraphFunc[P, G]) *PortDiff[P, G] {
	diffs := pg.Diffs()
	gOut := empty()
	// The per-diff maps below are keyed by the wrappers in diffs; ParentPort
	// returns a fresh wrapper, so owners reached through it are mapped back
	// to these via their DAG node.
	canon := make(map[*dagNode[P, G]]*PortDiff[P, G], len(diffs))
	for _, d := range diffs {
		canon[d.node] = d
	}

	// S1. Copy surviving subgraphs.
	nodesMap := make(map[*PortDiff[P, G]]map[NodeID]NodeID, len(diffs))
	for _, d := range diffs {
		present := make(map[NodeID]bool)
		for _, n := range d.Graph().Nodes() {
			present[n] = true
		}
		removed := make(map[NodeID]bool)
		for _, oe := range pg.view.OutgoingWithin(d.node) {
			for _, n := range oe.Data.Subgraph.Nodes {
				if !present[n] {
					panic("portdiff: squash found a rewritten node absent from its parent's graph")
				}
				removed[n] = true
			}
		}
		var survivors []NodeID
		for _, n := range d.Graph().Nodes() {
			if !removed[n] {
				survivors = append(survivors, n)
			}
		}
		nodesMap[d] = gOut.AddSubgraph(d.Graph(), survivors)
	}

	// S2. Flatten incoming edges.
	edgeIndexMap := make(map[*PortDiff[P, G]]map[IncomingEdgeIndex]IncomingEdgeIndex, len(diffs))
	var newParents []*PortDiff[P, G]
	var newEdgeData []EdgeData
	for _, d := range diffs {
		em := make(map[IncomingEdgeIndex]IncomingEdgeIndex)
		for i, e := range d.AllIncoming() {
			if pg.view.Contains(e.Source()) {
				continue
			}
			newIdx := IncomingEdgeIndex(len(newParents))
			newParents = append(newParents, wrapNode[P, G](e.Source()))
			newEdgeData = append(newEdgeData, EdgeData{Subgraph: e.Data().Subgraph, PortMap: NewPortMap()})
			em[IncomingEdgeIndex(i)] = newIdx
		}
		edgeIndexMap[d] = em
	}

	// S3. Classify each boundary port of each D in V.
	wireRemap := make(map[*PortDiff[P, G]]map[int]int, len(diffs))
	nextWire := 0
	var newBoundary []BoundaryEntry[P]
	var resolved []resolvedEntry[P, G]

	for _, d := range diffs {
		for i := 0; i < d.NBoundaryPorts(); i++ {
			idx := BoundaryIndex(i)
			b := d.BoundarySite(idx)

			var bPrime BoundarySite[P]
			if !b.IsWire {
				s, _ := b.TryIntoSite()
				newNode, ok := nodesMap[d][s.Node]
				if !ok {
					continue
				}
				bPrime = NewSiteBoundary(Site[P]{Node: newNode, Port: s.Port})
			} else {
				wm, ok := wireRemap[d]
				if !ok {
					wm = make(map[int]int)
					wireRemap[d] = wm
				}
				g, ok := wm[b.WireID]
				if !ok {
					g = nextWire
					nextWire++
					wm[b.WireID] = g
				}
				bPrime = NewWireBoundary[P](g, b.End)
			}

			owner, curIdx := d, idx
			for {
				pp := owner.ParentPort(curIdx)
				if !pg.view.Contains(pp.Owner.node) {
					extIdx := owner.incomingEdgeIndex(curIdx)
					newIdx, ok := edgeIndexMap[owner][extIdx]
					if !ok {
						panic("portdiff: squash found an internal incoming edge while resolving a boundary that leaves the view")
					}
					newBoundaryIdx := BoundaryIndex(len(newBoundary))
					newBoundary = append(newBoundary, BoundaryEntry[P]{Site: bPrime, Incoming: newIdx})
					if err := newEdgeData[newIdx].PortMap.Set(pp.Data, newBoundaryIdx); err != nil {
						panic("portdiff: squash produced a non-bijective port_map: " + err.Error())
					}
					break
				}
				pp.Owner = canon[pp.Owner.node]
				if pp.Data.IsBoundary {
					owner, curIdx = pp.Owner, pp.Data.Boundary
					continue
				}
				resolved = append(resolved, resolvedEntry[P, G]{
					key:  boundKey[P, G]{owner: pp.Owner, bound: pp.Data.Bound},
					site: bPrime,
				})
				break
			}
		}
	}

	// S4. Add internal links.
	resolvedMap := make(map[boundKey[P, G]]BoundarySite[P], len(resolved))
	keys := make([]boundKey[P, G], 0, len(resolved))
	for _, r := range resolved {
		resolvedMap[r.key] = r.site
		keys = append(keys, r.key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].owner != keys[j].owner {
			return Less(keys[i].owner, keys[j].owner)
		}
		if keys[i].bound.Edge != keys[j].bound.Edge {
			return keys[i].bound.Edge < keys[j].bound.Edge
		}
		return keys[i].bound.End < keys[j].bound.End
	})

	wireOppEnds := make(map[int]*[2]*Site[P])
	uf := unionfind.New(nextWire)
	consumed := make(map[boundKey[P, G]]bool, len(keys))

	for _, key := range keys {
		if consumed[key] {
			continue
		}
		site := resolvedMap[key]
		consumed[key] = true
		oppKey := boundKey[P, G]{owner: key.owner, bound: key.bound.Opposite()}
		if oppSite, ok := resolvedMap[oppKey]; ok && !consumed[oppKey] {
			consumed[oppKey] = true
			linkEnds(gOut, key.bound.End, site, oppSite, wireOppEnds, uf)
			continue
		}
		oppSite := concreteOpposite(key.owner, key.bound.Opposite(), nodesMap)
		linkEnds(gOut, key.bound.End, site, NewSiteBoundary(oppSite), wireOppEnds, uf)
	}

	// S5. Resolve wires.
	rootEnds := make(map[int]*[2]*Site[P])
	for id, ends := range wireOppEnds {
		root := uf.Find(id)
		re, ok := rootEnds[root]
		if !ok {
			re = &[2]*Site[P]{}
			rootEnds[root] = re
		}
		for slot := 0; slot < 2; slot++ {
			if ends[slot] == nil {
				continue
			}
			if re[slot] != nil {
				panic("portdiff: squash found a wire with more than two endpoints")
			}
			re[slot] = ends[slot]
		}
	}
	for _, re := range rootEnds {
		if re[0] != nil && re[1] != nil {
			gOut.LinkSites(*re[0], *re[1])
		}
	}
	for i := range newBoundary {
		entry := &newBoundary[i]
		if !entry.Site.IsWire {
			continue
		}
		root := uf.Find(entry.Site.WireID)
		re, ok := rootEnds[root]
		if !ok {
			continue
		}
		mySlot := int(entry.Site.End)
		oppSlot := int(entry.Site.End.Opposite())
		if re[mySlot] != nil {
			if re[oppSlot] != nil {
				panic("portdiff: squash found a boundary port with both a boundary and an internal edge attached")
			}
			entry.Site = NewSiteBoundary(*re[mySlot])
		}
	}

	// S6. Assemble.
	n := newDiffNode(gOut, newBoundary, newParents, newEdgeData)
	return wrapNode[P, G](n)
}

// concreteOpposite resolves the site at the other end of the real edge
// identified by a bound port whose owner is in the view, translating it
// through that owner's surviving-node map.
func concreteOpposite[P comparable, G Graph[P]](owner *PortDiff[P, G], opp BoundPort, nodesMap map[*PortDiff[P, G]]map[NodeID]NodeID) Site[P] {
	s := owner.Graph().PortSite(opp)
	newNode, ok := nodesMap[owner][s.Node]
	if !ok {
		panic("portdiff: squash found a bound port whose opposite site was rewritten out of its own owner")
	}
	return Site[P]{Node: newNode, Port: s.Port}
}

// linkEnds resolves one internal link discovered in S4: end is the role
// (Left/Right) that a carries; b plays the opposite role.
func linkEnds[P comparable](g Graph[P], end EdgeEnd, a, b BoundarySite[P], wireOppEnds map[int]*[2]*Site[P], uf *unionfind.UnionFind) {
	aSite, aIsSite := a.TryIntoSite()
	bSite, bIsSite := b.TryIntoSite()
	switch {
	case aIsSite && bIsSite:
		left, right := aSite, bSite
		if end != Left {
			left, right = right, left
		}
		g.LinkSites(left, right)
	case aIsSite != bIsSite:
		site, wire, wireEnd := aSite, b, end.Opposite()
		if bIsSite {
			site, wire, wireEnd = bSite, a, end
		}
		ends, ok := wireOppEnds[wire.WireID]
		if !ok {
			ends = &[2]*Site[P]{}
			wireOppEnds[wire.WireID] = ends
		}
		slot := int(wireEnd.Opposite())
		if ends[slot] != nil {
			panic("portdiff: squash found a wire with more than two endpoints")
		}
		s := site
		ends[slot] = &s
	default:
		uf.Union(a.WireID, b.WireID)
	}
}

// ExtractGraph merges sinks, squashes the result (built into a fresh
// graph from empty), and unwraps the resulting graph. It returns
// *IncompatiblePortDiffError if sinks are not squashable, or if the
// squashed result retains a non-empty boundary (dangling parameters).
func ExtractGraph[P comparable, G Graph[P]](sinks []*PortDiff[P, G], empty NewGraphFunc[P, G]) (G, error) {
	var zero G
	view := FromSinks(sinks)
	if !view.IsSquashable() {
		return zero, &IncompatiblePortDiffError{Reason: "sinks are not squashable"}
	}
	result, err := view.TrySquash(empty)
	if err != nil {
		return zero, err
	}
	if result.NBoundaryPorts() > 0 {
		return zero, &IncompatiblePortDiffError{Reason: "squashed result retains a non-empty boundary"}
	}
	return result.Graph(), nil
}

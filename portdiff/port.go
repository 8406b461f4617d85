// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import "fmt"

// BoundaryIndex indexes into a PortDiff's boundary list.
type BoundaryIndex int

// Port is a port within a PortDiff: either one of its boundary ports, or
// a port bound to an edge already present in its graph.
//
// Port is a plain comparable struct (not an interface) so that it can be
// used directly as a map key in a PortMap's bijection; IsBoundary tags
// which of the two fields is meaningful.
type Port struct {
	IsBoundary bool
	Boundary   BoundaryIndex
	Bound      BoundPort
}

// BoundaryPort returns the Port for boundary index i.
func BoundaryPort(i BoundaryIndex) Port {
	return Port{IsBoundary: true, Boundary: i}
}

// BoundPortOf returns the Port wrapping the given bound port.
func BoundPortOf(bp BoundPort) Port {
	return Port{Bound: bp}
}

func (p Port) String() string {
	if p.IsBoundary {
		return fmt.Sprintf("Boundary(%d)", p.Boundary)
	}
	return fmt.Sprintf("Bound(%v)", p.Bound)
}

// BoundarySite is the site a boundary port resolves to: either a real
// site in the diff's graph, or a wire, a phantom connector used by a
// rewrite to re-link two parent boundaries through a child without
// owning either site. Wire ids are scoped to a single PortDiff; for any
// wire id there are at most two boundary positions, one per end.
type BoundarySite[P comparable] struct {
	IsWire bool
	Site   Site[P]
	WireID int
	End    EdgeEnd
}

// NewSiteBoundary wraps a concrete site as a BoundarySite.
func NewSiteBoundary[P comparable](s Site[P]) BoundarySite[P] {
	return BoundarySite[P]{Site: s}
}

// NewWireBoundary returns a phantom wire-end BoundarySite.
func NewWireBoundary[P comparable](id int, end EdgeEnd) BoundarySite[P] {
	return BoundarySite[P]{IsWire: true, WireID: id, End: end}
}

// TryIntoSite returns the concrete site, if b is not a wire.
func (b BoundarySite[P]) TryIntoSite() (Site[P], bool) {
	if b.IsWire {
		return Site[P]{}, false
	}
	return b.Site, true
}

// PortMap is a bijection between parent ports and child boundary
// indices, as carried by an EdgeData.
type PortMap struct {
	fwd map[Port]BoundaryIndex
	rev map[BoundaryIndex]Port
}

// NewPortMap returns an empty PortMap.
func NewPortMap() *PortMap {
	return &PortMap{fwd: make(map[Port]BoundaryIndex), rev: make(map[BoundaryIndex]Port)}
}

// Set records that parentPort maps to childIndex. It returns an error if
// either side of the bijection is already assigned.
func (m *PortMap) Set(parentPort Port, childIndex BoundaryIndex) error {
	if _, ok := m.fwd[parentPort]; ok {
		return fmt.Errorf("portdiff: port %v already mapped", parentPort)
	}
	if _, ok := m.rev[childIndex]; ok {
		return fmt.Errorf("portdiff: boundary index %d already mapped", childIndex)
	}
	m.fwd[parentPort] = childIndex
	m.rev[childIndex] = parentPort
	return nil
}

// Get returns the child boundary index that parentPort maps to.
func (m *PortMap) Get(parentPort Port) (BoundaryIndex, bool) {
	bi, ok := m.fwd[parentPort]
	return bi, ok
}

// Reverse returns the parent port that maps to childIndex.
func (m *PortMap) Reverse(childIndex BoundaryIndex) (Port, bool) {
	p, ok := m.rev[childIndex]
	return p, ok
}

// Len returns the number of pairs recorded in the bijection.
func (m *PortMap) Len() int {
	return len(m.fwd)
}

// Pairs returns every (parent port, child index) pair, in no particular
// order.
func (m *PortMap) Pairs() []struct {
	Parent Port
	Child  BoundaryIndex
} {
	out := make([]struct {
		Parent Port
		Child  BoundaryIndex
	}, 0, len(m.fwd))
	for p, bi := range m.fwd {
		out = append(out, struct {
			Parent Port
			Child  BoundaryIndex
		}{p, bi})
	}
	return out
}

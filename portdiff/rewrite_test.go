// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lmondada/portdiff/portdiff"
)

// TestSingleChildBoundary implements scenario 2 of §8: rewriting {n1,n2}
// to a two-node replacement exposes exactly 6 boundary ports.
func TestSingleChildBoundary(t *testing.T) {
	g, _, n1, n2, _ := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	newG := newGraph()
	newN1 := newG.AddNode("in0", "in1", "in2")
	newN2 := newG.AddNode("out0", "out1", "out2")

	boundaryMap := func(op portdiff.Owned[portdiff.Port, string, tgraph]) portdiff.BoundarySite[string] {
		site := g.PortSite(op.Data.Bound)
		newNode := newN2
		if site.Node == n1 {
			newNode = newN1
		}
		return portdiff.NewSiteBoundary(portdiff.Site[string]{Node: newNode, Port: site.Port})
	}

	child, err := root.RewriteInduced([]portdiff.NodeID{n1, n2}, newG, boundaryMap)
	if err != nil {
		t.Fatalf("RewriteInduced failed: %v", err)
	}
	if child.NBoundaryPorts() != 6 {
		t.Fatalf("child.NBoundaryPorts() = %d, want 6", child.NBoundaryPorts())
	}

	var got []portdiff.Site[string]
	for _, i := range child.BoundaryIter() {
		site, ok := child.BoundarySite(i).TryIntoSite()
		if !ok {
			t.Fatalf("boundary %d is a wire, want a concrete site", i)
		}
		got = append(got, site)
	}
	var want []portdiff.Site[string]
	for _, p := range []string{"in0", "in1", "in2"} {
		want = append(want, portdiff.Site[string]{Node: newN1, Port: p})
	}
	for _, p := range []string{"out0", "out1", "out2"} {
		want = append(want, portdiff.Site[string]{Node: newN2, Port: p})
	}
	byNodePort := func(s []portdiff.Site[string]) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Node != s[j].Node {
				return s[i].Node < s[j].Node
			}
			return s[i].Port < s[j].Port
		}
	}
	sort.Slice(got, byNodePort(got))
	sort.Slice(want, byNodePort(want))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("boundary sites mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteInducedExtraction(t *testing.T) {
	g, _, n1, n2, _ := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	newG := newGraph()
	newN1 := newG.AddNode("in0", "in1", "in2")
	newN2 := newG.AddNode("out0", "out1", "out2")

	child, err := root.RewriteInduced([]portdiff.NodeID{n1, n2}, newG, func(op portdiff.Owned[portdiff.Port, string, tgraph]) portdiff.BoundarySite[string] {
		site := g.PortSite(op.Data.Bound)
		newNode := newN2
		if site.Node == n1 {
			newNode = newN1
		}
		return portdiff.NewSiteBoundary(portdiff.Site[string]{Node: newNode, Port: site.Port})
	})
	if err != nil {
		t.Fatalf("RewriteInduced failed: %v", err)
	}

	out, err := portdiff.ExtractGraph([]*portdiff.PortDiff[string, tgraph]{child}, emptyFactory())
	if err != nil {
		t.Fatalf("ExtractGraph failed: %v", err)
	}
	if len(out.Nodes()) != 4 {
		t.Errorf("extracted graph has %d nodes, want 4", len(out.Nodes()))
	}
	if len(out.Edges()) != 7 {
		t.Errorf("extracted graph has %d edges, want 7", len(out.Edges()))
	}
}

// TestRewriteBoundaryBoundaryNotOppositeIsInvalid exercises the
// Boundary-Boundary validation case of §4.4 step 2: two boundary ports
// that are not each other's opposite must be rejected.
func TestRewriteBoundaryBoundaryNotOppositeIsInvalid(t *testing.T) {
	g, _, n1, n2, _ := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	newG := newGraph()
	newN1 := newG.AddNode("in0", "in1", "in2")
	newN2 := newG.AddNode("out0", "out1", "out2")
	child, err := root.RewriteInduced([]portdiff.NodeID{n1, n2}, newG, func(op portdiff.Owned[portdiff.Port, string, tgraph]) portdiff.BoundarySite[string] {
		site := g.PortSite(op.Data.Bound)
		newNode := newN2
		if site.Node == n1 {
			newNode = newN1
		}
		return portdiff.NewSiteBoundary(portdiff.Site[string]{Node: newNode, Port: site.Port})
	})
	if err != nil {
		t.Fatalf("RewriteInduced failed: %v", err)
	}

	_, err = portdiff.Rewrite(portdiff.RewriteInput[string, tgraph]{
		Edges: [][2]portdiff.Owned[portdiff.Port, string, tgraph]{
			{
				{Data: portdiff.BoundaryPort(0), Owner: child},
				{Data: portdiff.BoundaryPort(1), Owner: child},
			},
		},
		NewGraph: newGraph(),
		BoundaryMap: func(portdiff.Owned[portdiff.Port, string, tgraph]) portdiff.BoundarySite[string] {
			return portdiff.BoundarySite[string]{}
		},
	})
	if err == nil {
		t.Fatal("expected an error for non-opposite Boundary-Boundary ports")
	}
	rerr, ok := err.(*portdiff.InvalidRewriteError)
	if !ok {
		t.Fatalf("got error of type %T, want *InvalidRewriteError", err)
	}
	if rerr.Kind != portdiff.InvalidEdge {
		t.Fatalf("got Kind %v, want InvalidEdge", rerr.Kind)
	}
}

// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff_test

import (
	"testing"

	"github.com/lmondada/portdiff/portdiff"
)

// TestRootIdentityExtraction implements scenario 1 of §8: extracting an
// unmodified root reproduces the original graph's node and edge counts.
func TestRootIdentityExtraction(t *testing.T) {
	g, _, _, _, _ := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	out, err := portdiff.ExtractGraph([]*portdiff.PortDiff[string, tgraph]{root}, emptyFactory())
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

// collapseToSingleNode rewrites nodes (all owned by root) to a single
// node exposing one port, "x", used to receive whatever crosses the
// subgraph boundary.
func collapseToSingleNode(t *testing.T, g tgraph, root *portdiff.PortDiff[string, tgraph], nodes []portdiff.NodeID) *portdiff.PortDiff[string, tgraph] {
	t.Helper()
	newG := newGraph()
	newN := newG.AddNode("x")
	child, err := root.RewriteInduced(nodes, newG, func(op portdiff.Owned[portdiff.Port, string, tgraph]) portdiff.BoundarySite[string] {
		return portdiff.NewSiteBoundary(portdiff.Site[string]{Node: newN, Port: "x"})
	})
	if err != nil {
		t.Fatalf("RewriteInduced failed: %v", err)
	}
	return child
}

// TestTwoCompatibleChildren implements scenario 3 of §8: two rewrites of
// disjoint node sets of a common root are compatible, and extracting
// both together reconnects them through the one edge that used to cross
// between the two halves.
func TestTwoCompatibleChildren(t *testing.T) {
	g, n0, n1, n2, n3 := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	c1 := collapseToSingleNode(t, g, root, []portdiff.NodeID{n0, n1})
	c2 := collapseToSingleNode(t, g, root, []portdiff.NodeID{n2, n3})

	if !portdiff.AreCompatible[string, tgraph]([]*portdiff.PortDiff[string, tgraph]{c1, c2}) {
		t.Fatal("AreCompatible([C1, C2]) = false, want true")
	}

	out, err := portdiff.ExtractGraph([]*portdiff.PortDiff[string, tgraph]{c1, c2}, emptyFactory())
	if err != nil {
		t.Fatalf("ExtractGraph failed: %v", err)
	}
	if len(out.Nodes()) != 2 {
		t.Errorf("extracted graph has %d nodes, want 2", len(out.Nodes()))
	}
	if len(out.Edges()) != 1 {
		t.Errorf("extracted graph has %d edges, want 1", len(out.Edges()))
	}
}

// TestTwoIncompatibleChildren implements scenario 4 of §8: rewrites that
// both touch n1 are incompatible, and extraction rejects them.
func TestTwoIncompatibleChildren(t *testing.T) {
	g, n0, n1, n2, n3 := buildRootGraph()
	root := portdiff.FromGraph[string, tgraph](g)

	ca := collapseToSingleNode(t, g, root, []portdiff.NodeID{n0, n1})
	cb := collapseToSingleNode(t, g, root, []portdiff.NodeID{n1, n2, n3})

	if portdiff.AreCompatible[string, tgraph]([]*portdiff.PortDiff[string, tgraph]{ca, cb}) {
		t.Fatal("AreCompatible([Ca, Cb]) = true, want false (both touch n1)")
	}

	_, err := portdiff.ExtractGraph([]*portdiff.PortDiff[string, tgraph]{ca, cb}, emptyFactory())
	if err == nil {
		t.Fatal("expected ExtractGraph to fail for incompatible sinks")
	}
	if _, ok := err.(*portdiff.IncompatiblePortDiffError); !ok {
		t.Fatalf("got error of type %T, want *IncompatiblePortDiffError", err)
	}
}

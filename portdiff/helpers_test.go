// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff_test

import (
	"github.com/lmondada/portdiff/portdiff"
	"github.com/lmondada/portdiff/portdiff/testgraph"
)

type tgraph = *testgraph.Graph[string]

func newGraph() tgraph { return testgraph.New[string]() }

// buildRootGraph builds the 4-node, 7-edge graph used throughout §8's
// concrete scenarios: n0 fans out to n1 (3 links), n1 feeds n2 with one
// extra link, and n2 fans out to n3 (3 links).
func buildRootGraph() (g tgraph, n0, n1, n2, n3 portdiff.NodeID) {
	g = newGraph()
	n0 = g.AddNode("out0", "out1", "out2")
	n1 = g.AddNode("in0", "in1", "in2", "out0")
	n2 = g.AddNode("in0", "out0", "out1", "out2")
	n3 = g.AddNode("in0", "in1", "in2")

	g.Link(portdiff.Site[string]{Node: n0, Port: "out0"}, portdiff.Site[string]{Node: n1, Port: "in0"})
	g.Link(portdiff.Site[string]{Node: n0, Port: "out1"}, portdiff.Site[string]{Node: n1, Port: "in1"})
	g.Link(portdiff.Site[string]{Node: n0, Port: "out2"}, portdiff.Site[string]{Node: n1, Port: "in2"})
	g.Link(portdiff.Site[string]{Node: n1, Port: "out0"}, portdiff.Site[string]{Node: n2, Port: "in0"})
	g.Link(portdiff.Site[string]{Node: n2, Port: "out0"}, portdiff.Site[string]{Node: n3, Port: "in0"})
	g.Link(portdiff.Site[string]{Node: n2, Port: "out1"}, portdiff.Site[string]{Node: n3, Port: "in1"})
	g.Link(portdiff.Site[string]{Node: n2, Port: "out2"}, portdiff.Site[string]{Node: n3, Port: "in2"})
	return g, n0, n1, n2, n3
}

func emptyFactory() func() tgraph {
	return func() tgraph { return newGraph() }
}

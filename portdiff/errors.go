// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

import "fmt"

// IncompatiblePortDiffError is raised by the rewrite constructor, by
// PortDiffGraph.Merge (under FailOnConflicts), by TrySquash, and by
// ExtractGraph, whenever two rewrites of a common ancestor are found to
// remove overlapping node sets. No partial state is published when this
// error is returned.
type IncompatiblePortDiffError struct {
	Reason string
}

func (e *IncompatiblePortDiffError) Error() string {
	return fmt.Sprintf("portdiff: incompatible port diffs: %s", e.Reason)
}

// InvalidRewriteKind distinguishes the ways a proposed rewrite can be
// malformed.
type InvalidRewriteKind int

const (
	// BoundPortsEdge marks a cross-diff edge between two Bound ports
	// that are not a single existing edge shared by the same owner.
	BoundPortsEdge InvalidRewriteKind = iota
	// InvalidEdge marks an edge that references a node or boundary port
	// absent from any selected subgraph, or two endpoints that are not
	// oppositely related.
	InvalidEdge
)

func (k InvalidRewriteKind) String() string {
	switch k {
	case BoundPortsEdge:
		return "BoundPortsEdge"
	case InvalidEdge:
		return "InvalidEdge"
	default:
		return "unknown"
	}
}

// InvalidRewriteError is raised only by the rewrite constructor.
type InvalidRewriteError struct {
	Kind   InvalidRewriteKind
	Reason string
}

func (e *InvalidRewriteError) Error() string {
	return fmt.Sprintf("portdiff: invalid rewrite (%s): %s", e.Kind, e.Reason)
}

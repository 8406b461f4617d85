// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package portdiff

// Owned pairs a piece of data with the PortDiff that owns it: a Port, a
// BoundPort, or a BoundaryIndex only make sense relative to the diff
// whose graph and boundary they index into.
type Owned[D any, P comparable, G Graph[P]] struct {
	Data  D
	Owner *PortDiff[P, G]
}

// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unionfind implements a disjoint-set forest over small integer
// identifiers, used by the squash algorithm to merge chains of wires into
// equivalence classes.
package unionfind

// UnionFind is a disjoint-set forest over non-negative integer elements.
// The zero value is not usable; construct one with New.
type UnionFind struct {
	parent []int
	rank   []int
}

// New returns a UnionFind with n singleton sets {0}, {1}, ..., {n-1}.
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Find returns the representative of the set containing e.
func (uf *UnionFind) Find(e int) int {
	for uf.parent[e] != e {
		// Path halving keeps future finds cheap.
		uf.parent[e] = uf.parent[uf.parent[e]]
		e = uf.parent[e]
	}
	return e
}

// Union merges the sets containing a and b.
func (uf *UnionFind) Union(a, b int) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// Len returns the number of elements tracked by uf.
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Copyright ©2024 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dag

import "testing"

func TestNewNodeRecordsIncoming(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	if len(root.Incoming()) != 0 {
		t.Fatalf("root has %d incoming edges, want 0", len(root.Incoming()))
	}
	child := NewNode[string, int]("child", []*Node[string, int]{root}, []int{42})
	in := child.Incoming()
	if len(in) != 1 {
		t.Fatalf("child has %d incoming edges, want 1", len(in))
	}
	if in[0].Source() != root || in[0].Data() != 42 {
		t.Fatalf("unexpected incoming edge %+v", in[0])
	}
}

func TestChildrenAndOutgoingEdges(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	c1 := NewNode[string, int]("c1", []*Node[string, int]{root}, []int{1})
	c2 := NewNode[string, int]("c2", []*Node[string, int]{root}, []int{2})

	children := root.Children()
	if len(children) != 2 || children[0] != c1 || children[1] != c2 {
		t.Fatalf("Children() = %v, want [c1 c2]", children)
	}

	out := root.OutgoingEdges()
	if len(out) != 2 {
		t.Fatalf("OutgoingEdges() has %d entries, want 2", len(out))
	}
	if out[0].Target != c1 || out[0].Data != 1 {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].Target != c2 || out[1].Data != 2 {
		t.Errorf("out[1] = %+v", out[1])
	}
}

func TestParentsDeduplicates(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	child := NewNode[string, int]("child", []*Node[string, int]{root, root}, []int{1, 2})
	parents := child.Parents()
	if len(parents) != 1 || parents[0] != root {
		t.Fatalf("Parents() = %v, want [root]", parents)
	}
}

func TestNewNodePanicsOnMismatchedLengths(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched parents/data lengths")
		}
	}()
	root := NewNode[string, int]("root", nil, nil)
	NewNode[string, int]("bad", []*Node[string, int]{root}, nil)
}

func TestLessIsATotalOrder(t *testing.T) {
	a := NewNode[string, int]("a", nil, nil)
	b := NewNode[string, int]("b", nil, nil)
	if Less(a, b) == Less(b, a) {
		t.Fatalf("Less is not antisymmetric for distinct nodes")
	}
	if Less(a, a) {
		t.Fatalf("Less(a, a) should be false")
	}
}

func TestViewFromSinksIncludesAncestors(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	mid := NewNode[string, int]("mid", []*Node[string, int]{root}, []int{1})
	leaf := NewNode[string, int]("leaf", []*Node[string, int]{mid}, []int{2})

	v := FromSinks([]*Node[string, int]{leaf})
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	for _, n := range []*Node[string, int]{root, mid, leaf} {
		if !v.Contains(n) {
			t.Errorf("view does not contain %v", n.Value())
		}
	}
	order := v.Nodes()
	pos := make(map[*Node[string, int]]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	if pos[root] > pos[mid] || pos[mid] > pos[leaf] {
		t.Fatalf("Nodes() order %v is not ancestors-before-descendants", order)
	}
}

func TestViewFromSinksWhileStopsAtPredicate(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	mid := NewNode[string, int]("mid", []*Node[string, int]{root}, []int{1})
	leaf := NewNode[string, int]("leaf", []*Node[string, int]{mid}, []int{2})

	v := FromSinksWhile([]*Node[string, int]{leaf}, func(n *Node[string, int]) bool {
		return n != mid
	})
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (leaf, mid; root excluded)", v.Len())
	}
	if v.Contains(root) {
		t.Fatalf("view should not have traversed past mid")
	}
}

func TestMergeUnionsAndDetectsGrowth(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	a := NewNode[string, int]("a", []*Node[string, int]{root}, []int{1})
	b := NewNode[string, int]("b", []*Node[string, int]{root}, []int{2})

	va := FromSinks([]*Node[string, int]{a})
	vb := FromSinks([]*Node[string, int]{b})

	var checked []*Node[string, int]
	merged, err := va.Merge(vb, FailOnConflicts, func(n *Node[string, int]) error {
		checked = append(checked, n)
		return nil
	})
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if merged.Len() != 3 {
		t.Fatalf("merged.Len() = %d, want 3", merged.Len())
	}
	if len(checked) != 1 || checked[0] != root {
		t.Fatalf("expected root to be the only node whose outgoing set grew, got %v", checked)
	}
}

func TestMergeFailOnConflictsAborts(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	a := NewNode[string, int]("a", []*Node[string, int]{root}, []int{1})
	b := NewNode[string, int]("b", []*Node[string, int]{root}, []int{2})

	va := FromSinks([]*Node[string, int]{a})
	vb := FromSinks([]*Node[string, int]{b})

	wantErr := &struct{ msg string }{"conflict"}
	_, err := va.Merge(vb, FailOnConflicts, func(n *Node[string, int]) error {
		return errorString(wantErr.msg)
	})
	if err == nil {
		t.Fatal("expected Merge to fail")
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }

func TestLowestCommonAncestors(t *testing.T) {
	root := NewNode[string, int]("root", nil, nil)
	a := NewNode[string, int]("a", []*Node[string, int]{root}, []int{1})
	b := NewNode[string, int]("b", []*Node[string, int]{root}, []int{2})

	va := FromSinks([]*Node[string, int]{a})
	vb := FromSinks([]*Node[string, int]{b})

	lca := LowestCommonAncestors([]*View[string, int]{va, vb})
	if len(lca) != 1 || lca[0] != root {
		t.Fatalf("LowestCommonAncestors = %v, want [root]", lca)
	}
}

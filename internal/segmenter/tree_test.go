package segmenter

import (
	"image"
	"testing"
)

// buildTestTree assembles a small fixed tree by hand:
//
//	root
//	├── a (leaf)
//	└── b
//	    ├── c (leaf)
//	    └── d (leaf)
func buildTestTree() *Tree {
	t := &Tree{}
	root := t.add(0, image.Rect(0, 0, 200, 200), -1)
	t.add(1, image.Rect(0, 0, 200, 94), root) // a
	b := t.add(1, image.Rect(0, 106, 200, 200), root)
	t.add(2, image.Rect(0, 106, 94, 200), b)   // c
	t.add(2, image.Rect(106, 106, 200, 200), b) // d
	return t
}

func TestTreeLinkage(t *testing.T) {
	tree := buildTestTree()

	if tree.Root().Parent != -1 {
		t.Error("root must have no parent")
	}
	for _, r := range tree.All() {
		for _, c := range r.Children {
			if got := tree.Get(c).Parent; got != r.ID {
				t.Errorf("child %d points to parent %d, want %d", c, got, r.ID)
			}
		}
	}
}

func TestTreeLeavesDiscoveryOrder(t *testing.T) {
	tree := buildTestTree()
	leaves := tree.Leaves()

	want := []string{"r1_0_0", "r2_0_106", "r2_106_106"}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %d", len(want), len(leaves))
	}
	for i, l := range leaves {
		if l.Name() != want[i] {
			t.Errorf("leaf %d = %s, want %s", i, l.Name(), want[i])
		}
	}
}

func TestTreeBottomUpOrder(t *testing.T) {
	tree := buildTestTree()

	seen := map[int]bool{}
	for _, r := range tree.BottomUp() {
		for _, c := range r.Children {
			if !seen[c] {
				t.Errorf("region %s visited before its child %d", r.Name(), c)
			}
		}
		seen[r.ID] = true
	}
}

func TestTreePostOrder(t *testing.T) {
	tree := buildTestTree()

	order := tree.PostOrder()
	if order[len(order)-1].ID != 0 {
		t.Error("post-order must end at the root")
	}
	seen := map[int]bool{}
	for _, r := range order {
		for _, c := range r.Children {
			if !seen[c] {
				t.Errorf("region %s visited before its child %d", r.Name(), c)
			}
		}
		seen[r.ID] = true
	}
}

func TestRegionNameUniqueness(t *testing.T) {
	tree := buildTestTree()

	names := map[string]bool{}
	for _, r := range tree.All() {
		if names[r.Name()] {
			t.Errorf("duplicate region name %s", r.Name())
		}
		names[r.Name()] = true
	}
}

package segmenter

import (
	"fmt"
	"image"
	"sort"
)

// Region is one rectangular node of the segmentation tree.
// Regions are immutable once their children are attached; they carry
// geometry and linkage only; pixels are re-derived from the source
// image and Rect when needed.
type Region struct {
	ID       int
	Depth    int
	Rect     image.Rectangle
	Parent   int // -1 for the root
	Children []int
}

// Name derives a stable human-readable id from depth and the top-left
// corner. Siblings never share a corner, so names are unique per tree.
func (r Region) Name() string {
	return fmt.Sprintf("r%d_%d_%d", r.Depth, r.Rect.Min.X, r.Rect.Min.Y)
}

func (r Region) IsLeaf() bool {
	return len(r.Children) == 0
}

// Tree is the region arena. Nodes reference each other by index, with
// children owned through id lists and the parent link kept only for
// traversal. The structure is acyclic by construction.
type Tree struct {
	regions []Region

	// Dropped records slices discarded by the minimum-size skip rule.
	// These margins are not covered by any leaf and are not merged into
	// a neighbor; callers report them instead of hiding them.
	Dropped []image.Rectangle
}

func (t *Tree) add(depth int, rect image.Rectangle, parent int) int {
	id := len(t.regions)
	t.regions = append(t.regions, Region{
		ID:     id,
		Depth:  depth,
		Rect:   rect,
		Parent: parent,
	})
	if parent >= 0 {
		t.regions[parent].Children = append(t.regions[parent].Children, id)
	}
	return id
}

func (t *Tree) Len() int { return len(t.regions) }

func (t *Tree) Root() Region { return t.regions[0] }

func (t *Tree) Get(id int) Region { return t.regions[id] }

// All returns every region in depth-first order, root first.
func (t *Tree) All() []Region {
	out := make([]Region, 0, len(t.regions))
	t.walk(0, func(r Region) { out = append(out, r) })
	return out
}

// Leaves returns the leaf regions in depth-first discovery order.
func (t *Tree) Leaves() []Region {
	var out []Region
	t.walk(0, func(r Region) {
		if r.IsLeaf() {
			out = append(out, r)
		}
	})
	return out
}

// BottomUp returns all regions sorted by depth descending, stable within
// a depth. Visiting in this order guarantees every child precedes its
// parent.
func (t *Tree) BottomUp() []Region {
	out := t.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth > out[j].Depth
	})
	return out
}

// PostOrder returns regions children-first, which makes the
// dependency-respecting order structural rather than sort-derived.
func (t *Tree) PostOrder() []Region {
	out := make([]Region, 0, len(t.regions))
	var visit func(id int)
	visit = func(id int) {
		for _, c := range t.regions[id].Children {
			visit(c)
		}
		out = append(out, t.regions[id])
	}
	visit(0)
	return out
}

// MaxDepth reports the deepest level present in the tree.
func (t *Tree) MaxDepth() int {
	max := 0
	for _, r := range t.regions {
		if r.Depth > max {
			max = r.Depth
		}
	}
	return max
}

func (t *Tree) walk(id int, fn func(Region)) {
	fn(t.regions[id])
	for _, c := range t.regions[id].Children {
		t.walk(c, fn)
	}
}

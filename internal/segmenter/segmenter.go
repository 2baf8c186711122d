// Package segmenter recursively partitions a raster image into a tree of
// rectangular regions along detected whitespace boundaries. Leaves are
// regions with no further detectable separation, subject to depth and
// minimum-size limits. The algorithm is synchronous, deterministic and
// allocation-local, so independent images may be segmented concurrently.
package segmenter

import (
	"fmt"
	"image"
)

// Options are the tunable constants of separation detection and
// subdivision. Zero values are replaced with the defaults below.
type Options struct {
	// WindowSize is the number of consecutive rows a blank window spans.
	WindowSize int
	// VarianceThreshold classifies a window as blank when the pixel
	// variance across it stays below this value.
	VarianceThreshold float64
	// BrightnessDiffThreshold is the minimum mean absolute difference
	// between a window edge and its neighboring row to count as a border.
	BrightnessDiffThreshold float64
	// PortionThreshold is the fraction of the line that must individually
	// exceed BrightnessDiffThreshold.
	PortionThreshold float64
	// MaxDepth caps the recursion; regions at this depth become leaves.
	MaxDepth int
	// MinSegmentSize is the minimum region edge length in pixels. Split
	// slices shorter than this along the split axis are dropped.
	MinSegmentSize int
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		WindowSize:              3,
		VarianceThreshold:       50,
		BrightnessDiffThreshold: 30,
		PortionThreshold:        0.3,
		MaxDepth:                4,
		MinSegmentSize:          50,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WindowSize <= 0 {
		o.WindowSize = d.WindowSize
	}
	if o.VarianceThreshold <= 0 {
		o.VarianceThreshold = d.VarianceThreshold
	}
	if o.BrightnessDiffThreshold <= 0 {
		o.BrightnessDiffThreshold = d.BrightnessDiffThreshold
	}
	if o.PortionThreshold <= 0 {
		o.PortionThreshold = d.PortionThreshold
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.MinSegmentSize <= 0 {
		o.MinSegmentSize = d.MinSegmentSize
	}
	return o
}

// Segmenter builds region trees from images. It holds no state across
// calls.
type Segmenter struct {
	opts Options
}

// New creates a Segmenter; zero option fields fall back to defaults.
func New(opts Options) *Segmenter {
	return &Segmenter{opts: opts.withDefaults()}
}

// Segment partitions img into a region tree. The root region spans the
// whole image at depth 0. Images with zero width or height are rejected.
func (s *Segmenter) Segment(img image.Image) (*Tree, error) {
	if img == nil {
		return nil, fmt.Errorf("segmenter: nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("segmenter: image has empty bounds %v", bounds)
	}

	// One grayscale conversion up front; every region re-derives its
	// pixel slice from this grid and its bounding box.
	gray := newMatrix(img, bounds)

	t := &Tree{}
	root := t.add(0, image.Rect(0, 0, bounds.Dx(), bounds.Dy()), -1)
	s.subdivide(t, gray, root)
	return t, nil
}

// subdivide splits region id in place, attaching accepted children and
// recursing into them. Rows are always tried before columns: web layouts
// are primarily vertically stacked, so side-by-side structure is only
// considered when no horizontal separator exists.
func (s *Segmenter) subdivide(t *Tree, gray matrix, id int) {
	r := t.regions[id]
	if r.Depth >= s.opts.MaxDepth {
		return
	}
	if r.Rect.Dx() < s.opts.MinSegmentSize || r.Rect.Dy() < s.opts.MinSegmentSize {
		return
	}

	sub := gray.crop(r.Rect)

	if lines := detectLines(sub, s.opts); len(lines) > 0 {
		s.split(t, gray, id, lines, true)
		return
	}
	if lines := detectLines(sub.transpose(), s.opts); len(lines) > 0 {
		s.split(t, gray, id, lines, false)
		return
	}
	// No separation in either direction: the region stays a leaf.
}

// split slices region id at the given offsets (relative to the region)
// plus the implicit far edge. horizontal selects stacking direction:
// true cuts along y, false along x. Slices shorter than MinSegmentSize
// in the split axis are dropped and recorded, never merged.
func (s *Segmenter) split(t *Tree, gray matrix, id int, lines []int, horizontal bool) {
	r := t.regions[id]

	extent := r.Rect.Dx()
	if horizontal {
		extent = r.Rect.Dy()
	}

	bounds := append(append([]int{}, lines...), extent)
	prev := 0
	for _, b := range bounds {
		if b <= prev {
			continue
		}
		var rect image.Rectangle
		if horizontal {
			rect = image.Rect(r.Rect.Min.X, r.Rect.Min.Y+prev, r.Rect.Max.X, r.Rect.Min.Y+b)
		} else {
			rect = image.Rect(r.Rect.Min.X+prev, r.Rect.Min.Y, r.Rect.Min.X+b, r.Rect.Max.Y)
		}
		prev = b

		size := rect.Dy()
		if !horizontal {
			size = rect.Dx()
		}
		if size < s.opts.MinSegmentSize {
			t.Dropped = append(t.Dropped, rect)
			continue
		}

		child := t.add(r.Depth+1, rect, id)
		s.subdivide(t, gray, child)
	}
}

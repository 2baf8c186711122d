package segmenter

import "sort"

// detectLines scans the grid for horizontal separation lines: windows of
// near-uniform rows bordered by a brightness discontinuity above or below.
// Returned offsets are sorted, unique and relative to the grid itself.
// The function is pure; calling it twice yields identical results.
//
// The heuristic favors recall over precision: thin low-contrast dividers
// (nav bars, section separators) are easy to miss with plain edge
// detection, so a blank window with a sharp border on either side is
// enough to record a cut.
func detectLines(m matrix, o Options) []int {
	seen := make(map[int]bool)
	var lines []int

	// Window spans rows [i-WindowSize, i); upper is the row above it,
	// lower the row below. The first and last rows never act as cuts.
	for i := o.WindowSize + 1; i < m.rows-1; i++ {
		window := m.pix[(i-o.WindowSize)*m.cols : i*m.cols]
		if variance(window) >= o.VarianceThreshold {
			continue
		}

		top := borderBetween(m.row(i-o.WindowSize-1), m.row(i-o.WindowSize), o)
		bottom := borderBetween(m.row(i), m.row(i-1), o)
		if !top && !bottom {
			continue
		}

		// A bottom border means the content change sits below the blank
		// window, so the cut goes there; otherwise it goes at the top.
		pos := i - o.WindowSize
		if bottom {
			pos = i
		}
		if !seen[pos] {
			seen[pos] = true
			lines = append(lines, pos)
		}
	}

	sort.Ints(lines)
	return lines
}

// borderBetween reports whether rows a and b differ sharply: the mean
// absolute difference must exceed the brightness threshold AND the
// fraction of positions individually exceeding it must beat the portion
// threshold. The second condition rejects rows where a single bright
// element inflates the mean.
func borderBetween(a, b []uint8, o Options) bool {
	if len(a) == 0 {
		return false
	}
	sum := 0.0
	over := 0
	for i := range a {
		d := absDiff(a[i], b[i])
		sum += d
		if d > o.BrightnessDiffThreshold {
			over++
		}
	}
	mean := sum / float64(len(a))
	portion := float64(over) / float64(len(a))
	return mean > o.BrightnessDiffThreshold && portion > o.PortionThreshold
}

// variance is the population variance over all pixels of the window.
func variance(pix []uint8) float64 {
	if len(pix) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range pix {
		sum += float64(p)
	}
	mean := sum / float64(len(pix))

	sq := 0.0
	for _, p := range pix {
		d := float64(p) - mean
		sq += d * d
	}
	return sq / float64(len(pix))
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

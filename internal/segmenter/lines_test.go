package segmenter

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// fill paints the rectangle of img with a single gray level.
func fill(img *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func uniformImage(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), v)
	return img
}

func TestDetectLinesUniform(t *testing.T) {
	img := uniformImage(800, 600, 255)
	m := newMatrix(img, img.Bounds())
	o := DefaultOptions()

	// Blank everywhere, but no brightness border anywhere.
	if lines := detectLines(m, o); len(lines) != 0 {
		t.Errorf("uniform rows: expected no lines, got %v", lines)
	}
	if lines := detectLines(m.transpose(), o); len(lines) != 0 {
		t.Errorf("uniform columns: expected no lines, got %v", lines)
	}
}

func TestDetectLinesHorizontalBand(t *testing.T) {
	img := uniformImage(800, 600, 255)
	fill(img, image.Rect(0, 300, 800, 312), 0)

	m := newMatrix(img, img.Bounds())
	lines := detectLines(m, DefaultOptions())

	if len(lines) == 0 {
		t.Fatal("expected separation lines around the band, got none")
	}
	for _, l := range lines {
		if l < 298 || l > 314 {
			t.Errorf("line %d falls outside the band neighborhood", l)
		}
	}
	t.Logf("detected lines: %v", lines)
}

func TestDetectLinesVerticalViaTranspose(t *testing.T) {
	img := uniformImage(600, 400, 255)
	fill(img, image.Rect(200, 0, 212, 400), 0)

	m := newMatrix(img, img.Bounds())
	if lines := detectLines(m, DefaultOptions()); len(lines) != 0 {
		t.Errorf("row scan should not fire on a vertical band, got %v", lines)
	}

	lines := detectLines(m.transpose(), DefaultOptions())
	if len(lines) == 0 {
		t.Fatal("expected column separation lines, got none")
	}
	for _, l := range lines {
		if l < 198 || l > 214 {
			t.Errorf("line %d falls outside the band neighborhood", l)
		}
	}
}

func TestDetectLinesIdempotent(t *testing.T) {
	img := uniformImage(400, 300, 240)
	fill(img, image.Rect(0, 140, 400, 152), 10)
	m := newMatrix(img, img.Bounds())
	o := DefaultOptions()

	first := detectLines(m, o)
	second := detectLines(m, o)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("detector is not idempotent: %v vs %v", first, second)
	}
}

func TestBorderBetweenPortionRule(t *testing.T) {
	// A single extreme pixel can push the mean over the threshold while
	// the portion of changed pixels stays tiny; that must not count.
	a := make([]uint8, 8)
	b := make([]uint8, 8)
	a[0] = 255 // one pixel differs by 255: mean 31.9 > 30, portion 0.125

	o := DefaultOptions()
	if borderBetween(a, b, o) {
		t.Error("border detected despite portion below threshold")
	}

	// Flip half the line: mean 127.5, portion 0.5, a real border.
	for i := 0; i < 4; i++ {
		a[i] = 255
	}
	if !borderBetween(a, b, o) {
		t.Error("border not detected for a genuine discontinuity")
	}
}

func TestVariance(t *testing.T) {
	if v := variance([]uint8{5, 5, 5, 5}); v != 0 {
		t.Errorf("uniform variance = %f, want 0", v)
	}
	if v := variance([]uint8{0, 255}); v != 127.5*127.5 {
		t.Errorf("two-point variance = %f, want %f", v, 127.5*127.5)
	}
}

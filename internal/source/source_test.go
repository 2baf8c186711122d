package source

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestScreenshotSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writeTestPNG(t, path, 320, 240)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.Pages() != 1 {
		t.Fatalf("expected 1 page, got %d", src.Pages())
	}
	w, h, err := src.Dimensions(0)
	if err != nil || w != 320 || h != 240 {
		t.Errorf("Dimensions = %v,%v,%v, want 320,240", w, h, err)
	}
	img, err := src.Render(0, 144)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("rendered bounds = %v", img.Bounds())
	}
}

func TestScreenshotSourceDirectoryOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), 10, 10)
	writeTestPNG(t, filepath.Join(dir, "a.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewScreenshotSource(dir)
	if err != nil {
		t.Fatalf("NewScreenshotSource failed: %v", err)
	}
	if src.Pages() != 2 {
		t.Fatalf("expected 2 pages, got %d", src.Pages())
	}
	if filepath.Base(src.Path(0)) != "a.png" || filepath.Base(src.Path(1)) != "b.png" {
		t.Errorf("pages not in name order: %s, %s", src.Path(0), src.Path(1))
	}
}

func TestScreenshotSourceEmptyDir(t *testing.T) {
	if _, err := NewScreenshotSource(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without screenshots")
	}
}

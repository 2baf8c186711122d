package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScreenshotSource serves already captured screenshot files. A directory
// becomes a multi-page source with files in name order.
type ScreenshotSource struct {
	paths []string
}

func NewScreenshotSource(path string) (*ScreenshotSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".png", ".jpg", ".jpeg":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no screenshots found in %s", path)
	}
	return &ScreenshotSource{paths: paths}, nil
}

// Path returns the file backing the given page.
func (s *ScreenshotSource) Path(index int) string {
	return s.paths[index]
}

func (s *ScreenshotSource) Pages() int {
	return len(s.paths)
}

func (s *ScreenshotSource) Dimensions(index int) (float64, float64, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// Render decodes the screenshot; dpi is ignored, raster files carry
// their own resolution.
func (s *ScreenshotSource) Render(index int, dpi int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ScreenshotSource) Close() error {
	return nil
}

// Open picks the implementation by extension.
func Open(path string) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewScreenshotSource(path)
}

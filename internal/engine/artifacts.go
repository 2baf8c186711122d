package engine

import (
	"encoding/json"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akulov/shot2site/internal/describer"
	"github.com/akulov/shot2site/internal/segmenter"
)

// segmentMap is the on-disk form of a region tree. It can be diffed
// between runs and inspected without re-running segmentation.
type segmentMap struct {
	Input   string       `yaml:"input"`
	Page    int          `yaml:"page"`
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Regions []regionInfo `yaml:"regions"`
	Dropped []rectInfo   `yaml:"dropped,omitempty"`
}

type regionInfo struct {
	Name   string   `yaml:"name"`
	Depth  int      `yaml:"depth"`
	Rect   rectInfo `yaml:"rect"`
	Parent string   `yaml:"parent,omitempty"`
	Leaf   bool     `yaml:"leaf"`
}

type rectInfo struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func toRectInfo(r image.Rectangle) rectInfo {
	return rectInfo{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func writeSegments(path, input string, page int, tree *segmenter.Tree) error {
	root := tree.Root()
	m := segmentMap{
		Input:  input,
		Page:   page,
		Width:  root.Rect.Dx(),
		Height: root.Rect.Dy(),
	}
	for _, r := range tree.All() {
		info := regionInfo{
			Name:  r.Name(),
			Depth: r.Depth,
			Rect:  toRectInfo(r.Rect),
			Leaf:  r.IsLeaf(),
		}
		if r.Parent >= 0 {
			info.Parent = tree.Get(r.Parent).Name()
		}
		m.Regions = append(m.Regions, info)
	}
	for _, d := range tree.Dropped {
		m.Dropped = append(m.Dropped, toRectInfo(d))
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type analysis struct {
	Page     describer.Section            `json:"page"`
	Sections map[string]describer.Section `json:"sections"`
}

func writeAnalysis(path string, tree *segmenter.Tree, sections map[int]describer.Section) error {
	a := analysis{
		Page:     sections[0],
		Sections: make(map[string]describer.Section, tree.Len()),
	}
	for _, r := range tree.All() {
		a.Sections[r.Name()] = sections[r.ID]
	}

	data, err := json.MarshalIndent(&a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

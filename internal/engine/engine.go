// Package engine runs one full clone: render the input page, segment it
// into a region tree, describe the regions, and emit the cloned site
// with its analysis artifacts.
package engine

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/akulov/shot2site/internal/config"
	"github.com/akulov/shot2site/internal/describer"
	"github.com/akulov/shot2site/internal/generator"
	"github.com/akulov/shot2site/internal/segmenter"
	"github.com/akulov/shot2site/internal/source"
)

type CloneProject struct {
	Config    *config.Config
	Source    source.Source
	Describer *describer.Engine // nil runs the template-only pipeline
}

func NewCloneProject(cfg *config.Config, src source.Source, eng *describer.Engine) *CloneProject {
	return &CloneProject{
		Config:    cfg,
		Source:    src,
		Describer: eng,
	}
}

// SiteDir is where Run emits the cloned project, under the output
// directory.
func (p *CloneProject) SiteDir() string {
	return filepath.Join(p.Config.OutputDir, "site")
}

func (p *CloneProject) Run(ctx context.Context) error {
	startTime := time.Now()

	pageCount := p.Source.Pages()
	if pageCount == 0 {
		return fmt.Errorf("the source contains no pages")
	}
	page := p.Config.Page
	if page < 0 || page >= pageCount {
		return fmt.Errorf("page %d is out of range (source has %d)", page, pageCount)
	}

	img, err := p.Source.Render(page, p.Config.DPI)
	if err != nil {
		return fmt.Errorf("failed to render page %d: %v", page, err)
	}
	bounds := img.Bounds()
	fmt.Printf("[*] Rendered page %d of %d (%dx%d)\n", page+1, pageCount, bounds.Dx(), bounds.Dy())

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return err
	}

	seg := segmenter.New(p.segmenterOptions())
	tree, err := seg.Segment(img)
	if err != nil {
		return fmt.Errorf("segmentation failed: %v", err)
	}
	fmt.Printf("[*] Segmented into %d regions (%d leaves, %d below minimum size)\n",
		tree.Len(), len(tree.Leaves()), len(tree.Dropped))

	segmentsPath := filepath.Join(p.Config.OutputDir, "segments.yaml")
	if err := writeSegments(segmentsPath, p.Config.InputPath, page, tree); err != nil {
		return fmt.Errorf("failed to write %s: %v", segmentsPath, err)
	}
	fmt.Printf("[>] Segment map: %s\n", segmentsPath)

	if p.Config.SaveCrops {
		if err := p.saveCrops(img, tree); err != nil {
			return err
		}
	}

	if p.Config.SegmentOnly {
		fmt.Printf("[+++] Segmentation finished in %s\n", time.Since(startTime).Round(time.Millisecond))
		return nil
	}

	sections, err := p.resolveSections(ctx, img, tree)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		// Failed regions carry placeholders; the clone is still worth
		// emitting.
		log.Printf("[!] Some regions could not be described: %v", err)
	}

	analysisPath := filepath.Join(p.Config.OutputDir, "analysis.json")
	if err := writeAnalysis(analysisPath, tree, sections); err != nil {
		return fmt.Errorf("failed to write %s: %v", analysisPath, err)
	}
	fmt.Printf("[>] Page analysis: %s\n", analysisPath)

	if err := p.emitSite(ctx, tree, sections); err != nil {
		return err
	}

	fmt.Printf("[+++] Clone finished in %s: %s\n", time.Since(startTime).Round(time.Millisecond), p.SiteDir())
	return nil
}

func (p *CloneProject) segmenterOptions() segmenter.Options {
	sc := p.Config.Segmenter
	return segmenter.Options{
		WindowSize:              sc.WindowSize,
		VarianceThreshold:       sc.VarianceThreshold,
		BrightnessDiffThreshold: sc.BrightnessDiffThreshold,
		PortionThreshold:        sc.PortionThreshold,
		MaxDepth:                sc.MaxDepth,
		MinSegmentSize:          sc.MinSegmentSize,
	}
}

// resolveSections walks the tree bottom-up: leaves go to the vision
// model (or a local stub without one), parents merge their children.
// Failures degrade to placeholders instead of aborting the run.
func (p *CloneProject) resolveSections(ctx context.Context, img image.Image, tree *segmenter.Tree) (map[int]describer.Section, error) {
	describe := func(ctx context.Context, r segmenter.Region) (describer.Section, error) {
		if p.Describer == nil {
			return localSection(r), nil
		}
		return p.Describer.DescribeRegion(ctx, img, r)
	}
	combine := func(ctx context.Context, r segmenter.Region, children []describer.Section) (describer.Section, error) {
		return p.Describer.CombineSections(ctx, r, layoutOf(tree, r), children)
	}
	return segmenter.Resolve(ctx, tree, describe, combine, segmenter.ResolveOptions[describer.Section]{
		Workers: p.Config.Workers,
		Fallback: func(r segmenter.Region, err error) describer.Section {
			return describer.Placeholder(r.Name())
		},
	})
}

func (p *CloneProject) emitSite(ctx context.Context, tree *segmenter.Tree, sections map[int]describer.Section) error {
	ids := tree.Root().Children
	if len(ids) == 0 {
		ids = []int{0}
	}
	components := make([]generator.ComponentSpec, 0, len(ids))
	for _, id := range ids {
		sec := sections[id]
		components = append(components, generator.ComponentSpec{
			File:    generator.ComponentFile(sec.Component),
			Section: sec,
		})
	}

	proj := &generator.Project{Dir: p.SiteDir(), Workers: p.Config.Workers}
	if p.Describer != nil {
		proj.Engine = p.Describer
	}
	return proj.Emit(ctx, sections[0], components)
}

func (p *CloneProject) saveCrops(img image.Image, tree *segmenter.Tree) error {
	dir := filepath.Join(p.Config.OutputDir, "crops")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, r := range tree.Leaves() {
		path := filepath.Join(dir, r.Name()+".png")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = png.Encode(f, cropImage(img, r.Rect))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to save crop %s: %v", path, err)
		}
	}
	fmt.Printf("[>] Saved %d leaf crops to %s\n", len(tree.Leaves()), dir)
	return nil
}

// layoutOf reads the split direction off the tree: a row split stacks
// its children vertically, a column split puts them side by side.
func layoutOf(t *segmenter.Tree, r segmenter.Region) string {
	if len(r.Children) < 2 {
		return "stack"
	}
	a := t.Get(r.Children[0]).Rect
	b := t.Get(r.Children[1]).Rect
	if a.Min.Y == b.Min.Y {
		return "columns"
	}
	return "stack"
}

// localSection stands in for a model description when no engine is
// configured, keeping the segment-to-scaffold path runnable offline.
func localSection(r segmenter.Region) describer.Section {
	return describer.Section{
		Kind:    "section",
		Summary: fmt.Sprintf("Section %s (%dx%d)", r.Name(), r.Rect.Dx(), r.Rect.Dy()),
		Layout:  "stack",
	}
}

func cropImage(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Add(img.Bounds().Min)
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(rect)
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// Package generator emits the cloned Next.js project: static scaffold
// files derived from the assembled page description, plus one component
// per top-level section. Component code comes from the model when an
// engine is configured and from deterministic templates otherwise.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/akulov/shot2site/internal/describer"
)

// CodeEngine produces the source text of one project file. The Gemini
// describer engine satisfies it; tests plug in stubs.
type CodeEngine interface {
	GenerateComponent(ctx context.Context, file string, sec describer.Section) (string, error)
}

// ComponentSpec pairs a target file with the section it renders.
type ComponentSpec struct {
	File    string
	Section describer.Section
}

// Project writes the cloned site under Dir.
type Project struct {
	Dir     string
	Engine  CodeEngine // nil means templates only
	Workers int
}

// Emit writes the full project: scaffold plus components. Per-component
// generation failures fall back to the template scaffold and are
// reported joined; one bad component never blocks the rest.
func (p *Project) Emit(ctx context.Context, page describer.Section, components []ComponentSpec) error {
	components = normalize(components)

	if err := p.writeScaffold(page, components); err != nil {
		return err
	}

	var mu sync.Mutex
	var failures []error

	g, gctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for _, c := range components {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			code, err := p.componentSource(gctx, c)
			if err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", c.File, err))
				mu.Unlock()
				log.Printf("[!] Component generation failed for %s: %v", c.File, err)
				code = componentScaffold(c)
			}
			return p.writeFile(c.File, code)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(failures...)
}

func (p *Project) componentSource(ctx context.Context, c ComponentSpec) (string, error) {
	if p.Engine == nil {
		return componentScaffold(c), nil
	}
	return p.Engine.GenerateComponent(ctx, c.File, c.Section)
}

func (p *Project) writeScaffold(page describer.Section, components []ComponentSpec) error {
	files := map[string]string{
		"package.json":    packageJSON,
		"next.config.mjs": nextConfig,
		"app/globals.css": globalsCSS(page),
		"app/layout.jsx":  layoutJSX(page),
		"app/page.jsx":    pageJSX(page, components),
	}
	for name, content := range files {
		if err := p.writeFile(name, content); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) writeFile(name, content string) error {
	path := filepath.Join(p.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// normalize assigns default file names, deduplicates them and rejects
// anything that would escape the project directory.
func normalize(components []ComponentSpec) []ComponentSpec {
	out := make([]ComponentSpec, 0, len(components))
	used := map[string]bool{}
	for i, c := range components {
		file := filepath.ToSlash(filepath.Clean(c.File))
		if file == "." || file == "" || strings.HasPrefix(file, "..") || strings.HasPrefix(file, "/") {
			file = ""
		}
		if file == "" {
			file = fmt.Sprintf("components/Section%d.jsx", i+1)
		}
		for used[file] {
			file = strings.TrimSuffix(file, ".jsx") + "X.jsx"
		}
		used[file] = true
		c.File = file
		out = append(out, c)
	}
	return out
}

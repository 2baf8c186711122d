package segmenter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DescribeFunc produces a payload for a single leaf region. It is the
// expensive, I/O-bound step of the pipeline and is invoked once per leaf
// under a bounded worker pool.
type DescribeFunc[D any] func(ctx context.Context, r Region) (D, error)

// CombineFunc merges child payloads (in child order) into the payload of
// the parent region. It runs only after every child has resolved.
type CombineFunc[D any] func(ctx context.Context, r Region, children []D) (D, error)

// ResolveOptions tunes payload resolution. The tree itself never
// inspects payloads; D is fully caller-defined.
type ResolveOptions[D any] struct {
	// Workers caps concurrent describe/combine calls. Values below 1
	// mean no explicit cap.
	Workers int
	// Fallback substitutes a payload when describe or combine fails for
	// a region, so one failure never aborts siblings or unrelated
	// subtrees. When nil the zero value of D is used.
	Fallback func(r Region, err error) D
}

// Resolve assigns a payload to every region of the tree: leaves first,
// concurrently, then internal nodes depth by depth from the deepest
// level up. Siblings at the same depth are combined concurrently; the
// walk across depths is inherently sequential.
//
// The returned map always covers every region id. Per-region failures
// are substituted via Fallback and reported joined in the returned
// error; only context cancellation stops the walk early.
func Resolve[D any](ctx context.Context, t *Tree, describe DescribeFunc[D], combine CombineFunc[D], opts ResolveOptions[D]) (map[int]D, error) {
	results := make(map[int]D, t.Len())
	var mu sync.Mutex
	var failures []error

	record := func(r Region, d D, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures = append(failures, fmt.Errorf("region %s: %w", r.Name(), err))
			if opts.Fallback != nil {
				d = opts.Fallback(r, err)
			}
		}
		results[r.ID] = d
	}

	run := func(regions []Region, fn func(Region) (D, error)) error {
		g, gctx := errgroup.WithContext(ctx)
		if opts.Workers > 0 {
			g.SetLimit(opts.Workers)
		}
		for _, r := range regions {
			r := r
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, err := fn(r)
				if err != nil && gctx.Err() != nil {
					// Cancellation, not a per-region failure.
					return gctx.Err()
				}
				record(r, d, err)
				return nil
			})
		}
		return g.Wait()
	}

	if err := run(t.Leaves(), func(r Region) (D, error) {
		return describe(ctx, r)
	}); err != nil {
		return nil, err
	}

	// Group internal nodes by depth; children of a node at depth d live
	// at depth d+1 and are resolved by the time the group runs.
	byDepth := make(map[int][]Region)
	for _, r := range t.All() {
		if !r.IsLeaf() {
			byDepth[r.Depth] = append(byDepth[r.Depth], r)
		}
	}

	for depth := t.MaxDepth(); depth >= 0; depth-- {
		group := byDepth[depth]
		if len(group) == 0 {
			continue
		}
		if err := run(group, func(r Region) (D, error) {
			mu.Lock()
			children := make([]D, len(r.Children))
			for i, c := range r.Children {
				children[i] = results[c]
			}
			mu.Unlock()
			return combine(ctx, r, children)
		}); err != nil {
			return nil, err
		}
	}

	return results, errors.Join(failures...)
}

package segmenter

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func joinDescribe(ctx context.Context, r Region) (string, error) {
	return "leaf:" + r.Name(), nil
}

func joinCombine(ctx context.Context, r Region, children []string) (string, error) {
	return "(" + strings.Join(children, "+") + ")", nil
}

func TestResolveAllRegions(t *testing.T) {
	tree := buildTestTree()

	results, err := Resolve(context.Background(), tree, joinDescribe, joinCombine, ResolveOptions[string]{Workers: 2})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(results) != tree.Len() {
		t.Fatalf("resolved %d regions, want %d", len(results), tree.Len())
	}
	for _, l := range tree.Leaves() {
		if results[l.ID] != "leaf:"+l.Name() {
			t.Errorf("leaf %s = %q", l.Name(), results[l.ID])
		}
	}

	// The root combines the leaf 'a' with the already combined pair.
	want := "(leaf:r1_0_0+(leaf:r2_0_106+leaf:r2_106_106))"
	if got := results[0]; got != want {
		t.Errorf("root payload = %q, want %q", got, want)
	}
}

func TestResolveFailureIsolation(t *testing.T) {
	tree := buildTestTree()

	describe := func(ctx context.Context, r Region) (string, error) {
		if r.Name() == "r2_0_106" {
			return "", fmt.Errorf("model unavailable")
		}
		return "leaf:" + r.Name(), nil
	}
	fallback := func(r Region, err error) string {
		return "placeholder:" + r.Name()
	}

	results, err := Resolve(context.Background(), tree, describe, joinCombine, ResolveOptions[string]{
		Workers:  2,
		Fallback: fallback,
	})
	if err == nil {
		t.Fatal("expected an aggregate error for the failed leaf")
	}

	// The failed leaf gets the placeholder; siblings and the rest of the
	// tree still resolve.
	if results[3] != "placeholder:r2_0_106" {
		t.Errorf("failed leaf = %q, want placeholder", results[3])
	}
	if results[4] != "leaf:r2_106_106" {
		t.Errorf("sibling leaf was affected: %q", results[4])
	}
	if !strings.Contains(results[0], "placeholder:r2_0_106") {
		t.Errorf("root should assemble over the placeholder, got %q", results[0])
	}
}

func TestResolveWorkerLimit(t *testing.T) {
	img := crossLayout()
	tree, err := New(DefaultOptions()).Segment(img)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	var inflight, peak int64
	describe := func(ctx context.Context, r Region) (string, error) {
		n := atomic.AddInt64(&inflight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inflight, -1)
		return r.Name(), nil
	}

	if _, err := Resolve(context.Background(), tree, describe, joinCombine, ResolveOptions[string]{Workers: 2}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if peak > 2 {
		t.Errorf("observed %d concurrent describes, limit was 2", peak)
	}
}

func TestResolveCancellation(t *testing.T) {
	tree := buildTestTree()
	ctx, cancel := context.WithCancel(context.Background())

	describe := func(ctx context.Context, r Region) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}

	if _, err := Resolve(ctx, tree, describe, joinCombine, ResolveOptions[string]{Workers: 1}); err == nil {
		t.Fatal("expected cancellation to surface")
	}
}

func TestResolveParentAfterChildren(t *testing.T) {
	tree := buildTestTree()

	var order []string
	var mu = make(chan struct{}, 1)
	mu <- struct{}{}
	push := func(name string) {
		<-mu
		order = append(order, name)
		mu <- struct{}{}
	}

	describe := func(ctx context.Context, r Region) (string, error) {
		push(r.Name())
		return r.Name(), nil
	}
	combine := func(ctx context.Context, r Region, children []string) (string, error) {
		push(r.Name())
		return r.Name(), nil
	}

	if _, err := Resolve(context.Background(), tree, describe, combine, ResolveOptions[string]{Workers: 4}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	pos := map[string]int{}
	for i, n := range order {
		pos[n] = i
	}
	for _, r := range tree.All() {
		for _, c := range r.Children {
			if pos[tree.Get(c).Name()] > pos[r.Name()] {
				t.Errorf("child %s resolved after parent %s", tree.Get(c).Name(), r.Name())
			}
		}
	}
}

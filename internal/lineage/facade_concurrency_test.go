package lineage

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestGraphConcurrentCallersPreserveCommandOrdering exercises spec.md §5's
// ordering guarantee under concurrent callers: every Upsert/Delete/query is
// funneled through the Worker Loop's single command queue, so regardless of
// how many goroutines submit concurrently, each caller's own sequence of
// calls is still applied in the order it issued them and every query it
// issues observes every update it issued beforehand.
func TestGraphConcurrentCallersPreserveCommandOrdering(t *testing.T) {
	g := New()
	defer g.Close()

	const writers = 8
	var eg errgroup.Group
	for i := 0; i < writers; i++ {
		name := Name(i + 1)
		eg.Go(func() error {
			g.Upsert(name, []Name{name + 100})
			if got := g.Dependencies(name); len(got) != 1 || got[0] != name+100 {
				t.Errorf("writer %d: Dependencies(%d) = %v, want [%d]", name, name, got, name+100)
			}
			g.Upsert(name, []Name{name + 200})
			if got := g.Dependencies(name); len(got) != 1 || got[0] != name+200 {
				t.Errorf("writer %d: Dependencies(%d) after replace = %v, want [%d]", name, name, got, name+200)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("errgroup.Wait: %v", err)
	}

	for i := 0; i < writers; i++ {
		name := Name(i + 1)
		if got := g.Dependencies(name); len(got) != 1 || got[0] != name+200 {
			t.Fatalf("final Dependencies(%d) = %v, want [%d]", name, got, name+200)
		}
	}
}

// TestGraphConcurrentReadersDoNotRace fires many concurrent queries at a
// single fixed graph; the Worker Loop serializes them, so the race detector
// (and this assertion) should find nothing to complain about.
func TestGraphConcurrentReadersDoNotRace(t *testing.T) {
	g := New()
	defer g.Close()

	g.Upsert(1, []Name{2, 3})
	g.Upsert(2, []Name{4, 5})

	var eg errgroup.Group
	for i := 0; i < 32; i++ {
		eg.Go(func() error {
			if got := g.DependenciesCascade(1); len(got) != 2 {
				t.Errorf("DependenciesCascade(1) = %v, want 2 keys", got)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("errgroup.Wait: %v", err)
	}
}

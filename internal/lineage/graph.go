// Package lineage exposes the Facade (spec.md §4.5, §6): a thread-safe
// handle that spawns a Worker Loop and lets arbitrary caller goroutines
// submit commands and block on query replies.
package lineage

import (
	"log/slog"

	"lineagegraph/internal/engine"
	"lineagegraph/internal/ident"
)

// Name is re-exported so callers don't need to import internal/ident
// directly; it is the opaque 64-bit node identifier (spec.md §3).
type Name = ident.Name

// Engine is the six-operation surface spec.md §6 describes. *Graph
// satisfies it; the interface exists only so callers can substitute a test
// double, not to support multiple engine implementations (spec.md §9
// "Dynamic-dispatch facade": tagged variants of implementations are
// equivalent, and the interface is trivial shape, not the subject of this
// engine).
type Engine interface {
	Dependencies(name Name) []Name
	Dependents(name Name) []Name
	DependenciesCascade(name Name) map[Name][]Name
	DependentsCascade(name Name) map[Name][]Name
	DependenciesK(name Name, k int) map[Name][]Name
	DependentsK(name Name, k int) map[Name][]Name
	Upsert(name Name, deps []Name)
	Delete(name Name)
	Close()
}

var _ Engine = (*Graph)(nil)

// Graph is the lineage engine's facade: construction spawns the Worker
// Loop; every query method blocks on a one-shot reply; every update method
// returns immediately, with ordering preserved by the worker's single
// command queue.
type Graph struct {
	worker *engine.Worker
}

// New constructs a Graph with default logging and queue sizing.
func New() *Graph {
	return NewWithOptions(nil, 0)
}

// NewWithOptions constructs a Graph with an explicit logger and ingress
// queue size (0 for either uses the Worker's defaults).
func NewWithOptions(logger *slog.Logger, queueSize int) *Graph {
	return &Graph{worker: engine.Start(logger, queueSize)}
}

// Close closes the ingress queue and waits for the worker to exit
// (spec.md §4.5 Teardown).
func (g *Graph) Close() {
	g.worker.Close()
}

// Upsert creates or replaces name's dependency list. Duplicate entries in
// deps are collapsed (spec.md §9). Asynchronous: returns immediately.
func (g *Graph) Upsert(name Name, deps []Name) {
	g.worker.Upsert(name, deps)
}

// Delete removes name's record. Nodes that still list name as a
// dependency are left pointing at it (spec.md §7). Asynchronous: returns
// immediately.
func (g *Graph) Delete(name Name) {
	g.worker.Delete(name)
}

// Dependencies returns the set of nodes name directly depends on, or an
// empty slice if name is unknown or has none.
func (g *Graph) Dependencies(name Name) []Name {
	return g.worker.Query(engine.Dependencies, name, 0).List
}

// Dependents returns the set of nodes that directly depend on name.
func (g *Graph) Dependents(name Name) []Name {
	return g.worker.Query(engine.Dependents, name, 0).List
}

// DependenciesCascade returns the full transitive closure of name's
// dependencies: a map from every key reached during the closure (including
// name itself) to its direct dependencies.
func (g *Graph) DependenciesCascade(name Name) map[Name][]Name {
	return g.worker.Query(engine.DependenciesCascade, name, 0).Closure
}

// DependentsCascade returns the full transitive closure of name's
// dependents.
func (g *Graph) DependentsCascade(name Name) map[Name][]Name {
	return g.worker.Query(engine.DependentsCascade, name, 0).Closure
}

// DependenciesK returns the closure of name's dependencies bounded to at
// most k hops. k=0 returns an empty map immediately.
func (g *Graph) DependenciesK(name Name, k int) map[Name][]Name {
	return g.worker.Query(engine.DependenciesK, name, k).Closure
}

// DependentsK returns the closure of name's dependents bounded to at most
// k hops.
func (g *Graph) DependentsK(name Name, k int) map[Name][]Name {
	return g.worker.Query(engine.DependentsK, name, k).Closure
}

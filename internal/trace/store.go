package trace

import "lineagegraph/internal/ident"

// Store is the Trace Store (spec.md §4.1): it owns the live node records
// and the two derived arrangements, Forward (name -> its declared
// dependencies) and Reverse (name -> the nodes that depend on it), kept in
// lockstep. Forward is the flattening of every live node record; Reverse is
// its exact transpose.
type Store struct {
	live    map[ident.Name][]ident.Name
	Forward *Arrangement
	Reverse *Arrangement
}

// NewStore returns an empty Trace Store.
func NewStore() *Store {
	return &Store{
		live:    make(map[ident.Name][]ident.Name),
		Forward: New(),
		Reverse: New(),
	}
}

// Upsert creates or replaces name's dependency list at logical time at:
// any previously-asserted edges are retracted and the new ones asserted in
// the same tick, so a consumer reading Forward/Reverse at any settled time
// never observes a mix of old and new. Duplicate entries in deps are
// collapsed before any diff is written (spec.md §9).
func (s *Store) Upsert(name ident.Name, deps []ident.Name, at Time) {
	newDeps := ident.Dedup(deps)
	if old, existed := s.live[name]; existed {
		s.retract(name, old, at)
	}
	for _, d := range newDeps {
		s.Forward.Record(name, d, at, 1)
		s.Reverse.Record(d, name, at, 1)
	}
	s.live[name] = newDeps
}

// Delete removes name's record, retracting its outgoing edges at logical
// time at. Nodes that still list name as a dependency keep pointing at it
// in Forward, and Reverse keeps them as name's dependents; name itself no
// longer appears in Reverse as a dependent of anything. This is not
// cascaded (spec.md §7, §9 open question).
func (s *Store) Delete(name ident.Name, at Time) {
	old, existed := s.live[name]
	if !existed {
		return
	}
	s.retract(name, old, at)
	delete(s.live, name)
}

func (s *Store) retract(name ident.Name, deps []ident.Name, at Time) {
	for _, d := range deps {
		s.Forward.Record(name, d, at, -1)
		s.Reverse.Record(d, name, at, -1)
	}
}

// Compact advances both Forward's and Reverse's physical and logical
// compaction frontier to at (spec.md §4.1, §5).
func (s *Store) Compact(at Time) {
	s.Forward.Compact(at)
	s.Reverse.Compact(at)
}

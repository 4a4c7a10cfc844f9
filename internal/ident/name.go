// Package ident defines the opaque node identifier the lineage engine
// operates over.
package ident

import "sort"

// Name is an opaque, hashable, totally ordered node identifier. It carries
// no internal structure; equality and ordering are the underlying integer's.
type Name uint64

// Sorted returns a duplicate-free, ascending copy of names. It is used
// wherever the spec calls for "an ordered sequence of identifiers" over a
// result that is really set-valued, so that results are deterministic and
// reproducible in tests and logs.
func Sorted(names []Name) []Name {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[Name]struct{}, len(names))
	out := make([]Name, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dedup collapses duplicate names, preserving no particular order. Used at
// ingest time to implement the spec's resolution of the "duplicate entries
// inside an upsert's dependency list" open question: the arrangement never
// sees them.
func Dedup(names []Name) []Name {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[Name]struct{}, len(names))
	out := make([]Name, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

package engine

import (
	"lineagegraph/internal/ident"
	"lineagegraph/internal/trace"
)

// oneHop implements spec.md §4.3.1: semijoin the standing arrangement
// against a singleton probe and read back that one key's values.
func oneHop(tr *trace.Arrangement, name ident.Name, asOf trace.Time) []ident.Name {
	return ident.Sorted(tr.ValuesAt(name, asOf))
}

// semijoin restricts tr to exactly the requested keys, keeping only the
// keys that have a non-empty, deduplicated value set at asOf -- "restricting
// a keyed collection to those keys present in a second collection".
func semijoin(tr *trace.Arrangement, keys []ident.Name, asOf trace.Time) map[ident.Name][]ident.Name {
	out := make(map[ident.Name][]ident.Name)
	for _, k := range keys {
		vals := tr.ValuesAt(k, asOf)
		if len(vals) == 0 {
			continue
		}
		out[k] = ident.Dedup(vals)
	}
	return out
}

// targets projects a semijoin round onto its second coordinate: the set of
// values reached this round, which become next round's probe keys.
func targets(round map[ident.Name][]ident.Name) []ident.Name {
	seen := make(map[ident.Name]struct{})
	for _, vals := range round {
		for _, v := range vals {
			seen[v] = struct{}{}
		}
	}
	out := make([]ident.Name, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	return out
}

// reduceDedup asserts one round's (key, value) pairs into the transient
// result trace, each exactly once -- the "reduce(dedup)" step of spec.md
// §4.3.2/§4.3.3, which collapses the multiset of incoming pairs per key
// down to a set.
func reduceDedup(into *trace.Arrangement, round map[ident.Name][]ident.Name, at trace.Time) {
	for k, vals := range round {
		for _, v := range vals {
			into.Record(k, v, at, 1)
		}
	}
}

// iterate drives the shared cascade/k-hop fixpoint loop: seed the result
// with name's direct edges, then repeatedly semijoin against the frontier
// not yet visited, concat into the result, and reduce(dedup) -- via a
// visited set rather than a literal multiset, which spec.md §9 Design
// Notes explicitly sanctions as reaching the same fixpoint. extraRounds < 0
// means iterate to fixpoint (cascade); extraRounds >= 0 means unroll
// exactly that many further rounds (k-hop, called with k-1).
func iterate(tr *trace.Arrangement, name ident.Name, asOf trace.Time, extraRounds int) map[ident.Name][]ident.Name {
	result := trace.New()
	frontier := semijoin(tr, []ident.Name{name}, asOf)
	reduceDedup(result, frontier, asOf)

	reached := map[ident.Name]struct{}{name: {}}
	for round := 0; extraRounds < 0 || round < extraRounds; round++ {
		next := targets(frontier)
		fresh := make([]ident.Name, 0, len(next))
		for _, n := range next {
			if _, ok := reached[n]; ok {
				continue
			}
			fresh = append(fresh, n)
			reached[n] = struct{}{}
		}
		if len(fresh) == 0 {
			break
		}
		frontier = semijoin(tr, fresh, asOf)
		if len(frontier) == 0 {
			break
		}
		reduceDedup(result, frontier, asOf)
	}

	return result.Drain(asOf)
}

// cascade implements spec.md §4.3.2: iterate to fixpoint.
func cascade(tr *trace.Arrangement, name ident.Name, asOf trace.Time) map[ident.Name][]ident.Name {
	return iterate(tr, name, asOf, -1)
}

// kHop implements spec.md §4.3.3: k=0 returns empty immediately; otherwise
// unroll the cascade loop k-1 times.
func kHop(tr *trace.Arrangement, name ident.Name, k int, asOf trace.Time) map[ident.Name][]ident.Name {
	if k <= 0 {
		return map[ident.Name][]ident.Name{}
	}
	return iterate(tr, name, asOf, k-1)
}

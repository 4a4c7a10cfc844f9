// Package trace implements the engine's Trace Store: key-indexed,
// time-versioned multisets of facts ("arrangements") and the Trace Store
// that derives Forward/Reverse edges from a stream of node-record
// upserts and deletes. See spec.md §3, §4.1, §4.4.
package trace

import (
	"fmt"
	"sort"

	"lineagegraph/internal/ident"
)

// Time is the engine's logical clock. It only ever increases.
type Time uint64

// Diff is a signed multiplicity: +1 asserts a fact, -1 retracts one.
type Diff int64

// Update is a single (value, time, diff) fact recorded against some key in
// an Arrangement.
type Update struct {
	Value ident.Name
	At    Time
	Diff  Diff
}

// Arrangement is a key-sorted, time-indexed index of (key, value, time,
// diff) facts: the glossary's "arrangement". It is the sole building block
// both the Trace Store's Forward/Reverse collections and the Query
// Planner's transient closure results are built from.
//
// Arrangement is not safe for concurrent use; it is owned exclusively by
// the worker goroutine that also owns the logical clock (spec.md §3
// Ownership).
type Arrangement struct {
	byKey map[ident.Name][]Update
}

// New returns an empty Arrangement.
func New() *Arrangement {
	return &Arrangement{byKey: make(map[ident.Name][]Update)}
}

// Record appends a single (value, time, diff) fact under key. It never
// merges eagerly; merging happens at Compact or at read time.
func (a *Arrangement) Record(key, value ident.Name, at Time, diff Diff) {
	a.byKey[key] = append(a.byKey[key], Update{Value: value, At: at, Diff: diff})
}

// ValuesAt drains key's consolidated multiset as of asOf: it sums the diffs
// recorded for each value at times <= asOf and emits that value repeated
// once per surviving unit of multiplicity. A negative sum is a corruption
// -class invariant violation and panics (spec.md §4.4, §7).
//
// The result is not deduplicated nor sorted; callers that want set
// semantics should route it through ident.Dedup/ident.Sorted.
func (a *Arrangement) ValuesAt(key ident.Name, asOf Time) []ident.Name {
	updates := a.byKey[key]
	if len(updates) == 0 {
		return nil
	}

	sums := make(map[ident.Name]Diff)
	for _, u := range updates {
		if u.At <= asOf {
			sums[u.Value] += u.Diff
		}
	}

	var out []ident.Name
	for v, sum := range sums {
		if sum < 0 {
			panic(fmt.Sprintf("trace: negative multiplicity %d for key=%d value=%d", sum, key, v))
		}
		for i := Diff(0); i < sum; i++ {
			out = append(out, v)
		}
	}
	return out
}

// Compact merges every diff at a time <= frontier into a single
// consolidated diff at frontier, for every key, dropping any value whose
// consolidated diff nets to zero. It is the glossary's "compaction": a
// memory-bounding operation, not a correctness one -- ValuesAt gives the
// same answer whether or not Compact has run. Spec.md §4.1, §5.
func (a *Arrangement) Compact(frontier Time) {
	for key, updates := range a.byKey {
		sums := make(map[ident.Name]Diff)
		var kept []Update
		for _, u := range updates {
			if u.At <= frontier {
				sums[u.Value] += u.Diff
			} else {
				kept = append(kept, u)
			}
		}
		for v, sum := range sums {
			if sum != 0 {
				kept = append(kept, Update{Value: v, At: frontier, Diff: sum})
			}
		}
		if len(kept) == 0 {
			delete(a.byKey, key)
			continue
		}
		a.byKey[key] = kept
	}
}

// Cursor walks an Arrangement's keys in ascending order. It is the
// glossary's "cursor": the mechanism §4.4 describes for draining a result
// trace.
type Cursor struct {
	arr  *Arrangement
	asOf Time
	keys []ident.Name
	i    int
}

// Cursor opens a cursor over every key currently present in the
// arrangement, to be drained as of asOf.
func (a *Arrangement) Cursor(asOf Time) *Cursor {
	keys := make([]ident.Name, 0, len(a.byKey))
	for k := range a.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return &Cursor{arr: a, asOf: asOf, keys: keys}
}

// Next advances the cursor to the next key, returning false once exhausted.
func (c *Cursor) Next() bool {
	c.i++
	return c.i <= len(c.keys)
}

// Key returns the cursor's current key. Valid only after a Next that
// returned true.
func (c *Cursor) Key() ident.Name {
	return c.keys[c.i-1]
}

// Values drains the cursor's current key, deduplicated and sorted.
func (c *Cursor) Values() []ident.Name {
	return ident.Sorted(c.arr.ValuesAt(c.keys[c.i-1], c.asOf))
}

// Drain walks the whole arrangement as of asOf and returns every key that
// survives with a non-empty value set -- "a key with no surviving values is
// omitted" (spec.md §4.4).
func (a *Arrangement) Drain(asOf Time) map[ident.Name][]ident.Name {
	out := make(map[ident.Name][]ident.Name)
	cur := a.Cursor(asOf)
	for cur.Next() {
		vals := cur.Values()
		if len(vals) == 0 {
			continue
		}
		out[cur.Key()] = vals
	}
	return out
}

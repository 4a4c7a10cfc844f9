package engine

import "lineagegraph/internal/ident"

// QueryKind selects one of the three query shapes the Query Planner knows
// how to serve, crossed with a direction.
type QueryKind int

const (
	Dependencies QueryKind = iota
	Dependents
	DependenciesCascade
	DependentsCascade
	DependenciesK
	DependentsK
)

func (k QueryKind) String() string {
	switch k {
	case Dependencies:
		return "dependencies"
	case Dependents:
		return "dependents"
	case DependenciesCascade:
		return "dependencies_cascade"
	case DependentsCascade:
		return "dependents_cascade"
	case DependenciesK:
		return "dependencies_k"
	case DependentsK:
		return "dependents_k"
	default:
		return "unknown"
	}
}

func (k QueryKind) reversed() bool {
	return k == Dependents || k == DependentsCascade || k == DependentsK
}

func (k QueryKind) closure() bool {
	return k != Dependencies && k != Dependents
}

// Result is what a query Command resolves to: exactly one of List (one-hop
// queries) or Closure (cascade/k-hop queries) is populated.
type Result struct {
	List    []ident.Name
	Closure map[ident.Name][]ident.Name
}

// command is the Update Log's single message type: an upsert, a delete, or
// a query. Commands are submitted in order to one channel and processed to
// completion one at a time by the Worker Loop (spec.md §2 Update Log, §4.2).
type command struct {
	requestID string

	// upsert/delete
	isUpdate bool
	isDelete bool
	name     ident.Name
	deps     []ident.Name

	// query
	kind  QueryKind
	k     int
	reply chan Result
}

// Package repository implements the scope-aware, typed collection of
// materialized domain entities the rule router queries by type.
package repository

import (
	"reflect"
	"sync"

	"phenolint/internal/model"
	"phenolint/pkg/pointer"
)

// Repository is a typed, scope-aware collection of materialized nodes.
// Nodes are keyed by their concrete Go type (via reflect.Type), per the
// Design Notes' "registry of TypeId -> []Node<T>" option; insertion order
// within a (T, scope) bucket is preserved.
type Repository struct {
	mu sync.Mutex

	buckets map[reflect.Type][]entry

	cohortBoundaryObserved bool
}

type entry struct {
	scope model.Scope
	value any
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{buckets: make(map[reflect.Type][]entry)}
}

// Insert files v under its concrete type, deriving its scope from the
// type, its pointer, and the repository's COHORT-boundary watermark.
// Inserting a model.Cohort sets that watermark for all subsequent
// ambiguous insertions; the watermark is monotonic and never resets.
func Insert[T any](r *Repository, v T, at pointer.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, isPhenopacket := any(v).(model.Phenopacket)
	_, isCohort := any(v).(model.Cohort)

	scope := model.ScopeOf(isPhenopacket, isCohort, at, r.cohortBoundaryObserved)

	if isCohort {
		r.cohortBoundaryObserved = true
	}

	t := reflect.TypeOf(v)
	r.buckets[t] = append(r.buckets[t], entry{scope: scope, value: v})
}

// FetchAll returns every node of type T, in insertion (traversal) order.
func FetchAll[T any](r *Repository) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	t := reflect.TypeOf(zero)
	out := make([]T, 0, len(r.buckets[t]))
	for _, e := range r.buckets[t] {
		out = append(out, e.value.(T))
	}
	return out
}

// FetchByScope returns every node of type T filed under scope.
func FetchByScope[T any](r *Repository, scope model.Scope) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	t := reflect.TypeOf(zero)
	var out []T
	for _, e := range r.buckets[t] {
		if e.scope == scope {
			out = append(out, e.value.(T))
		}
	}
	return out
}

// FetchByTopLevelElement groups nodes of type T filed under scope by
// their containing top-level boundary (a "members", "relatives" or
// "proband" segment together with the segment after it), so a rule
// operating on one Phenopacket inside a Cohort sees only that
// Phenopacket's own children. The boundary key is the empty string for
// nodes not nested under such a segment.
func FetchByTopLevelElement[T any](r *Repository, scope model.Scope) map[string][]T {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	t := reflect.TypeOf(zero)
	groups := make(map[string][]T)
	for _, e := range r.buckets[t] {
		if e.scope != scope {
			continue
		}
		v := e.value.(T)
		groups[topLevelKey(v)] = append(groups[topLevelKey(v)], v)
	}
	return groups
}

// locator extracts the embedded model.Located from a materialized value,
// returning zero-value with ok=false for types that don't embed it.
func locator(v any) (model.Located, bool) {
	switch t := v.(type) {
	case model.OntologyClass:
		return t.Located, true
	case model.PhenotypicFeature:
		return t.Located, true
	case model.Disease:
		return t.Located, true
	case model.Diagnosis:
		return t.Located, true
	case model.Resource:
		return t.Located, true
	case model.VitalStatus:
		return t.Located, true
	case model.Phenopacket:
		return t.Located, true
	case model.Cohort:
		return t.Located, true
	default:
		return model.Located{}, false
	}
}

// topLevelKey is the node's containing Phenopacket boundary: the
// members/relatives/proband segment plus its index (e.g. "members/0"),
// or "" for a node that isn't nested under one of those (a single-
// Phenopacket CASE-scope document collapses to one boundary).
func topLevelKey(v any) string {
	loc, ok := locator(v)
	if !ok {
		return ""
	}
	segs := loc.At.Segments()
	for i, s := range segs {
		if s == "members" || s == "relatives" || s == "proband" {
			if i+1 < len(segs) {
				return segs[i] + "/" + segs[i+1]
			}
			return s
		}
	}
	return ""
}

// Package ontology defines the interface rules use to query HPO (or any
// other ontology DAG) for ancestor/descendant relationships, plus a
// minimal in-memory implementation. Loading a real hp.json from disk is
// an external collaborator; this package only defines the shape rules
// depend on and a small adjacency-list implementation good enough for
// tests and small --hpo-path files.
package ontology

import (
	"os"
	"strings"
)

// Ontology answers ancestor/descendant questions about CURIE-identified
// terms.
type Ontology interface {
	// IsAncestorOf reports whether ancestor is a (possibly indirect)
	// ancestor of descendant, i.e. descendant is-a ancestor transitively.
	IsAncestorOf(ancestor, descendant string) bool

	// HasAncestor reports whether term is ancestor or descends from it
	// (used to validate terms that must sit below a known root, e.g. Onset).
	HasAncestor(term, ancestor string) bool
}

// Map is a minimal in-memory Ontology backed by a child -> parents
// adjacency list. There is no off-the-shelf ontology/DAG library in use
// elsewhere in this module, so HPO loading is kept behind this interface
// as an external collaborator the core only depends on abstractly.
type Map struct {
	parents map[string][]string
}

// NewMap builds a Map from a child -> direct-parents adjacency list.
func NewMap(parents map[string][]string) *Map {
	return &Map{parents: parents}
}

// IsAncestorOf walks parents breadth-first from descendant looking for
// ancestor.
func (m *Map) IsAncestorOf(ancestor, descendant string) bool {
	if ancestor == descendant {
		return false
	}
	seen := map[string]bool{descendant: true}
	queue := []string{descendant}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range m.parents[cur] {
			if p == ancestor {
				return true
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// HasAncestor reports whether term descends from ancestor, inclusive of
// term == ancestor.
func (m *Map) HasAncestor(term, ancestor string) bool {
	if term == ancestor {
		return true
	}
	return m.IsAncestorOf(ancestor, term)
}

// LoadTSV reads a flat "child\tparent" adjacency list from path. Parsing
// a real hp.json is the external collaborator's job; this is just enough
// to exercise --hpo-path end to end for both the CLI and the LSP front
// end.
func LoadTSV(path string) (Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parents := make(map[string][]string)
	for _, line := range strings.Split(string(data), "\n") {
		cols := strings.SplitN(strings.TrimSpace(line), "\t", 2)
		if len(cols) != 2 {
			continue
		}
		parents[cols[0]] = append(parents[cols[0]], cols[1])
	}
	return NewMap(parents), nil
}

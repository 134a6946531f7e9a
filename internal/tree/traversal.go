package tree

import "phenolint/pkg/pointer"

// Visited is one node yielded by a Traversal: its value, its pointer, and
// its span if the containing document records one.
type Visited struct {
	Value   Value
	Pointer pointer.Pointer
	Span    Span
	HasSpan bool
}

type queueEntry struct {
	value Value
	ptr   pointer.Pointer
}

// Traversal is a lazy, single-pass, breadth-first walk over a Value. Build
// a new Traversal to restart from any root pointer.
type Traversal struct {
	spans SpanMap
	queue []queueEntry
}

// NewTraversal starts a breadth-first walk rooted at (root, at).
func NewTraversal(root Value, at pointer.Pointer, spans SpanMap) *Traversal {
	return &Traversal{
		spans: spans,
		queue: []queueEntry{{value: root, ptr: at}},
	}
}

// Next returns the next node in breadth-first order, or ok=false when the
// walk is exhausted.
func (t *Traversal) Next() (Visited, bool) {
	if len(t.queue) == 0 {
		return Visited{}, false
	}

	entry := t.queue[0]
	t.queue = t.queue[1:]

	visited := Visited{Value: entry.value, Pointer: entry.ptr}
	if span, ok := t.spans.Lookup(entry.ptr); ok {
		visited.Span = span
		visited.HasSpan = true
	}

	switch entry.value.Kind {
	case KindSeq:
		for i, child := range entry.value.Seq {
			t.queue = append(t.queue, queueEntry{value: child, ptr: entry.ptr.DownIndex(i)})
		}
	case KindMap:
		if entry.value.Map != nil {
			for _, key := range entry.value.Map.Keys() {
				child, _ := entry.value.Map.Get(key)
				t.queue = append(t.queue, queueEntry{value: child, ptr: entry.ptr.Down(key)})
			}
		}
	case KindNull:
		// leaves, no children enqueued
	}

	return visited, true
}

// All drains the traversal into a slice. Convenience for callers (such as
// tests) that don't need the lazy form.
func All(t *Traversal) []Visited {
	var out []Visited
	for {
		v, ok := t.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

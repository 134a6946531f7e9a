package tree

import "phenolint/pkg/pointer"

// Span is a half-open byte range [Start, End) into the original input.
type Span struct {
	Start int
	End   int
}

// SpanMap maps pointers to their byte range in the source text. Protobuf
// inputs have no user-visible text, so their SpanMap is collected over the
// pretty-printed JSON rendering instead.
type SpanMap map[string]Span

// Lookup returns the span recorded for p, if any.
func (m SpanMap) Lookup(p pointer.Pointer) (Span, bool) {
	s, ok := m[p.String()]
	return s, ok
}

// Set records the span for p.
func (m SpanMap) Set(p pointer.Pointer, s Span) {
	m[p.String()] = s
}

// Merge copies every entry of other into m.
func (m SpanMap) Merge(other SpanMap) {
	for k, v := range other {
		m[k] = v
	}
}

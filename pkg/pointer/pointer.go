// Package pointer implements RFC-6901 JSON Pointers as used throughout
// phenolint to address a location inside a canonical document tree.
package pointer

import (
	"strconv"
	"strings"
)

// Pointer is an immutable RFC-6901 path. The zero value is the root
// pointer. Pointer is comparable and safe to use as a map key.
type Pointer struct {
	escaped string
}

// Root returns the pointer to the document root.
func Root() Pointer {
	return Pointer{}
}

// New builds a Pointer from a slice of decoded (unescaped) segments.
func New(segments ...string) Pointer {
	p := Root()
	for _, s := range segments {
		p = p.Down(s)
	}
	return p
}

// Parse treats s as an already-escaped pointer string (e.g. one read back
// from a span map or received from a patch instruction). Parse never
// fails: a missing leading "/" is prepended, and otherwise the input
// round-trips its own bytes unchanged.
func Parse(s string) Pointer {
	if s == "" {
		return Pointer{}
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return Pointer{escaped: s}
}

// String returns the escaped wire form ("" at root).
func (p Pointer) String() string {
	return p.escaped
}

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool {
	return p.escaped == ""
}

// Down appends a single decoded segment, escaping it per RFC 6901
// (`~` -> `~0`, `/` -> `~1`).
func (p Pointer) Down(segment string) Pointer {
	return Pointer{escaped: p.escaped + "/" + escape(segment)}
}

// DownIndex appends a decoded array index segment.
func (p Pointer) DownIndex(i int) Pointer {
	return p.Down(strconv.Itoa(i))
}

// Up truncates the pointer at its last segment; a no-op at root.
func (p Pointer) Up() Pointer {
	if p.IsRoot() {
		return p
	}
	idx := strings.LastIndex(p.escaped, "/")
	return Pointer{escaped: p.escaped[:idx]}
}

// Segments returns the decoded, in-order path segments; empty at root.
func (p Pointer) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	parts := strings.Split(p.escaped, "/")[1:]
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = unescape(part)
	}
	return out
}

// Tip returns the last decoded segment, or "" at root.
func (p Pointer) Tip() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Contains reports whether any segment of p equals name.
func (p Pointer) Contains(name string) bool {
	for _, s := range p.Segments() {
		if s == name {
			return true
		}
	}
	return false
}

// Equal reports whether p and other address the same location.
func (p Pointer) Equal(other Pointer) bool {
	return p.escaped == other.escaped
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

package tree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"phenolint/pkg/pointer"
)

// ParseYAML decodes src as YAML into the canonical tree. Spans are derived
// from yaml.v3's per-node Line/Column marks: yaml.v3 does not expose an
// end offset, so each node's end is taken as the (trailing-newline-
// trimmed) start of the next node in document order that is not one of
// its own descendants, or end-of-input when there is none; a mapping or
// sequence value thus covers all of its children. Sequence-item spans additionally chop one more byte than
// mapping-value spans ([start, end-1) vs [start, end)) — kept as-is
// rather than "fixed"; see DESIGN.md.
func ParseYAML(src []byte) (Value, SpanMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return Value{}, nil, fmt.Errorf("yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return Null(), SpanMap{}, nil
	}

	lineStarts := computeLineStarts(src)
	w := &yamlWalker{src: src, lineStarts: lineStarts}
	v := w.convert(doc.Content[0], pointer.Root())

	w.nodes = append(w.nodes, yamlPos{ptr: pointer.Root(), start: w.byteOffset(doc.Content[0]), isSeqItem: false})
	sort.Slice(w.nodes, func(i, j int) bool { return w.nodes[i].start < w.nodes[j].start })

	spans := make(SpanMap, len(w.nodes))
	for i, n := range w.nodes {
		next := len(src)
		prefix := n.ptr.String() + "/"
		for j := i + 1; j < len(w.nodes); j++ {
			if !strings.HasPrefix(w.nodes[j].ptr.String(), prefix) {
				next = w.nodes[j].start
				break
			}
		}
		end := trimTrailingNewline(src, next)
		if n.isSeqItem {
			end = end - 1
			if end < n.start {
				end = n.start
			}
		}
		spans.Set(n.ptr, Span{Start: n.start, End: end})
	}

	return v, spans, nil
}

type yamlPos struct {
	ptr       pointer.Pointer
	start     int
	isSeqItem bool
}

type yamlWalker struct {
	src        []byte
	lineStarts []int
	nodes      []yamlPos
}

func (w *yamlWalker) byteOffset(n *yaml.Node) int {
	line := n.Line - 1
	if line < 0 {
		line = 0
	}
	if line >= len(w.lineStarts) {
		line = len(w.lineStarts) - 1
	}
	off := w.lineStarts[line] + runeColumnToByte(w.src, w.lineStarts[line], n.Column-1)
	if off > len(w.src) {
		off = len(w.src)
	}
	return off
}

// convert walks a yaml.Node into the canonical Value, recording each
// value's pointer/start so ParseYAML can derive spans afterward.
func (w *yamlWalker) convert(n *yaml.Node, at pointer.Pointer) Value {
	switch n.Kind {
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			val := n.Content[i+1]
			child := w.convert(val, at.Down(key.Value))
			m.Set(key.Value, child)
			w.nodes = append(w.nodes, yamlPos{ptr: at.Down(key.Value), start: w.byteOffset(val)})
		}
		return MapValue(m)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, item := range n.Content {
			childPtr := at.DownIndex(i)
			items[i] = w.convert(item, childPtr)
			w.nodes = append(w.nodes, yamlPos{ptr: childPtr, start: w.byteOffset(item), isSeqItem: true})
		}
		return Seq(items...)
	case yaml.ScalarNode:
		return w.convertScalar(n)
	case yaml.AliasNode:
		if n.Alias != nil {
			return w.convert(n.Alias, at)
		}
		return Null()
	default:
		return Null()
	}
}

func (w *yamlWalker) convertScalar(n *yaml.Node) Value {
	if n.Tag == "!!null" || (n.Tag == "" && n.Value == "") {
		return Null()
	}
	switch n.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err == nil {
			return Bool(b)
		}
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			return Number(f)
		}
	}
	return String(n.Value)
}

func computeLineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// runeColumnToByte converts a 0-based rune column on the line starting at
// lineStart into a byte offset relative to lineStart.
func runeColumnToByte(src []byte, lineStart, col int) int {
	byteOff := 0
	runes := 0
	for byteOff+lineStart < len(src) && runes < col {
		b := src[lineStart+byteOff]
		size := 1
		switch {
		case b&0x80 == 0:
			size = 1
		case b&0xE0 == 0xC0:
			size = 2
		case b&0xF0 == 0xE0:
			size = 3
		case b&0xF8 == 0xF0:
			size = 4
		}
		byteOff += size
		runes++
	}
	return byteOff
}

func trimTrailingNewline(src []byte, end int) int {
	if end > 0 && end <= len(src) && src[end-1] == '\n' {
		end--
		if end > 0 && src[end-1] == '\r' {
			end--
		}
	}
	return end
}

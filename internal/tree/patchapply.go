package tree

import (
	"fmt"

	"phenolint/pkg/pointer"
)

// AddAt returns a copy of root with val inserted/overwritten at `at`,
// creating the object key or replacing the array element val targets. The
// copy-on-write technique (clone only the nodes on the path to `at`,
// share everything else) is modeled on
// github.com/agentflare-ai/jsonpatch's cowSetAtPath/shallowCloneMap; this
// repo reimplements it directly over tree.Value instead of map[string]any
// so Map's insertion order survives the edit.
func AddAt(root Value, at pointer.Pointer, val Value) (Value, error) {
	if at.IsRoot() {
		return val, nil
	}
	return addAt(root, at.Segments(), val)
}

func addAt(cur Value, segs []string, val Value) (Value, error) {
	seg := segs[0]
	rest := segs[1:]

	switch cur.Kind {
	case KindMap:
		clone := cloneMap(cur.Map)
		if len(rest) == 0 {
			clone.Set(seg, val)
			return MapValue(clone), nil
		}
		child, ok := clone.Get(seg)
		if !ok {
			child = containerForSegment(rest[0])
		}
		updated, err := addAt(child, rest, val)
		if err != nil {
			return Value{}, err
		}
		clone.Set(seg, updated)
		return MapValue(clone), nil

	case KindSeq:
		idx, err := seqIndex(cur, seg)
		if err != nil {
			return Value{}, err
		}
		clone := cloneSeq(cur.Seq)
		if len(rest) == 0 {
			if idx == len(clone) {
				clone = append(clone, val)
			} else {
				clone[idx] = val
			}
			return Seq(clone...), nil
		}
		if idx >= len(clone) {
			return Value{}, fmt.Errorf("tree: index %d out of range adding into array of length %d", idx, len(clone))
		}
		updated, err := addAt(clone[idx], rest, val)
		if err != nil {
			return Value{}, err
		}
		clone[idx] = updated
		return Seq(clone...), nil

	case KindNull:
		container := containerForSegment(seg)
		return addAt(container, segs, val)

	default:
		return Value{}, fmt.Errorf("tree: cannot descend into %s at segment %q", cur.Kind, seg)
	}
}

// RemoveAt returns a copy of root with the node at `at` removed.
func RemoveAt(root Value, at pointer.Pointer) (Value, error) {
	if at.IsRoot() {
		return Null(), nil
	}
	return removeAt(root, at.Segments())
}

func removeAt(cur Value, segs []string) (Value, error) {
	seg := segs[0]
	rest := segs[1:]

	switch cur.Kind {
	case KindMap:
		clone := cloneMap(cur.Map)
		if len(rest) == 0 {
			clone.delete(seg)
			return MapValue(clone), nil
		}
		child, ok := clone.Get(seg)
		if !ok {
			return Value{}, fmt.Errorf("tree: remove: %q not found", seg)
		}
		updated, err := removeAt(child, rest)
		if err != nil {
			return Value{}, err
		}
		clone.Set(seg, updated)
		return MapValue(clone), nil

	case KindSeq:
		idx, err := seqIndex(cur, seg)
		if err != nil {
			return Value{}, err
		}
		if idx >= len(cur.Seq) {
			return Value{}, fmt.Errorf("tree: remove: index %d out of range", idx)
		}
		clone := cloneSeq(cur.Seq)
		if len(rest) == 0 {
			clone = append(clone[:idx], clone[idx+1:]...)
			return Seq(clone...), nil
		}
		updated, err := removeAt(clone[idx], rest)
		if err != nil {
			return Value{}, err
		}
		clone[idx] = updated
		return Seq(clone...), nil

	default:
		return Value{}, fmt.Errorf("tree: cannot descend into %s at segment %q", cur.Kind, seg)
	}
}

// ValueAt resolves `at` against root, returning ok=false if any segment is
// missing.
func ValueAt(root Value, at pointer.Pointer) (Value, bool) {
	cur := root
	for _, seg := range at.Segments() {
		child, ok := cur.Get(seg)
		if !ok {
			return Value{}, false
		}
		cur = child
	}
	return cur, true
}

func containerForSegment(seg string) Value {
	if _, err := parseIndex(seg); err == nil || seg == "-" {
		return Seq()
	}
	return MapValue(NewMap())
}

func seqIndex(cur Value, seg string) (int, error) {
	if seg == "-" {
		return len(cur.Seq), nil
	}
	idx, err := parseIndex(seg)
	if err != nil {
		return 0, fmt.Errorf("tree: invalid array index %q", seg)
	}
	return idx, nil
}

func cloneMap(m *Map) *Map {
	clone := NewMap()
	if m == nil {
		return clone
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		clone.Set(k, v)
	}
	return clone
}

func cloneSeq(s []Value) []Value {
	clone := make([]Value, len(s))
	copy(clone, s)
	return clone
}

func (m *Map) delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

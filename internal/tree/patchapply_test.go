package tree

import (
	"testing"

	"phenolint/pkg/pointer"
)

func TestAddAtMapKey(t *testing.T) {
	root, _, err := ParseJSON([]byte(`{"id": "a"}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	updated, err := AddAt(root, pointer.Root().Down("name"), String("b"))
	if err != nil {
		t.Fatalf("AddAt error: %v", err)
	}
	name, ok := updated.Get("name")
	if !ok || name.Str != "b" {
		t.Errorf("name = %+v, want %q", name, "b")
	}
	// original untouched (copy-on-write)
	if _, ok := root.Get("name"); ok {
		t.Error("AddAt mutated the original root")
	}
}

func TestAddAtAppendToSeq(t *testing.T) {
	root, _, err := ParseJSON([]byte(`{"diseases": [{"term": 1}]}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	diseases, _ := root.Get("diseases")
	updated, err := AddAt(root, pointer.Root().Down("diseases").DownIndex(len(diseases.Seq)), MapValue(NewMap()))
	if err != nil {
		t.Fatalf("AddAt error: %v", err)
	}
	got, _ := updated.Get("diseases")
	if len(got.Seq) != 2 {
		t.Fatalf("len(diseases) = %d, want 2", len(got.Seq))
	}
}

func TestRemoveAtMapKey(t *testing.T) {
	root, _, err := ParseJSON([]byte(`{"a": 1, "b": 2}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	updated, err := RemoveAt(root, pointer.Root().Down("a"))
	if err != nil {
		t.Fatalf("RemoveAt error: %v", err)
	}
	if _, ok := updated.Get("a"); ok {
		t.Error("expected \"a\" to be removed")
	}
	if b, ok := updated.Get("b"); !ok || b.Number != 2 {
		t.Errorf("b = %+v, want 2", b)
	}
	if updated.Map.Len() != 1 {
		t.Errorf("Len() = %d, want 1", updated.Map.Len())
	}
}

func TestRemoveAtSeqIndex(t *testing.T) {
	root, _, err := ParseJSON([]byte(`{"xs": [1, 2, 3]}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	updated, err := RemoveAt(root, pointer.Root().Down("xs").DownIndex(1))
	if err != nil {
		t.Fatalf("RemoveAt error: %v", err)
	}
	xs, _ := updated.Get("xs")
	if len(xs.Seq) != 2 || xs.Seq[0].Number != 1 || xs.Seq[1].Number != 3 {
		t.Errorf("xs = %+v, want [1, 3]", xs)
	}
}

func TestValueAtMissingSegment(t *testing.T) {
	root, _, err := ParseJSON([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if _, ok := ValueAt(root, pointer.Root().Down("missing")); ok {
		t.Error("expected ok=false for a missing key")
	}
}

func TestAddAtNestedPathCreatesContainers(t *testing.T) {
	root := MapValue(NewMap())
	updated, err := AddAt(root, pointer.Root().Down("a").Down("b"), Number(1))
	if err != nil {
		t.Fatalf("AddAt error: %v", err)
	}
	a, ok := updated.Get("a")
	if !ok || a.Kind != KindMap {
		t.Fatalf("a = %+v, want a map", a)
	}
	b, ok := a.Get("b")
	if !ok || b.Number != 1 {
		t.Errorf("b = %+v, want 1", b)
	}
}

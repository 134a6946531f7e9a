package tree

import (
	"testing"

	"google.golang.org/protobuf/encoding/protojson"

	"phenolint/internal/phenopb"
)

func TestParseProtobuf(t *testing.T) {
	msg := phenopb.NewPhenopacket()
	if err := protojson.Unmarshal([]byte(`{"id": "example-1"}`), msg); err != nil {
		t.Fatalf("protojson.Unmarshal error: %v", err)
	}
	wire, err := phenopb.Encode(msg)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	v, spans, err := ParseProtobuf(wire)
	if err != nil {
		t.Fatalf("ParseProtobuf error: %v", err)
	}
	id, ok := v.Get("id")
	if !ok || id.Str != "example-1" {
		t.Errorf("id = %+v, want %q", id, "example-1")
	}
	if len(spans) == 0 {
		t.Error("expected spans over the re-rendered JSON text")
	}
}

func TestParseDispatchesToProtobuf(t *testing.T) {
	msg := phenopb.NewPhenopacket()
	if err := protojson.Unmarshal([]byte(`{"id": "example-1"}`), msg); err != nil {
		t.Fatalf("protojson.Unmarshal error: %v", err)
	}
	wire, err := phenopb.Encode(msg)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	_, _, enc, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if enc != Protobuf {
		t.Errorf("Encoding = %v, want Protobuf", enc)
	}
}

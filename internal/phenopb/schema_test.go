package phenopb

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

func TestNewPhenopacketIsEmpty(t *testing.T) {
	m := NewPhenopacket()
	if m == nil {
		t.Fatal("NewPhenopacket returned nil")
	}
	data, err := proto.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected an empty message to marshal to zero bytes, got %d", len(data))
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := NewPhenopacket()
	if err := protojson.Unmarshal([]byte(`{"id": "example-1"}`), src); err != nil {
		t.Fatalf("protojson.Unmarshal error: %v", err)
	}
	wire, err := Encode(src)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	rendered, err := protojson.Marshal(decoded)
	if err != nil {
		t.Fatalf("protojson.Marshal error: %v", err)
	}
	if !strings.Contains(string(rendered), "example-1") {
		t.Errorf("rendered JSON missing id field: %s", rendered)
	}
}

func TestDecodeInvalidWireData(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected an error decoding invalid wire bytes")
	}
}

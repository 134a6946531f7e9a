package tree

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"

	"phenolint/internal/phenopb"
)

// ParseProtobuf decodes data as a Protobuf-encoded Phenopacket, re-prints
// it to JSON via protojson, and runs the JSON path's span collector over
// that rendering. Protobuf binary carries no source byte offsets of its
// own, so every span recorded for a Protobuf input actually points into
// this generated JSON text, not into the bytes the caller passed in.
func ParseProtobuf(data []byte) (Value, SpanMap, error) {
	msg, err := phenopb.Decode(data)
	if err != nil {
		return Value{}, nil, fmt.Errorf("tree: protobuf: %w", err)
	}

	rendered, err := protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(msg)
	if err != nil {
		return Value{}, nil, fmt.Errorf("tree: protobuf: rendering to json: %w", err)
	}

	v, spans, err := ParseJSON(rendered)
	if err != nil {
		return Value{}, nil, fmt.Errorf("tree: protobuf: re-parsing rendered json: %w", err)
	}
	return v, spans, nil
}

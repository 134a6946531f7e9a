package tree

import (
	"errors"
	"fmt"
)

// Encoding identifies which of the three accepted surface encodings an
// input decoded as.
type Encoding int

const (
	Json Encoding = iota
	Yaml
	Protobuf
)

func (e Encoding) String() string {
	switch e {
	case Json:
		return "json"
	case Yaml:
		return "yaml"
	case Protobuf:
		return "protobuf"
	default:
		return "unknown"
	}
}

// ErrUnparseable is returned when no encoding successfully decodes the
// input.
var ErrUnparseable = errors.New("tree: input did not decode as JSON, YAML, or Protobuf")

// Parse decodes bytes, trying JSON, then YAML, then Protobuf (first
// success wins — decoding into the canonical tree and deriving spans must
// both succeed for an attempt to count). Protobuf has no native source
// offsets, so its path re-prints the decoded message to JSON and reuses
// the JSON path's span collection over that rendering; the returned
// Encoding stays Protobuf so callers know how to re-serialize.
func Parse(data []byte) (Value, SpanMap, Encoding, error) {
	if v, spans, err := ParseJSON(data); err == nil {
		return v, spans, Json, nil
	}
	if v, spans, err := ParseYAML(data); err == nil {
		return v, spans, Yaml, nil
	}
	if v, spans, err := ParseProtobuf(data); err == nil {
		return v, spans, Protobuf, nil
	}
	return Value{}, nil, 0, ErrUnparseable
}

// ParseText decodes a text string, trying JSON then YAML only — Protobuf
// is a binary wire format and is never attempted against text input.
func ParseText(text string) (Value, SpanMap, Encoding, error) {
	data := []byte(text)
	if v, spans, err := ParseJSON(data); err == nil {
		return v, spans, Json, nil
	}
	if v, spans, err := ParseYAML(data); err == nil {
		return v, spans, Yaml, nil
	}
	return Value{}, nil, 0, ErrUnparseable
}

// ToString renders data as text if it decodes as JSON or YAML, reporting
// which encoding matched. Protobuf input has no natural text form here and
// is not attempted.
func ToString(data []byte) (string, Encoding, error) {
	if _, _, err := ParseJSON(data); err == nil {
		return string(data), Json, nil
	}
	if _, _, err := ParseYAML(data); err == nil {
		return string(data), Yaml, nil
	}
	return "", 0, fmt.Errorf("tree: to_string: %w", ErrUnparseable)
}

// Serialize re-encodes v in the given encoding, for re-serializing a
// patched tree back to its input's original surface form. For Protobuf,
// this only produces the intermediate pretty-JSON rendering; internal/patch
// carries the result the rest of the way into protobuf binary via
// internal/phenopb, since tree deliberately knows nothing about the
// Phenopacket message schema.
func Serialize(v Value, enc Encoding) ([]byte, error) {
	switch enc {
	case Json, Protobuf:
		return EmitJSON(v), nil
	case Yaml:
		return EmitYAML(v)
	default:
		return nil, fmt.Errorf("tree: serialize: unknown encoding %v", enc)
	}
}

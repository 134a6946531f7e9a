package patch

import (
	"google.golang.org/protobuf/encoding/protojson"

	"phenolint/internal/linterr"
	"phenolint/internal/phenopb"
	"phenolint/internal/report"
	"phenolint/internal/tree"
)

// Serialize re-encodes a patched tree into the original input's encoding
// family: Json/Yaml produce text; Protobuf goes through pretty JSON first
// and is then decoded/re-encoded as protobuf binary via internal/phenopb,
// since tree has no notion of the Phenopacket message schema.
func Serialize(v tree.Value, enc tree.Encoding) (report.PhenopacketData, error) {
	switch enc {
	case tree.Json:
		return report.TextData(tree.EmitJSON(v)), nil
	case tree.Yaml:
		out, err := tree.EmitYAML(v)
		if err != nil {
			return nil, linterr.Wrap(linterr.EncodeError, "emitting yaml", err)
		}
		return report.TextData(out), nil
	case tree.Protobuf:
		jsonBytes := tree.EmitJSON(v)
		msg := phenopb.NewPhenopacket()
		if err := protojson.Unmarshal(jsonBytes, msg); err != nil {
			return nil, linterr.Wrap(linterr.EncodeError, "decoding patched json as phenopacket", err)
		}
		data, err := phenopb.Encode(msg)
		if err != nil {
			return nil, linterr.Wrap(linterr.EncodeError, "encoding protobuf", err)
		}
		return report.BinaryData(data), nil
	default:
		return nil, linterr.New(linterr.EncodeError, "unknown encoding")
	}
}

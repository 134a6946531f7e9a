package tree

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmitJSON renders v as indented JSON, preserving Map insertion order.
func EmitJSON(v Value) []byte {
	var sb strings.Builder
	writeJSON(&sb, v, 0)
	return []byte(sb.String())
}

func writeJSON(sb *strings.Builder, v Value, indent int) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(formatNumber(v.Number))
	case KindString:
		sb.WriteString(quoteJSON(v.Str))
	case KindSeq:
		if len(v.Seq) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, item := range v.Seq {
			writeIndent(sb, indent+1)
			writeJSON(sb, item, indent+1)
			if i < len(v.Seq)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		writeIndent(sb, indent)
		sb.WriteString("]")
	case KindMap:
		if v.Map == nil || v.Map.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		keys := v.Map.Keys()
		for i, k := range keys {
			child, _ := v.Map.Get(k)
			writeIndent(sb, indent+1)
			sb.WriteString(quoteJSON(k))
			sb.WriteString(": ")
			writeJSON(sb, child, indent+1)
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		writeIndent(sb, indent)
		sb.WriteString("}")
	}
}

func writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func quoteJSON(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// EmitYAML renders v as YAML, preserving Map insertion order by building
// a yaml.Node tree (a plain map[string]any would sort or randomize keys).
func EmitYAML(v Value) ([]byte, error) {
	node := toYAMLNode(v)
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}

func toYAMLNode(v Value) *yaml.Node {
	switch v.Kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatNumber(v.Number)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case KindSeq:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Seq {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Map != nil {
			for _, k := range v.Map.Keys() {
				child, _ := v.Map.Get(k)
				n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k})
				n.Content = append(n.Content, toYAMLNode(child))
			}
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

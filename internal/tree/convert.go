package tree

// ToAny and FromAny convert between the canonical tree and the generic
// any/map[string]any/[]any shape encoding/json and the agentflare
// jsonpatch/jsonpointer libraries operate on. The patch engine's
// production path applies Add/Remove natively (internal/patch/patch.go)
// because map[string]any cannot preserve the Map's insertion-order
// invariant; ToAny/FromAny exist so the patch engine's tests can
// cross-check a native Apply against github.com/agentflare-ai/jsonpatch's
// independent implementation of the same RFC-6902 semantics.
func ToAny(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Str
	case KindSeq:
		out := make([]any, len(v.Seq))
		for i, item := range v.Seq {
			out[i] = ToAny(item)
		}
		return out
	case KindMap:
		out := make(map[string]any)
		if v.Map != nil {
			for _, k := range v.Map.Keys() {
				child, _ := v.Map.Get(k)
				out[k] = ToAny(child)
			}
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a generic decoded-JSON value (as produced by
// encoding/json.Unmarshal into `any`, or by the jsonpatch library) back
// into the canonical tree. Map key order is not preserved (Go map
// iteration order is undefined); this is acceptable for the
// cross-checking use described above, which compares structurally, not
// byte-for-byte.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case int:
		return Number(float64(val))
	case string:
		return String(val)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromAny(item)
		}
		return Seq(items...)
	case map[string]any:
		m := NewMap()
		for k, child := range val {
			m.Set(k, FromAny(child))
		}
		return MapValue(m)
	default:
		return Null()
	}
}

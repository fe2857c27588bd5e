package jsonval

import "encoding/json"

// Clone returns a copy of v sharing no mutable substructure with v.
// Values outside the plain JSON model round-trip through serialization,
// so anything unserializable becomes nil, matching the null that a
// JSON round trip would produce.
func Clone(v any) any {
	switch vv := v.(type) {
	case nil, bool, string, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		return v
	case []any:
		res := make([]any, len(vv))
		for i := range vv {
			res[i] = Clone(vv[i])
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(vv))
		for k, w := range vv {
			res[k] = Clone(w)
		}
		return res
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		return nil
	}
	return res
}

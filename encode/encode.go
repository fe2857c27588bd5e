package encode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// EncState carries the encoding configuration; it is manipulated via
// EncodeOption values.
type EncState struct {
	format Format
	wire   bool
	indent int
	Color  func(ValueKind, ColorAttr, string) string
}

// Encode writes v to w in the configured format. Values outside the
// plain document domain (operations, patches) are normalized through a
// JSON round trip first, so anything json-marshalable encodes.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		d, err := json.Marshal(v)
		if err != nil {
			return err
		}
		y, err := yaml.JSONToYAML(d)
		if err != nil {
			return fmt.Errorf("error converting to yaml: %w", err)
		}
		_, err = w.Write(y)
		return err
	}
	bw := bufio.NewWriter(w)
	if err := es.encodeJSON(bw, v, 0); err != nil {
		return err
	}
	if !es.wire {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (es *EncState) encodeJSON(w *bufio.Writer, v any, depth int) error {
	switch vv := v.(type) {
	case nil:
		w.WriteString(es.color(NullValue, ValueColor, "null"))
	case bool:
		w.WriteString(es.color(BoolValue, ValueColor, fmt.Sprintf("%t", vv)))
	case string:
		d, err := json.Marshal(vv)
		if err != nil {
			return err
		}
		w.WriteString(es.color(StringValue, ValueColor, string(d)))
	case json.Number:
		w.WriteString(es.color(NumberValue, ValueColor, vv.String()))
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		d, err := json.Marshal(vv)
		if err != nil {
			return err
		}
		w.WriteString(es.color(NumberValue, ValueColor, string(d)))
	case []any:
		return es.encodeArray(w, vv, depth)
	case map[string]any:
		return es.encodeObject(w, vv, depth)
	default:
		d, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var plain any
		if err := json.Unmarshal(d, &plain); err != nil {
			return err
		}
		return es.encodeJSON(w, plain, depth)
	}
	return nil
}

func (es *EncState) encodeArray(w *bufio.Writer, vv []any, depth int) error {
	if len(vv) == 0 {
		w.WriteString(es.color(ArrayValue, SepColor, "[]"))
		return nil
	}
	w.WriteString(es.color(ArrayValue, SepColor, "["))
	for i, e := range vv {
		if i > 0 {
			w.WriteString(es.color(ArrayValue, SepColor, ","))
		}
		es.newline(w, depth+1)
		if err := es.encodeJSON(w, e, depth+1); err != nil {
			return err
		}
	}
	es.newline(w, depth)
	w.WriteString(es.color(ArrayValue, SepColor, "]"))
	return nil
}

func (es *EncState) encodeObject(w *bufio.Writer, vv map[string]any, depth int) error {
	if len(vv) == 0 {
		w.WriteString(es.color(ObjectValue, SepColor, "{}"))
		return nil
	}
	w.WriteString(es.color(ObjectValue, SepColor, "{"))
	keys := make([]string, 0, len(vv))
	for k := range vv {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, k := range keys {
		if i > 0 {
			w.WriteString(es.color(ObjectValue, SepColor, ","))
		}
		es.newline(w, depth+1)
		kd, err := json.Marshal(k)
		if err != nil {
			return err
		}
		w.WriteString(es.color(ObjectValue, FieldColor, string(kd)))
		w.WriteString(es.color(ObjectValue, SepColor, ":"))
		if !es.wire {
			w.WriteByte(' ')
		}
		if err := es.encodeJSON(w, vv[k], depth+1); err != nil {
			return err
		}
	}
	es.newline(w, depth)
	w.WriteString(es.color(ObjectValue, SepColor, "}"))
	return nil
}

func (es *EncState) newline(w *bufio.Writer, depth int) {
	if es.wire {
		return
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) color(k ValueKind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

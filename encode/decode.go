package encode

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/signadot/jsonpatch"
)

// Document decodes data in the given format into a plain document
// value (nil, bool, float64, string, []any, map[string]any).
func Document(data []byte, f Format) (any, error) {
	if f.IsYAML() {
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("error converting yaml: %w", err)
		}
		data = j
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// PatchOf decodes data in the given format into an operation sequence.
// A non-array top level maps to ErrSequenceNotArray, a non-array args
// member to ErrArgsNotArray.
func PatchOf(data []byte, f Format) (jsonpatch.Patch, error) {
	if f.IsYAML() {
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("error converting yaml: %w", err)
		}
		data = j
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return nil, fmt.Errorf("%w: got %s", jsonpatch.ErrSequenceNotArray, te.Value)
		}
		return nil, err
	}
	patch := make(jsonpatch.Patch, 0, len(raw))
	for i, d := range raw {
		op := &jsonpatch.Operation{}
		if err := json.Unmarshal(d, op); err != nil {
			var te *json.UnmarshalTypeError
			if errors.As(err, &te) {
				if te.Field == "args" {
					return nil, fmt.Errorf("operation %d: %w", i, jsonpatch.ErrArgsNotArray)
				}
				if te.Field == "" {
					return nil, fmt.Errorf("operation %d: %w", i, jsonpatch.ErrOperationNotObject)
				}
			}
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		patch = append(patch, op)
	}
	return patch, nil
}

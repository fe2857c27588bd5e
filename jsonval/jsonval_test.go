package jsonval

import (
	"encoding/json"
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b any
		want bool
	}{
		{"nils", nil, nil, true},
		{"nil-vs-zero", nil, 0.0, false},
		{"bools", true, true, true},
		{"bool-mismatch", true, false, false},
		{"strings", "a", "a", true},
		{"string-vs-number", "1", 1.0, false},
		{"float-int", 1.0, 1, true},
		{"number-types", int64(3), uint8(3), true},
		{"json-number", json.Number("2.5"), 2.5, true},
		{"nan", math.NaN(), math.NaN(), true},
		{"lists", []any{1.0, "a"}, []any{1.0, "a"}, true},
		{"list-order", []any{1.0, 2.0}, []any{2.0, 1.0}, false},
		{"list-length", []any{1.0}, []any{1.0, 2.0}, false},
		{
			"maps-unordered",
			map[string]any{"a": 1.0, "b": 2.0},
			map[string]any{"b": 2.0, "a": 1.0},
			true,
		},
		{
			"map-extra-key",
			map[string]any{"a": 1.0},
			map[string]any{"a": 1.0, "b": 2.0},
			false,
		},
		{
			"nested",
			map[string]any{"a": []any{map[string]any{"b": nil}}},
			map[string]any{"a": []any{map[string]any{"b": nil}}},
			true,
		},
		{"map-vs-list", map[string]any{}, []any{}, false},
	} {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: got %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := map[string]any{
		"a": []any{1.0, map[string]any{"b": "x"}},
	}
	cp, ok := Clone(orig).(map[string]any)
	if !ok {
		t.Fatalf("got %T", Clone(orig))
	}
	if !Equal(orig, cp) {
		t.Fatalf("clone differs: %v vs %v", orig, cp)
	}
	cp["a"].([]any)[1].(map[string]any)["b"] = "y"
	if orig["a"].([]any)[1].(map[string]any)["b"] != "x" {
		t.Error("clone shares substructure with original")
	}
}

func TestCloneUnserializable(t *testing.T) {
	if v := Clone(func() {}); v != nil {
		t.Errorf("got %v, want nil", v)
	}
	if v := Clone(make(chan int)); v != nil {
		t.Errorf("got %v, want nil", v)
	}
}

func TestCloneScalars(t *testing.T) {
	for _, v := range []any{nil, true, "s", 1.5, json.Number("7")} {
		if got := Clone(v); got != v {
			t.Errorf("got %v, want %v", got, v)
		}
	}
}

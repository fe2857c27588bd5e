package pointer

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Pointer
		err  bool
	}{
		{"", nil, false},
		{"/", Pointer{""}, false},
		{"/a/b", Pointer{"a", "b"}, false},
		{"/a~1b/c~0d", Pointer{"a/b", "c~d"}, false},
		{"/0/-", Pointer{"0", "-"}, false},
		{"a/b", nil, true},
	} {
		got, err := Parse(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("%q: got %v, want ErrInvalid", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
				break
			}
		}
	}
}

func TestString(t *testing.T) {
	for _, in := range []string{"", "/a/b", "/a~1b/c~0d", "/0/-", "/"} {
		p, err := Parse(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got := p.String(); got != in {
			t.Errorf("got %q, want %q", got, in)
		}
	}
}

func TestUnescapeOrder(t *testing.T) {
	// ~1 then ~0: "~01" must decode to "~1", not "/"
	if got := Unescape("~01"); got != "~1" {
		t.Errorf("got %q, want %q", got, "~1")
	}
}

func TestIsIndex(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"10", true},
		{"01", false},
		{"00", false},
		{"-1", false},
		{"+1", false},
		{"1e3", false},
		{"", false},
		{"-", false},
		{"--", false},
		{"a", false},
	} {
		if got := IsIndex(tc.in); got != tc.want {
			t.Errorf("%q: got %t, want %t", tc.in, got, tc.want)
		}
	}
}

func TestForbiddenKey(t *testing.T) {
	for _, tc := range []struct {
		prev, key string
		want      bool
	}{
		{"", "__proto__", true},
		{"x", "__proto__", true},
		{"constructor", "prototype", true},
		{"x", "prototype", false},
		{"", "constructor", false},
		{"", "a", false},
	} {
		if got := ForbiddenKey(tc.prev, tc.key); got != tc.want {
			t.Errorf("(%q, %q): got %t, want %t", tc.prev, tc.key, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	doc := map[string]any{
		"a": []any{1.0, map[string]any{"b": "x"}},
		"":  "empty",
	}
	for _, tc := range []struct {
		path  string
		want  any
		found bool
	}{
		{"", doc, true},
		{"/a/0", 1.0, true},
		{"/a/1/b", "x", true},
		{"/", "empty", true},
		{"/a/2", nil, false},
		{"/a/-", nil, false},
		{"/a/01", nil, false},
		{"/missing", nil, false},
		{"/a/0/b", nil, false},
	} {
		p, err := Parse(tc.path)
		if err != nil {
			t.Fatalf("%q: %v", tc.path, err)
		}
		v, found, err := Resolve(doc, p)
		if err != nil {
			t.Fatalf("%q: %v", tc.path, err)
		}
		if found != tc.found {
			t.Errorf("%q: found %t, want %t", tc.path, found, tc.found)
			continue
		}
		if found && tc.path != "" && v != tc.want {
			t.Errorf("%q: got %v, want %v", tc.path, v, tc.want)
		}
	}
}

func TestResolveForbidden(t *testing.T) {
	doc := map[string]any{"__proto__": 1.0}
	p, err := Parse("/__proto__")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Resolve(doc, p); !errors.Is(err, ErrForbiddenKey) {
		t.Errorf("got %v, want ErrForbiddenKey", err)
	}
	if v, ok := ResolveUnchecked(doc, p); !ok || v != 1.0 {
		t.Errorf("got %v, %t", v, ok)
	}
}

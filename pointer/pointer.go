// Package pointer implements RFC 6901 JSON Pointers over plain Go JSON
// values, with the component escaping, strict array index recognition,
// and key guards the patch dispatcher builds on.
package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Append addresses the position one past the end of an array.
	Append = "-"
	// Last addresses the last existing element of an array. It is
	// only meaningful to extended operations.
	Last = "--"
)

var (
	ErrInvalid = errors.New("invalid pointer")
	// ErrForbiddenKey rejects components that would rewrite object
	// prototypes when the document is later handed to a JavaScript
	// host. It is deliberately not a patch domain error.
	ErrForbiddenKey = errors.New("forbidden pointer component")
)

// Pointer is a parsed pointer: a sequence of unescaped components.
// The empty Pointer addresses the document root.
type Pointer []string

// Parse splits a slash-delimited pointer string into unescaped
// components. The empty string parses to the root pointer.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q does not begin with '/'", ErrInvalid, s)
	}
	parts := strings.Split(s[1:], "/")
	res := make(Pointer, len(parts))
	for i, p := range parts {
		res[i] = Unescape(p)
	}
	return res, nil
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range p {
		sb.WriteByte('/')
		sb.WriteString(Escape(c))
	}
	return sb.String()
}

// Escape encodes a single component: '~' becomes "~0", '/' becomes "~1".
func Escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Unescape decodes a single component: "~1" becomes '/', then "~0"
// becomes '~'.
func Unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// IsIndex reports whether s is a base-10 array index literal: digits
// only, no sign, no leading zeros.
func IsIndex(s string) bool {
	if s == "" {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ForbiddenKey reports whether key may not be traversed: "__proto__"
// anywhere, or "prototype" immediately after a "constructor" component.
func ForbiddenKey(prev, key string) bool {
	return key == "__proto__" || (key == "prototype" && prev == "constructor")
}

// Resolve walks doc along p and returns the addressed value. The found
// flag is false when any component fails to resolve; the error is
// non-nil only for a forbidden component. The sentinels Append and
// Last address positions, not values, and do not resolve.
func Resolve(doc any, p Pointer) (any, bool, error) {
	return resolve(doc, p, true)
}

// ResolveUnchecked is Resolve without the forbidden-key guard.
func ResolveUnchecked(doc any, p Pointer) (any, bool) {
	v, ok, _ := resolve(doc, p, false)
	return v, ok
}

func resolve(doc any, p Pointer, guard bool) (any, bool, error) {
	cur := doc
	prev := ""
	for _, key := range p {
		if guard && ForbiddenKey(prev, key) {
			return nil, false, fmt.Errorf("%w: %q", ErrForbiddenKey, key)
		}
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[key]
			if !ok {
				return nil, false, nil
			}
			cur = v
		case []any:
			if !IsIndex(key) {
				return nil, false, nil
			}
			i, _ := strconv.Atoi(key)
			if i >= len(c) {
				return nil, false, nil
			}
			cur = c[i]
		default:
			return nil, false, nil
		}
		prev = key
	}
	return cur, true, nil
}

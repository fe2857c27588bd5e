package jsonpatch

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/jsonpatch/pointer"
)

// frame records one traversal step so container replacements (slices
// change identity when they grow or shrink) can be written back toward
// the root.
type frame struct {
	container any
	key       string // decimal index for array containers
}

// writeBack threads an updated container up through the recorded
// trail, returning the (possibly replaced) document root.
func writeBack(root any, trail []frame, updated any) any {
	for j := len(trail) - 1; j >= 0; j-- {
		f := trail[j]
		switch c := f.container.(type) {
		case map[string]any:
			c[f.key] = updated
		case []any:
			i, _ := strconv.Atoi(f.key)
			c[i] = updated
		}
		updated = f.container
	}
	return updated
}

// member reads key from a container. Array sentinels do not resolve.
func member(c any, key string) (any, bool) {
	switch cc := c.(type) {
	case map[string]any:
		v, ok := cc[key]
		return v, ok
	case []any:
		if !pointer.IsIndex(key) {
			return nil, false
		}
		i, _ := strconv.Atoi(key)
		if i >= len(cc) {
			return nil, false
		}
		return cc[i], true
	}
	return nil, false
}

// attach sets key to v within a container, returning the updated
// container. For arrays, an index equal to the length or the Append
// sentinel appends; Last overwrites the final element.
func attach(c any, key string, v any) (any, error) {
	switch cc := c.(type) {
	case map[string]any:
		cc[key] = v
		return cc, nil
	case []any:
		switch {
		case key == pointer.Append:
			return append(cc, v), nil
		case key == pointer.Last:
			if len(cc) == 0 {
				return nil, fmt.Errorf("%w: %q on empty array", ErrOutOfBounds, key)
			}
			cc[len(cc)-1] = v
			return cc, nil
		case !pointer.IsIndex(key):
			return nil, fmt.Errorf("%w: %q", ErrIllegalArrayIndex, key)
		}
		i, _ := strconv.Atoi(key)
		if i > len(cc) {
			return nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, len(cc))
		}
		if i == len(cc) {
			return append(cc, v), nil
		}
		cc[i] = v
		return cc, nil
	}
	return nil, fmt.Errorf("%w: cannot attach to %T", ErrPathUnresolvable, c)
}

// detach removes key from a container, returning the updated container
// and the removed value. A missing object key detaches to a no-op.
func detach(c any, key string) (any, any, error) {
	switch cc := c.(type) {
	case map[string]any:
		v := cc[key]
		delete(cc, key)
		return cc, v, nil
	case []any:
		i := 0
		switch {
		case key == pointer.Append || key == pointer.Last:
			i = len(cc) - 1
		case pointer.IsIndex(key):
			i, _ = strconv.Atoi(key)
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrIllegalArrayIndex, key)
		}
		if i < 0 || i >= len(cc) {
			return nil, nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, len(cc))
		}
		v := cc[i]
		return slices.Delete(cc, i, i+1), v, nil
	}
	return nil, nil, fmt.Errorf("%w: cannot detach from %T", ErrPathUnresolvable, c)
}

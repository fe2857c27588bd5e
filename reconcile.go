package jsonpatch

import (
	"strconv"

	"github.com/signadot/jsonpatch/debug"
	"github.com/signadot/jsonpatch/pointer"
)

type modType int

const (
	graftMod modType = iota
	pruneMod
)

// reconcile splices the effect of an extended operation back into the
// live document. Handlers run against a clone (source), never the
// target, so the clone's state at the operation path must be grafted
// into (or pruned from) the target. The walk proceeds in lock-step
// until either a branch exists in the source but not the target (the
// natural graft point) or the parent of the mutated leaf, where a
// single-key graft or prune preserves sibling structure. Returns the
// possibly replaced target root.
func reconcile(source, target any, mod modType, keys []string) any {
	if debug.Reconcile() {
		debug.Logf("reconcile %d at %v\n", mod, keys)
	}
	if len(keys) == 0 {
		return source
	}
	var (
		root  = target
		trail []frame
		src   = source
		tgt   = target
	)
	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		sc, _, sok := reconMember(src, k)
		tc, nk, tok := reconMember(tgt, k)
		if !tok {
			if !sok {
				return root
			}
			nc, err := attach(tgt, k, sc)
			if err != nil {
				return root
			}
			return writeBack(root, trail, nc)
		}
		trail = append(trail, frame{tgt, nk})
		tgt = tc
		src = sc
	}
	last := keys[len(keys)-1]
	if mod == pruneMod {
		nc, _, err := detach(tgt, last)
		if err != nil {
			return root
		}
		return writeBack(root, trail, nc)
	}
	sc, _, sok := reconMember(src, last)
	if !sok {
		return root
	}
	nc, err := attach(tgt, last, sc)
	if err != nil {
		return root
	}
	return writeBack(root, trail, nc)
}

// reconMember is member with the array sentinels interpreted as the
// last existing element, the reading the reconciler needs when the
// operation path addressed an appended node.
func reconMember(c any, key string) (any, string, bool) {
	switch cc := c.(type) {
	case map[string]any:
		v, ok := cc[key]
		return v, key, ok
	case []any:
		i := 0
		switch {
		case key == pointer.Append || key == pointer.Last:
			i = len(cc) - 1
		case pointer.IsIndex(key):
			i, _ = strconv.Atoi(key)
		default:
			return nil, key, false
		}
		if i < 0 || i >= len(cc) {
			return nil, key, false
		}
		return cc[i], strconv.Itoa(i), true
	}
	return nil, key, false
}

package jsonpatch

import (
	"fmt"
	"strconv"

	"github.com/signadot/jsonpatch/debug"
	"github.com/signadot/jsonpatch/jsonval"
	"github.com/signadot/jsonpatch/pointer"
	"github.com/signadot/jsonpatch/xop"
)

// applyExtended dispatches an extended operation. The registered
// handler runs against a deep clone of the working document, so the
// only channel back into the document is the handler's Result (or its
// in-place mutation of the clone); the reconciler then splices that
// state back at the operation path. A nil Result leaves the document
// untouched.
func applyExtended(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	xcfg := cfg.Registry.Lookup(op.XID)
	if xcfg == nil {
		return nil, newPatchError(ErrXOpUnregistered, op.XID, index, op, document)
	}
	if debug.XOp() {
		debug.Logf("xop %s at %q (index %d)\n", op.XID, op.Path, index)
	}
	if op.Path == "" {
		return applyExtendedRoot(document, op, xcfg, index)
	}
	keys, err := pointer.Parse(op.Path)
	if err != nil {
		return nil, newPatchError(ErrPathInvalid, err.Error(), index, op, document)
	}
	work := jsonval.Clone(document)
	var (
		obj         = work
		trail       []frame
		synthesized bool
		prev        string
	)
	for t := 0; t < len(keys)-1; t++ {
		key := keys[t]
		if cfg.BanProtoMods && pointer.ForbiddenKey(prev, key) {
			return nil, fmt.Errorf("%w: %q in %q", pointer.ErrForbiddenKey, key, op.Path)
		}
		child, ok := member(obj, key)
		if !ok {
			if !op.Resolve {
				return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
			}
			var fresh any
			if pointer.IsIndex(keys[t+1]) && isArray(document) {
				fresh = []any{}
			} else {
				fresh = map[string]any{}
			}
			normKey, err := normalizeKey(obj, key)
			if err != nil {
				return nil, newPatchError(err, key, index, op, document)
			}
			nc, aerr := attach(obj, key, fresh)
			if aerr != nil {
				return nil, newPatchError(ErrPathUnresolvable, aerr.Error(), index, op, document)
			}
			work = writeBack(work, trail, nc)
			trail = append(trail, frame{nc, normKey})
			obj = fresh
			synthesized = true
			prev = key
			continue
		}
		normKey, err := normalizeKey(obj, key)
		if err != nil {
			return nil, newPatchError(err, key, index, op, document)
		}
		trail = append(trail, frame{obj, normKey})
		obj = child
		prev = key
	}
	lastKey := keys[len(keys)-1]
	if cfg.BanProtoMods && pointer.ForbiddenKey(prev, lastKey) {
		return nil, fmt.Errorf("%w: %q in %q", pointer.ErrForbiddenKey, lastKey, op.Path)
	}
	var (
		h          xop.Handler
		installKey string
		call       = &xop.Call{
			XID:      op.XID,
			Args:     op.Args,
			Resolve:  op.Resolve,
			Path:     keys,
			Document: work,
		}
	)
	switch c := obj.(type) {
	case []any:
		idx := 0
		switch {
		case lastKey == pointer.Append:
			idx = len(c)
		case lastKey == pointer.Last:
			if len(c) == 0 {
				return nil, newPatchError(ErrOutOfBounds, "-- on empty array", index, op, document)
			}
			idx = len(c) - 1
		case !pointer.IsIndex(lastKey):
			return nil, newPatchError(ErrIllegalArrayIndex, fmt.Sprintf("%q", lastKey), index, op, document)
		default:
			idx, _ = strconv.Atoi(lastKey)
			if idx > len(c) {
				return nil, newPatchError(ErrOutOfBounds,
					fmt.Sprintf("index %d, length %d", idx, len(c)), index, op, document)
			}
		}
		h = xcfg.Arr
		call.Key = idx
		call.Container = c
		installKey = strconv.Itoa(idx)
	case map[string]any:
		h = xcfg.Obj
		call.Key = lastKey
		call.Container = c
		installKey = lastKey
	default:
		return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
	}
	res, err := h(call)
	if err != nil {
		// handler failures propagate as raised
		return nil, err
	}
	if res == nil {
		return &OperationResult{Document: document, Index: index}, nil
	}
	if res.Pruned && synthesized {
		return nil, newPatchError(ErrAmbiguousRemoval, op.XID, index, op, document)
	}
	switch {
	case res.Pruned:
		nc, _, derr := detach(obj, installKey)
		if derr != nil {
			return nil, newPatchError(ErrPathUnresolvable, derr.Error(), index, op, document)
		}
		work = writeBack(work, trail, nc)
	case res.Value != nil:
		nc, aerr := attach(obj, installKey, denull(res.Value))
		if aerr != nil {
			return nil, newPatchError(ErrPathUnresolvable, aerr.Error(), index, op, document)
		}
		work = writeBack(work, trail, nc)
	default:
		// in-place convention: the handler mutated the clone and the
		// reconciler grafts from it as-is
	}
	mod := graftMod
	if res.Pruned {
		mod = pruneMod
	}
	doc := reconcile(work, document, mod, keys)
	out := &OperationResult{Document: doc, Index: index}
	if res.Pruned {
		out.Removed = res.Removed
	}
	return out, nil
}

// applyExtendedRoot runs a root-path extended operation with the
// object-handler semantics and short-circuits the reconciler.
func applyExtendedRoot(document any, op *Operation, xcfg *xop.Config, index int) (*OperationResult, error) {
	clone := jsonval.Clone(document)
	call := &xop.Call{
		XID:       op.XID,
		Args:      op.Args,
		Resolve:   op.Resolve,
		Key:       "",
		Document:  clone,
		Container: clone,
	}
	res, err := xcfg.Obj(call)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &OperationResult{Document: document, Index: index}, nil
	}
	out := &OperationResult{Index: index}
	switch {
	case res.Pruned:
		out.Document = nil
		out.Removed = res.Removed
	case res.Value != nil:
		out.Document = denull(res.Value)
	default:
		out.Document = clone
	}
	return out, nil
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func denull(v any) any {
	if xop.IsNull(v) {
		return nil
	}
	return v
}

// normalizeKey maps a traversal key to the decimal index writeBack
// needs for array containers; object keys pass through.
func normalizeKey(c any, key string) (string, error) {
	arr, ok := c.([]any)
	if !ok {
		return key, nil
	}
	switch {
	case key == pointer.Append:
		return strconv.Itoa(len(arr)), nil
	case key == pointer.Last:
		if len(arr) == 0 {
			return "", ErrOutOfBounds
		}
		return strconv.Itoa(len(arr) - 1), nil
	case pointer.IsIndex(key):
		return key, nil
	}
	return "", ErrIllegalArrayIndex
}

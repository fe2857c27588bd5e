package jsonpatch

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/jsonpatch/debug"
	"github.com/signadot/jsonpatch/jsonval"
	"github.com/signadot/jsonpatch/pointer"
)

// OperationResult is the outcome of one applied operation.
type OperationResult struct {
	// Document is the possibly replaced document after the operation.
	Document any
	// Removed reports the prior value for remove, replace, and move.
	Removed any
	// Test reports the comparison outcome of a test operation.
	Test *bool
	// Index is the operation's position within its sequence.
	Index int

	// value captured by the internal get operation
	got any
}

// PatchResult is the outcome of an applied sequence.
type PatchResult struct {
	Results  []*OperationResult
	Document any
}

// ApplyOperation applies a single operation to document. By default
// the document is mutated in place and prototype modifications are
// banned; see the Opt functions.
func ApplyOperation(document any, op *Operation, opts ...Opt) (*OperationResult, error) {
	cfg := newConfig(opts)
	return applyOperation(document, op, cfg, cfg.Index)
}

// ApplyPatch applies an operation sequence in order. Each operation
// sees the document as left by its predecessor, including root
// replacement. There is no rollback: when operation i fails, the
// effects of operations 0..i-1 are already committed to the working
// document. Callers needing atomicity pre-validate with
// ValidateSequence.
func ApplyPatch(document any, patch Patch, opts ...Opt) (*PatchResult, error) {
	cfg := newConfig(opts)
	if cfg.Validate && patch == nil {
		return nil, newPatchError(ErrSequenceNotArray, "", 0, nil, document)
	}
	if !cfg.Mutate {
		document = jsonval.Clone(document)
	}
	inner := *cfg
	inner.Mutate = true
	results := make([]*OperationResult, 0, len(patch))
	for i, op := range patch {
		res, err := applyOperation(document, op, &inner, i)
		if err != nil {
			return nil, err
		}
		document = res.Document
		results = append(results, res)
	}
	return &PatchResult{Results: results, Document: document}, nil
}

// Reduce applies one operation and returns the resulting document,
// shaped for use as a fold function over a sequence.
func Reduce(document any, op *Operation, index int) (any, error) {
	res, err := ApplyOperation(document, op, WithIndex(index))
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// GetValueByPointer reads the value at a pointer by dispatching the
// internal get operation, so the prototype guard applies. A missing
// terminal key reads as nil; a missing intermediate node is an error.
func GetValueByPointer(document any, path string) (any, error) {
	if path == "" {
		return document, nil
	}
	res, err := ApplyOperation(document, &Operation{Op: Get, Path: path})
	if err != nil {
		return nil, err
	}
	return res.got, nil
}

func applyOperation(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	if op == nil {
		return nil, newPatchError(ErrOperationNotObject, "", index, op, document)
	}
	if debug.Apply() {
		debug.Logf("apply %s at %q (index %d)\n", op.Op, op.Path, index)
	}
	if cfg.Validate {
		var err error
		if cfg.Validator != nil {
			err = cfg.Validator(op, index, document, op.Path)
		} else {
			err = validateOperation(op, index, nil, "", false, cfg.Registry)
		}
		if err != nil {
			return nil, err
		}
	}
	if op.Op == Extended {
		if !cfg.Mutate {
			document = jsonval.Clone(document)
		}
		return applyExtended(document, op, cfg, index)
	}
	if op.Path == "" {
		return applyRoot(document, op, cfg, index)
	}
	return applyNested(document, op, cfg, index)
}

func applyRoot(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	res := &OperationResult{Document: document, Index: index}
	switch op.Op {
	case Add:
		res.Document = op.Value
	case Replace:
		res.Document = op.Value
		res.Removed = document
	case Move, Copy:
		if op.From == nil {
			return nil, newPatchError(ErrFromRequired, "", index, op, document)
		}
		v, err := getByPointer(document, *op.From, cfg, index)
		if err != nil {
			return nil, err
		}
		res.Document = v
		if op.Op == Move {
			res.Removed = document
		}
	case Test:
		ok := jsonval.Equal(document, op.Value)
		res.Test = &ok
		if !ok {
			return nil, testFailed(op, index, document, document)
		}
	case Remove:
		res.Removed = document
		res.Document = nil
	case Get:
		res.got = document
	default:
		if cfg.Validate {
			return nil, newPatchError(ErrOpInvalid, string(op.Op), index, op, document)
		}
	}
	return res, nil
}

func applyNested(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	if !cfg.Mutate {
		document = jsonval.Clone(document)
	}
	keys, err := pointer.Parse(op.Path)
	if err != nil {
		return nil, newPatchError(ErrPathInvalid, err.Error(), index, op, document)
	}
	var (
		obj             = document
		trail           []frame
		existingChecked bool
		prev            string
	)
	for t := 0; t < len(keys); t++ {
		key := keys[t]
		if cfg.BanProtoMods && pointer.ForbiddenKey(prev, key) {
			return nil, fmt.Errorf("%w: %q in %q", pointer.ErrForbiddenKey, key, op.Path)
		}
		last := t == len(keys)-1
		if cfg.Validate && !existingChecked {
			fragment, have := "", false
			if _, ok := member(obj, key); !ok {
				fragment, have = pointer.Pointer(keys[:t]).String(), true
			} else if last {
				fragment, have = op.Path, true
			}
			if have {
				existingChecked = true
				if err := inlineValidate(cfg, op, index, document, fragment); err != nil {
					return nil, err
				}
			}
		}
		switch c := obj.(type) {
		case []any:
			idx := 0
			switch {
			case key == pointer.Append && last:
				idx = len(c)
			case !pointer.IsIndex(key):
				return nil, newPatchError(ErrIllegalArrayIndex, fmt.Sprintf("%q", key), index, op, document)
			default:
				idx, _ = strconv.Atoi(key)
			}
			if last {
				return applyToArray(c, idx, op, document, cfg, index, trail)
			}
			if idx >= len(c) {
				return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
			}
			trail = append(trail, frame{c, strconv.Itoa(idx)})
			obj = c[idx]
		case map[string]any:
			if last {
				return applyToObject(c, key, op, document, cfg, index)
			}
			child, ok := c[key]
			if !ok {
				return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
			}
			trail = append(trail, frame{c, key})
			obj = child
		default:
			return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
		}
		prev = key
	}
	return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
}

func applyToObject(c map[string]any, key string, op *Operation, document any, cfg *Config, index int) (*OperationResult, error) {
	res := &OperationResult{Document: document, Index: index}
	switch op.Op {
	case Add:
		c[key] = op.Value
	case Replace:
		res.Removed = c[key]
		c[key] = op.Value
	case Remove:
		res.Removed = c[key]
		delete(c, key)
	case Test:
		v, exists := c[key]
		ok := exists && jsonval.Equal(v, op.Value)
		res.Test = &ok
		if !ok {
			return nil, testFailed(op, index, document, v)
		}
	case Move:
		return applyMoveDoc(document, op, cfg, index)
	case Copy:
		return applyCopyDoc(document, op, cfg, index)
	case Get:
		res.got = c[key]
	default:
		if cfg.Validate {
			return nil, newPatchError(ErrOpInvalid, string(op.Op), index, op, document)
		}
	}
	return res, nil
}

func applyToArray(c []any, idx int, op *Operation, document any, cfg *Config, index int, trail []frame) (*OperationResult, error) {
	res := &OperationResult{Document: document, Index: index}
	switch op.Op {
	case Add:
		if idx > len(c) {
			if cfg.Validate {
				return nil, newPatchError(ErrOutOfBounds,
					fmt.Sprintf("index %d, length %d", idx, len(c)), index, op, document)
			}
			idx = len(c)
		}
		res.Document = writeBack(document, trail, slices.Insert(c, idx, op.Value))
	case Remove:
		if idx >= len(c) {
			return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
		}
		res.Removed = c[idx]
		res.Document = writeBack(document, trail, slices.Delete(c, idx, idx+1))
	case Replace:
		if idx >= len(c) {
			return nil, newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
		}
		res.Removed = c[idx]
		c[idx] = op.Value
	case Test:
		var v any
		exists := idx < len(c)
		if exists {
			v = c[idx]
		}
		ok := exists && jsonval.Equal(v, op.Value)
		res.Test = &ok
		if !ok {
			return nil, testFailed(op, index, document, v)
		}
	case Move:
		return applyMoveDoc(document, op, cfg, index)
	case Copy:
		return applyCopyDoc(document, op, cfg, index)
	case Get:
		if idx < len(c) {
			res.got = c[idx]
		}
	default:
		if cfg.Validate {
			return nil, newPatchError(ErrOpInvalid, string(op.Op), index, op, document)
		}
	}
	return res, nil
}

// applyMoveDoc runs a move as remove-at-from then add-at-path against
// the whole document. The reported Removed is the destination's prior
// value, deep-cloned so it never aliases the document.
func applyMoveDoc(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	if op.From == nil {
		return nil, newPatchError(ErrFromRequired, "", index, op, document)
	}
	var removed any
	dptr, err := pointer.Parse(op.Path)
	if err != nil {
		return nil, newPatchError(ErrPathInvalid, err.Error(), index, op, document)
	}
	if v, found, err := resolveCfg(document, dptr, cfg); err != nil {
		return nil, err
	} else if found {
		removed = jsonval.Clone(v)
	}
	sub := cfg.inner()
	r1, err := applyOperation(document, NewRemove(*op.From), sub, index)
	if err != nil {
		return nil, err
	}
	addOp := &Operation{Op: Add, Path: op.Path, Value: r1.Removed, HasValue: true}
	r2, err := applyOperation(r1.Document, addOp, sub, index)
	if err != nil {
		return nil, err
	}
	return &OperationResult{Document: r2.Document, Removed: removed, Index: index}, nil
}

// applyCopyDoc adds a deep clone of the from value at path, so the
// destination never aliases the source.
func applyCopyDoc(document any, op *Operation, cfg *Config, index int) (*OperationResult, error) {
	if op.From == nil {
		return nil, newPatchError(ErrFromRequired, "", index, op, document)
	}
	v, err := getByPointer(document, *op.From, cfg, index)
	if err != nil {
		return nil, err
	}
	addOp := &Operation{Op: Add, Path: op.Path, Value: jsonval.Clone(v), HasValue: true}
	res, err := applyOperation(document, addOp, cfg.inner(), index)
	if err != nil {
		return nil, err
	}
	return &OperationResult{Document: res.Document, Index: index}, nil
}

// getByPointer reads through the dispatcher's internal get so the walk
// semantics and prototype guard match the operation being served.
func getByPointer(document any, path string, cfg *Config, index int) (any, error) {
	res, err := applyOperation(document, &Operation{Op: Get, Path: path}, cfg.inner(), index)
	if err != nil {
		return nil, err
	}
	return res.got, nil
}

func resolveCfg(document any, p pointer.Pointer, cfg *Config) (any, bool, error) {
	if cfg.BanProtoMods {
		return pointer.Resolve(document, p)
	}
	v, ok := pointer.ResolveUnchecked(document, p)
	return v, ok, nil
}

func inlineValidate(cfg *Config, op *Operation, index int, document any, fragment string) error {
	if cfg.Validator != nil {
		return cfg.Validator(op, index, document, fragment)
	}
	return validateOperation(op, index, document, fragment, true, cfg.Registry)
}

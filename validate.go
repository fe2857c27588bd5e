package jsonpatch

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/signadot/jsonpatch/debug"
	"github.com/signadot/jsonpatch/jsonval"
	"github.com/signadot/jsonpatch/pointer"
	"github.com/signadot/jsonpatch/xop"
)

// ValidateOperation checks the structural shape of a single operation:
// recognized op, well-formed path, required members present. Document
// aware checks need ValidateOperationWith.
func ValidateOperation(op *Operation, index int) error {
	return validateOperation(op, index, nil, "", false, xop.Default())
}

// ValidateOperationWith additionally runs the document-aware checks
// against document, where existingPathFragment is the longest prefix
// of the operation path that resolves in it.
func ValidateOperationWith(op *Operation, index int, document any, existingPathFragment string) error {
	return validateOperation(op, index, document, existingPathFragment, document != nil, xop.Default())
}

// ValidateSequence validates an operation sequence and returns the
// failure as a value; nil means the sequence is valid. With a document
// supplied, the whole sequence is dry-run against deep-cloned inputs
// through the dispatcher with validation enabled, so any failure the
// dispatcher would raise is caught uniformly. Domain failures satisfy
// errors.As with *PatchError.
func ValidateSequence(patch Patch, document any, validator ValidateFunc) error {
	if patch == nil {
		return newPatchError(ErrSequenceNotArray, "", 0, nil, document)
	}
	if debug.Validate() {
		debug.Logf("validate sequence of %d operations\n", len(patch))
	}
	if document != nil {
		opts := []Opt{WithValidation()}
		if validator != nil {
			opts = []Opt{WithValidator(validator)}
		}
		_, err := ApplyPatch(jsonval.Clone(document), clonePatch(patch), opts...)
		return err
	}
	for i, op := range patch {
		var err error
		if validator != nil {
			err = validator(op, i, nil, "")
		} else {
			err = ValidateOperation(op, i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// clonePatch copies the operations and deep-clones their values so a
// dry run cannot leak mutations into caller-owned operation payloads.
func clonePatch(patch Patch) Patch {
	res := make(Patch, len(patch))
	for i, op := range patch {
		if op == nil {
			continue
		}
		cp := *op
		if cp.HasValue {
			cp.Value = jsonval.Clone(cp.Value)
		}
		if cp.Args != nil {
			args, _ := jsonval.Clone(any(cp.Args)).([]any)
			cp.Args = args
		}
		res[i] = &cp
	}
	return res
}

func validateOperation(op *Operation, index int, document any, fragment string, docAware bool, reg *xop.Registry) error {
	if op == nil {
		return newPatchError(ErrOperationNotObject, "", index, op, document)
	}
	switch op.Op {
	case Add, Remove, Replace, Move, Copy, Test, Get:
	case Extended:
		return validateExtended(op, index, document, docAware, reg)
	default:
		return newPatchError(ErrOpInvalid, string(op.Op), index, op, document)
	}
	if err := validatePath(op, index, document); err != nil {
		return err
	}
	if (op.Op == Move || op.Op == Copy) && op.From == nil {
		return newPatchError(ErrFromRequired, "", index, op, document)
	}
	if op.Op == Add || op.Op == Replace || op.Op == Test {
		if !op.HasValue {
			return newPatchError(ErrValueRequired, "", index, op, document)
		}
		if containsUnserializable(op.Value) {
			return newPatchError(ErrValueUnserializable, "", index, op, document)
		}
	}
	if !docAware {
		return nil
	}
	switch op.Op {
	case Add:
		pathLen := len(strings.Split(op.Path, "/"))
		fragLen := len(strings.Split(fragment, "/"))
		if pathLen != fragLen+1 && pathLen != fragLen {
			return newPatchError(ErrPathCannotAdd, op.Path, index, op, document)
		}
	case Replace, Remove, Get:
		if op.Path != fragment {
			return newPatchError(ErrPathUnresolvable, op.Path, index, op, document)
		}
	case Move, Copy:
		_, err := ApplyPatch(document, Patch{{Op: Get, Path: *op.From}}, WithValidation())
		if err != nil && errors.Is(err, ErrPathUnresolvable) {
			return newPatchError(ErrFromUnresolvable, *op.From, index, op, document)
		}
	}
	return nil
}

func validateExtended(op *Operation, index int, document any, docAware bool, reg *xop.Registry) error {
	if !xop.ValidID(op.XID) {
		return newPatchError(ErrXIDInvalid, op.XID, index, op, document)
	}
	if err := validatePath(op, index, document); err != nil {
		return err
	}
	if op.Path == "/" {
		return newPatchError(ErrPathInvalid, "ambiguous path \"/\"", index, op, document)
	}
	cfg := reg.Lookup(op.XID)
	if cfg == nil {
		return newPatchError(ErrXOpUnregistered, op.XID, index, op, document)
	}
	if cfg.Arr == nil || cfg.Obj == nil {
		return newPatchError(ErrXConfigInvalid, op.XID, index, op, document)
	}
	if cfg.Validator == nil {
		return nil
	}
	keys, err := pointer.Parse(op.Path)
	if err != nil {
		return newPatchError(ErrPathInvalid, err.Error(), index, op, document)
	}
	call := &xop.Call{
		XID:     op.XID,
		Args:    op.Args,
		Resolve: op.Resolve,
		Path:    keys,
	}
	if docAware {
		call.Document = document
	}
	// domain validator failures propagate as the validator raised them
	return cfg.Validator(call, index)
}

func validatePath(op *Operation, index int, document any) error {
	if op.noPath || (op.Path != "" && op.Path[0] != '/') {
		return newPatchError(ErrPathInvalid, op.Path, index, op, document)
	}
	return nil
}

// containsUnserializable walks v for values that cannot survive a JSON
// round trip, the closest Go analogue of an undefined leaf.
func containsUnserializable(v any) bool {
	switch vv := v.(type) {
	case nil, bool, string, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		return false
	case []any:
		for i := range vv {
			if containsUnserializable(vv[i]) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, w := range vv {
			if containsUnserializable(w) {
				return true
			}
		}
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Uintptr:
		return true
	}
	_, err := json.Marshal(v)
	return err != nil
}

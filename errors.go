package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Sentinel errors for the patch domain. Every *PatchError wraps
// exactly one of these, so callers select on kinds with errors.Is.
var (
	ErrSequenceNotArray    = errors.New("patch sequence is not a list of operations")
	ErrOperationNotObject  = errors.New("operation is not an object")
	ErrOpInvalid           = errors.New("operation op is invalid")
	ErrXOpUnregistered     = errors.New("extended operation is not registered")
	ErrXIDInvalid          = errors.New("extended operation id is invalid")
	ErrXConfigInvalid      = errors.New("extended operation config is invalid")
	ErrArgsNotArray        = errors.New("extended operation args is not a list")
	ErrPathInvalid         = errors.New("operation path is invalid")
	ErrFromRequired        = errors.New("operation from is required")
	ErrValueRequired       = errors.New("operation value is required")
	ErrValueUnserializable = errors.New("operation value contains an unserializable value")
	ErrPathCannotAdd       = errors.New("cannot add to the desired path")
	ErrPathUnresolvable    = errors.New("path could not be resolved")
	ErrFromUnresolvable    = errors.New("from could not be resolved")
	ErrIllegalArrayIndex   = errors.New("illegal array index")
	ErrOutOfBounds         = errors.New("index is out of bounds")
	ErrAmbiguousRemoval    = errors.New("removal is ambiguous while resolving")
	ErrTestFailed          = errors.New("test operation failed")
)

// PatchError carries the failing operation, its sequence index, and a
// snapshot of the document at the time of failure.
type PatchError struct {
	Err      error
	Detail   string
	Index    int
	Op       *Operation
	Document any
}

func (e *PatchError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("operation %d: %s", e.Index, msg)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

func newPatchError(err error, detail string, index int, op *Operation, doc any) *PatchError {
	return &PatchError{Err: err, Detail: detail, Index: index, Op: op, Document: doc}
}

func testFailed(op *Operation, index int, doc, actual any) *PatchError {
	return newPatchError(ErrTestFailed, testDiff(actual, op.Value), index, op, doc)
}

// testDiff renders a compact character diff of the actual value against
// the expected one, both in canonical JSON.
func testDiff(actual, expected any) string {
	a, errA := json.Marshal(actual)
	b, errB := json.Marshal(expected)
	if errA != nil || errB != nil {
		return ""
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(string(a), string(b), false)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	var sb strings.Builder
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "]")
		case diffpatch.DiffInsert:
			sb.WriteString("[+" + d.Text + "]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

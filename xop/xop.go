// Package xop holds the registry of extended patch operations: user
// supplied operation kinds identified by an "x-" prefixed id, with
// separate handlers for array and object containers plus a validator.
package xop

import "strings"

// Call is the view of an extended operation a handler or validator
// receives. Document and Container are deep clones of the working
// document, so a handler may mutate them freely; the only channel back
// into the live document is the returned Result (or, for in-place
// handlers, the mutated clone itself).
type Call struct {
	XID     string
	Args    []any
	Resolve bool

	// Path holds the unescaped pointer components of the operation
	// path; nil for the document root.
	Path []string

	// Key addresses the target node within Container: a string for
	// object containers, an int for array containers. Empty for the
	// document root.
	Key any

	Document  any
	Container any
}

// Result communicates the effect of a handler. A nil *Result from a
// handler means the operation is a no-op and the document is left
// untouched.
type Result struct {
	// Value is the replacement subtree for the addressed node. A nil
	// Value means the handler mutated Container in place and the
	// mutated clone carries the new state. Use Null to graft an
	// explicit JSON null.
	Value any

	// Pruned removes the addressed node instead of replacing it;
	// Removed reports what the handler considers removed.
	Pruned  bool
	Removed any
}

type nullValue struct{}

// Null grafts an explicit JSON null when used as Result.Value.
var Null any = nullValue{}

// IsNull reports whether v is the Null marker.
func IsNull(v any) bool {
	_, ok := v.(nullValue)
	return ok
}

type Handler func(c *Call) (*Result, error)

type Validator func(c *Call, index int) error

// Config is the capability triple registered per extended operation
// id. Arr and Obj are required; Validator is optional.
type Config struct {
	Arr       Handler
	Obj       Handler
	Validator Validator
}

// ValidID reports whether xid matches the extended operation id shape:
// prefix "x-", length at least 3.
func ValidID(xid string) bool {
	return len(xid) >= 3 && strings.HasPrefix(xid, "x-")
}

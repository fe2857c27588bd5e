package jsonpatch

import "encoding/json"

// Kind is the closed set of operation tags.
type Kind string

const (
	Add     Kind = "add"
	Remove  Kind = "remove"
	Replace Kind = "replace"
	Move    Kind = "move"
	Copy    Kind = "copy"
	Test    Kind = "test"

	// Extended is the user-extensible operation kind; the concrete
	// semantics live in an xop.Registry entry selected by XID.
	Extended Kind = "x"

	// Get reads the value at Path. It exists for pointer resolution
	// through the dispatcher and is not part of RFC 6902.
	Get Kind = "_get"
)

// Operation is one patch operation. Value presence is tracked
// explicitly so a decoded "value": null is distinguishable from an
// absent value.
type Operation struct {
	Op   Kind
	Path string
	From *string

	Value    any
	HasValue bool

	// Extended operation payload.
	XID     string
	Args    []any
	Resolve bool

	// set when a decoded operation carried no path member at all
	noPath bool
}

// Patch is an ordered operation sequence.
type Patch []*Operation

func NewAdd(path string, value any) *Operation {
	return &Operation{Op: Add, Path: path, Value: value, HasValue: true}
}

func NewRemove(path string) *Operation {
	return &Operation{Op: Remove, Path: path}
}

func NewReplace(path string, value any) *Operation {
	return &Operation{Op: Replace, Path: path, Value: value, HasValue: true}
}

func NewMove(from, path string) *Operation {
	return &Operation{Op: Move, Path: path, From: &from}
}

func NewCopy(from, path string) *Operation {
	return &Operation{Op: Copy, Path: path, From: &from}
}

func NewTest(path string, value any) *Operation {
	return &Operation{Op: Test, Path: path, Value: value, HasValue: true}
}

func NewExtended(xid, path string, args ...any) *Operation {
	return &Operation{Op: Extended, Path: path, XID: xid, Args: args}
}

type operationJSON struct {
	Op      Kind            `json:"op"`
	Path    *string         `json:"path,omitempty"`
	From    *string         `json:"from,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
	XID     string          `json:"xid,omitempty"`
	Args    []any           `json:"args,omitempty"`
	Resolve bool            `json:"resolve,omitempty"`
}

func (o *Operation) UnmarshalJSON(d []byte) error {
	var tmp operationJSON
	if err := json.Unmarshal(d, &tmp); err != nil {
		return err
	}
	o.Op = tmp.Op
	if tmp.Path != nil {
		o.Path = *tmp.Path
	} else {
		o.noPath = true
	}
	o.From = tmp.From
	if tmp.Value != nil {
		o.HasValue = true
		if err := json.Unmarshal(tmp.Value, &o.Value); err != nil {
			return err
		}
	}
	o.XID = tmp.XID
	o.Args = tmp.Args
	o.Resolve = tmp.Resolve
	return nil
}

func (o Operation) MarshalJSON() ([]byte, error) {
	tmp := operationJSON{
		Op:      o.Op,
		From:    o.From,
		XID:     o.XID,
		Args:    o.Args,
		Resolve: o.Resolve,
	}
	if !o.noPath {
		path := o.Path
		tmp.Path = &path
	}
	if o.HasValue {
		d, err := json.Marshal(o.Value)
		if err != nil {
			return nil, err
		}
		tmp.Value = d
	}
	return json.Marshal(tmp)
}

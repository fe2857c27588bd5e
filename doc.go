// Package jsonpatch applies RFC 6902 JSON Patch operation sequences to
// JSON documents represented as plain Go values (nil, bool, numbers,
// string, []any, map[string]any), with an extension mechanism for
// user-defined operations.
//
// # Usage
//
//	doc := map[string]any{"users": []any{map[string]any{"name": "alice"}}}
//	patch := jsonpatch.Patch{
//	    jsonpatch.NewAdd("/users/-", map[string]any{"name": "bob"}),
//	    jsonpatch.NewReplace("/users/0/name", "carol"),
//	}
//	res, err := jsonpatch.ApplyPatch(doc, patch)
//
//	// leave the input document untouched
//	res, err = jsonpatch.ApplyPatch(doc, patch, jsonpatch.WithoutMutation())
//
//	// validate a sequence without committing it
//	err = jsonpatch.ValidateSequence(patch, doc, nil)
//
// Extended operations use op "x" together with an identifier of the
// form "x-..." registered via package xop; their handlers run against
// a deep clone of the document and the result is spliced back at the
// operation path.
//
// # Related Packages
//
//   - github.com/signadot/jsonpatch/pointer - JSON Pointer parsing and resolution
//   - github.com/signadot/jsonpatch/xop - extended operation registry
//   - github.com/signadot/jsonpatch/encode - document and patch i/o
package jsonpatch

package jsonpatch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/signadot/jsonpatch/jsonval"
	"github.com/signadot/jsonpatch/pointer"
)

func mustDoc(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad document %q: %v", s, err)
	}
	return v
}

func checkDoc(t *testing.T, got any, want string) {
	t.Helper()
	w := mustDoc(t, want)
	if !jsonval.Equal(got, w) {
		gd, _ := json.Marshal(got)
		t.Errorf("got %s, want %s", gd, want)
	}
}

func TestApplyAddObject(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 1}}`)
	res, err := ApplyOperation(doc, NewAdd("/a/c", 2.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": {"b": 1, "c": 2}}`)
}

func TestApplyWithoutMutation(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 1}}`)
	res, err := ApplyPatch(doc, Patch{NewAdd("/a/c", 2.0)}, WithoutMutation())
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": {"b": 1, "c": 2}}`)
	checkDoc(t, doc, `{"a": {"b": 1}}`)
}

func TestApplyAddArrayAppend(t *testing.T) {
	doc := mustDoc(t, `["x", "y"]`)
	res, err := ApplyOperation(doc, NewAdd("/-", "z"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `["x", "y", "z"]`)
}

func TestApplyAddArrayInsert(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 3]}`)
	res, err := ApplyOperation(doc, NewAdd("/a/1", 2.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [1, 2, 3]}`)
}

func TestApplyAddArrayAtLength(t *testing.T) {
	doc := mustDoc(t, `{"a": [1]}`)
	res, err := ApplyOperation(doc, NewAdd("/a/1", 2.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [1, 2]}`)
}

func TestApplyAddArrayOutOfBounds(t *testing.T) {
	doc := mustDoc(t, `{"a": [1]}`)
	_, err := ApplyOperation(doc, NewAdd("/a/5", 2.0), WithValidation())
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	// unvalidated application clamps to an append
	res, err := ApplyOperation(mustDoc(t, `{"a": [1]}`), NewAdd("/a/5", 2.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [1, 2]}`)
}

func TestApplyRemoveObject(t *testing.T) {
	doc := mustDoc(t, `{"a": 1, "b": 2}`)
	res, err := ApplyOperation(doc, NewRemove("/a"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"b": 2}`)
	if !jsonval.Equal(res.Removed, 1.0) {
		t.Errorf("removed %v, want 1", res.Removed)
	}
}

func TestApplyRemoveArrayShifts(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 2, 3]}`)
	res, err := ApplyOperation(doc, NewRemove("/a/1"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [1, 3]}`)
	if !jsonval.Equal(res.Removed, 2.0) {
		t.Errorf("removed %v, want 2", res.Removed)
	}
}

func TestApplyReplace(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 2]}`)
	res, err := ApplyOperation(doc, NewReplace("/a/0", 9.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [9, 2]}`)
	if !jsonval.Equal(res.Removed, 1.0) {
		t.Errorf("removed %v, want 1", res.Removed)
	}
}

func TestApplyRootOps(t *testing.T) {
	res, err := ApplyOperation(mustDoc(t, `{"a": 1}`), NewReplace("", mustDoc(t, `{"b": 2}`)))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"b": 2}`)
	checkDoc(t, res.Removed, `{"a": 1}`)

	res, err = ApplyOperation(mustDoc(t, `{"a": 1}`), NewRemove(""))
	if err != nil {
		t.Fatal(err)
	}
	if res.Document != nil {
		t.Errorf("got %v, want nil", res.Document)
	}
	checkDoc(t, res.Removed, `{"a": 1}`)

	res, err = ApplyOperation(mustDoc(t, `{"a": {"b": 3}}`), NewMove("/a", ""))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"b": 3}`)
}

func TestApplyMove(t *testing.T) {
	doc := mustDoc(t, `{"foo": {"bar": 1}, "baz": 2}`)
	res, err := ApplyOperation(doc, NewMove("/foo/bar", "/baz"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"foo": {}, "baz": 1}`)
	if !jsonval.Equal(res.Removed, 2.0) {
		t.Errorf("removed %v, want prior destination value 2", res.Removed)
	}
}

func TestApplyMoveIntoArray(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 2], "b": 9}`)
	res, err := ApplyOperation(doc, NewMove("/b", "/a/1"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": [1, 9, 2]}`)
}

func TestApplyCopyDoesNotAlias(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 1}}`)
	res, err := ApplyOperation(doc, NewCopy("/a", "/c"))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a": {"b": 1}, "c": {"b": 1}}`)
	m := res.Document.(map[string]any)
	m["c"].(map[string]any)["b"] = 7.0
	checkDoc(t, m["a"], `{"b": 1}`)
}

func TestApplyTest(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 2, "c": [1, 2]}}`)
	res, err := ApplyOperation(doc, NewTest("/a/c", mustDoc(t, `[1, 2]`)))
	if err != nil {
		t.Fatal(err)
	}
	if res.Test == nil || !*res.Test {
		t.Error("test did not report success")
	}
	_, err = ApplyOperation(doc, NewTest("/a/b", 3.0))
	if !errors.Is(err, ErrTestFailed) {
		t.Fatalf("got %v, want ErrTestFailed", err)
	}
	_, err = ApplyOperation(doc, NewTest("/a/missing", 3.0))
	if !errors.Is(err, ErrTestFailed) {
		t.Fatalf("got %v, want ErrTestFailed", err)
	}
}

func TestApplyEscapedPointer(t *testing.T) {
	doc := mustDoc(t, `{"a/b": 1, "c~d": 2}`)
	res, err := ApplyOperation(doc, NewReplace("/a~1b", 9.0))
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"a/b": 9, "c~d": 2}`)
	v, err := GetValueByPointer(res.Document, "/c~0d")
	if err != nil {
		t.Fatal(err)
	}
	if !jsonval.Equal(v, 2.0) {
		t.Errorf("got %v, want 2", v)
	}
}

func TestApplyProtoGuard(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	_, err := ApplyOperation(doc, NewAdd("/__proto__/x", 1.0))
	if !errors.Is(err, pointer.ErrForbiddenKey) {
		t.Fatalf("got %v, want ErrForbiddenKey", err)
	}
	checkDoc(t, doc, `{"a": 1}`)
	// the guard is opt-out
	res, err := ApplyOperation(mustDoc(t, `{"__proto__": {}}`),
		NewAdd("/__proto__/x", 1.0), AllowProtoMods())
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"__proto__": {"x": 1}}`)
}

func TestApplyPatchSequence(t *testing.T) {
	doc := mustDoc(t, `{"users": [{"name": "alice"}]}`)
	res, err := ApplyPatch(doc, Patch{
		NewAdd("/users/-", mustDoc(t, `{"name": "bob"}`)),
		NewReplace("/users/0/name", "carol"),
		NewRemove("/users/1"),
	})
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"users": [{"name": "carol"}]}`)
	if len(res.Results) != 3 {
		t.Fatalf("got %d results", len(res.Results))
	}
	if res.Results[2].Index != 2 {
		t.Errorf("got index %d, want 2", res.Results[2].Index)
	}
}

func TestApplyPatchRootReplacementThreads(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	res, err := ApplyPatch(doc, Patch{
		NewAdd("", mustDoc(t, `{"b": {}}`)),
		NewAdd("/b/c", 3.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"b": {"c": 3}}`)
}

func TestApplyUnresolvable(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	_, err := ApplyOperation(doc, NewAdd("/b/c", 1.0))
	if !errors.Is(err, ErrPathUnresolvable) {
		t.Fatalf("got %v, want ErrPathUnresolvable", err)
	}
	// through a scalar
	_, err = ApplyOperation(doc, NewReplace("/a/b", 1.0))
	if !errors.Is(err, ErrPathUnresolvable) {
		t.Fatalf("got %v, want ErrPathUnresolvable", err)
	}
}

func TestApplyIllegalArrayIndex(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, 2]}`)
	for _, path := range []string{"/a/bad", "/a/01", "/a/1e0", "/a/+1"} {
		_, err := ApplyOperation(doc, NewReplace(path, 0.0))
		if !errors.Is(err, ErrIllegalArrayIndex) {
			t.Errorf("%s: got %v, want ErrIllegalArrayIndex", path, err)
		}
	}
}

func TestApplyPatchError(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	_, err := ApplyPatch(doc, Patch{
		NewReplace("/a", 2.0),
		NewRemove("/missing/x"),
	})
	var pe *PatchError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PatchError", err)
	}
	if pe.Index != 1 {
		t.Errorf("got index %d, want 1", pe.Index)
	}
	if !errors.Is(pe, ErrPathUnresolvable) {
		t.Errorf("got %v, want ErrPathUnresolvable", pe.Err)
	}
}

func TestGetValueByPointer(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, {"b": 2}]}`)
	v, err := GetValueByPointer(doc, "/a/1/b")
	if err != nil {
		t.Fatal(err)
	}
	if !jsonval.Equal(v, 2.0) {
		t.Errorf("got %v, want 2", v)
	}
	// missing terminal key reads as nil
	v, err = GetValueByPointer(doc, "/missing")
	if err != nil || v != nil {
		t.Errorf("got %v, %v", v, err)
	}
	// missing intermediate node errors
	_, err = GetValueByPointer(doc, "/missing/x")
	if !errors.Is(err, ErrPathUnresolvable) {
		t.Errorf("got %v, want ErrPathUnresolvable", err)
	}
	// root
	v, err = GetValueByPointer(doc, "")
	if err != nil || !jsonval.Equal(v, doc) {
		t.Errorf("got %v, %v", v, err)
	}
}

func TestReduce(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	ops := Patch{NewAdd("/b", 2.0), NewRemove("/a")}
	var err error
	cur := doc
	for i, op := range ops {
		cur, err = Reduce(cur, op, i)
		if err != nil {
			t.Fatal(err)
		}
	}
	checkDoc(t, cur, `{"b": 2}`)
}

func TestTestFailureDiffDetail(t *testing.T) {
	doc := mustDoc(t, `{"a": "hello"}`)
	_, err := ApplyOperation(doc, NewTest("/a", "hallo"))
	var pe *PatchError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PatchError", err)
	}
	if pe.Detail == "" {
		t.Error("expected a rendered diff detail")
	}
}

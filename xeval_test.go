package jsonpatch

import (
	"testing"

	"github.com/signadot/jsonpatch/xop/exprop"
)

func TestXEvalEndToEnd(t *testing.T) {
	doc := mustDoc(t, `{"n": 3, "limit": 10}`)
	res, err := ApplyPatch(doc, Patch{
		NewExtended(exprop.ID, "/n", "node * 2"),
		NewExtended(exprop.ID, "/capped", `min(doc["n"], doc["limit"])`),
	})
	if err != nil {
		t.Fatal(err)
	}
	checkDoc(t, res.Document, `{"n": 6, "limit": 10, "capped": 6}`)
}

func TestXEvalValidates(t *testing.T) {
	err := ValidateSequence(Patch{
		NewExtended(exprop.ID, "/n", "1 +"),
	}, nil, nil)
	if err == nil {
		t.Fatal("expected a compile failure")
	}
}

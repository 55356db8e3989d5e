package jsondoc

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestParseKeepsKeyOrder verifies objects re-encode with their original order.
func TestParseKeepsKeyOrder(t *testing.T) {
	input := `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50,"y < z"]}`
	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// json.Marshal re-escapes '<' while compacting marshaler output.
	if !strings.HasPrefix(string(out), `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x",2.50,`) {
		t.Fatalf("unexpected encoding: %s", out)
	}
	encoded, err := Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(encoded), `"y < z"`) {
		t.Fatalf("expected unescaped text, got %s", encoded)
	}
	if strings.HasSuffix(string(encoded), "\n") {
		t.Fatalf("expected no trailing newline")
	}
}

// TestObjectSetAppendsNewKeys verifies Set order semantics.
func TestObjectSetAppendsNewKeys(t *testing.T) {
	obj := NewObject()
	obj.Set("b", IntValue(1))
	obj.Set("a", StringValue("x"))
	obj.Set("b", IntValue(2))
	out, err := json.Marshal(ObjectValue(obj))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"b":2,"a":"x"}` {
		t.Fatalf("unexpected key order: %s", out)
	}
	v, _ := obj.Get("b")
	if n, ok := v.AsInt(); !ok || n != 2 {
		t.Fatalf("expected b=2, got %+v", v)
	}
}

// TestParseRejectsTrailingData verifies only a single document is accepted.
func TestParseRejectsTrailingData(t *testing.T) {
	if _, err := Parse([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected error for trailing document")
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for truncated document")
	}
}

package jsonutil

import "testing"

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"code": "<div>&</div>"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"code":"<div>&</div>"}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	b, err := MarshalNoEscapeIndent(map[string]int{"a": 1}, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), "{\n  \"a\": 1\n}"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCanonical_StableAcrossKeyOrder(t *testing.T) {
	type pair struct {
		B string `json:"b"`
		A string `json:"a"`
	}
	fromStruct, err := Canonical(pair{B: "2", A: "1"})
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	fromMap, err := Canonical(map[string]any{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if string(fromStruct) != string(fromMap) || string(fromMap) != `{"a":"1","b":"2"}` {
		t.Fatalf("not canonical: %s vs %s", fromStruct, fromMap)
	}
}

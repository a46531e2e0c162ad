package canonicaljson

import (
	"context"
	"testing"
)

func TestCanonicalizeSortsObjectMembers(t *testing.T) {
	var canon Canonicalizer
	out, err := canon.Canonicalize(context.Background(), []byte(`{"b": 2, "a": 1}`))
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if string(out) != `{"a":1,"b":2}` {
		t.Fatalf("expected sorted members without whitespace, got %s", out)
	}
}

func TestCanonicalizeIsStable(t *testing.T) {
	var canon Canonicalizer
	inputs := []string{
		`{"x":{"b":1,"a":2},"y":[1,2]}`,
		`{ "y": [1, 2], "x": { "a": 2, "b": 1 } }`,
	}
	var outputs []string
	for _, input := range inputs {
		out, err := canon.Canonicalize(context.Background(), []byte(input))
		if err != nil {
			t.Fatalf("Canonicalize(%s): %v", input, err)
		}
		outputs = append(outputs, string(out))
	}
	if outputs[0] != outputs[1] {
		t.Fatalf("equivalent documents canonicalize differently: %s vs %s", outputs[0], outputs[1])
	}
}

func TestCanonicalizeRejectsInvalidJSON(t *testing.T) {
	var canon Canonicalizer
	if _, err := canon.Canonicalize(context.Background(), []byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

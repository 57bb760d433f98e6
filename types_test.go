package promptrelay

import (
	"reflect"
	"testing"

	"promptrelay/internal/wire"
)

func TestRequestRoundTripIsFieldIdentical(t *testing.T) {
	original := Request{
		ID:                "r1",
		Message:           "Continue?",
		PredefinedOptions: []string{"Yes", "No"},
		IsMarkdown:        true,
	}

	line, err := wire.Encode(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var decoded Request
	if err := wire.Decode(line, &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Fatalf("round trip mismatch: %+v != %+v", decoded, original)
	}
}

func TestResponseOmitsErrorOnSuccess(t *testing.T) {
	line, err := wire.Encode(Response{ID: "r1", Response: "Yes", Success: true})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(line) != `{"id":"r1","response":"Yes","success":true}`+"\n" {
		t.Fatalf("unexpected wire form: %s", line)
	}
}

func TestDefaultEventNamesReturnsFreshSlice(t *testing.T) {
	first := DefaultEventNames()
	first[0] = "mutated"
	if DefaultEventNames()[0] != EventPromptRequest {
		t.Fatal("DefaultEventNames must not share its backing array")
	}
}

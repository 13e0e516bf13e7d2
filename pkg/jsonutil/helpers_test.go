package jsonutil

import (
	"bytes"
	"testing"
)

func TestWriteIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"stars": 160}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "{\n  \"stars\": 160\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteRejectsUnencodable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"f": func() {}}); err == nil {
		t.Error("expected an error for a func value")
	}
}

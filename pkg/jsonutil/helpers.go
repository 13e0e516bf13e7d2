// Package jsonutil provides JSON output helpers for the Galaxy CLI.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write encodes v as indented JSON followed by a newline.
func Write(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a grouped class schedule to disk as JSON, YAML, or
// an XLSX workbook.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// MarshalJSON renders the schedule as an indented JSON object with two-space
// indentation, class keys in first-seen order, and a trailing newline.
func MarshalJSON(s *types.ClassSchedule) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the schedule to path, replacing any existing file.
func WriteJSON(path string, s *types.ClassSchedule) error {
	data, err := MarshalJSON(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a schedule previously written by WriteJSON.
func ReadJSON(path string) (*types.ClassSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s := types.NewClassSchedule()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

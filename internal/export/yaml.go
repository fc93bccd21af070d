// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schedule-parser/pkg/types"
)

// MarshalYAML renders the schedule as a YAML mapping. A plain Go map would
// sort the class keys, so the mapping node is built by hand to keep
// first-seen order.
func MarshalYAML(s *types.ClassSchedule) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, class := range s.Classes() {
		slots := s.Slots(class)
		if slots == nil {
			slots = []types.ClassSlot{}
		}
		var value yaml.Node
		if err := value.Encode(slots); err != nil {
			return nil, fmt.Errorf("encoding slots for %s: %w", class, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: class},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteYAML writes the schedule to path as YAML.
func WriteYAML(path string, s *types.ClassSchedule) error {
	data, err := MarshalYAML(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

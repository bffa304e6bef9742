package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Import reads schedules from r. JSON and YAML accept either an exported
// document or a bare list of schedules. Every JSON and YAML entry must be
// valid; iCalendar entries that cannot be represented are skipped and
// reported.
func Import(r io.Reader, format Format, opts ImportOptions) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var schedules []schedule.Schedule
	switch format {
	case FormatJSON:
		schedules, err = decodeJSON(data)
	case FormatYAML:
		schedules, err = decodeYAML(data)
	case FormatICS:
		return importICS(data, opts)
	default:
		return nil, fmt.Errorf("%w for import: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	inputs := inputsOf(schedules)
	if err := validateAll(inputs); err != nil {
		return nil, err
	}
	return &ImportResult{Inputs: inputs}, nil
}

func decodeJSON(data []byte) ([]schedule.Schedule, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []schedule.Schedule
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return list, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return doc.Schedules, nil
}

func decodeYAML(data []byte) ([]schedule.Schedule, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var list []schedule.Schedule
		if err := node.Content[0].Decode(&list); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return list, nil
	}

	var doc Document
	if err := node.Content[0].Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return doc.Schedules, nil
}

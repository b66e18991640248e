package query

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported record file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Record is a single decoded data row
type Record map[string]any

// Lookup resolves a dotted field path through nested maps
func (r Record) Lookup(path string) (any, bool) {
	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// DetectFormat infers the record format from a file extension
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot infer record format of %s, set it explicitly", path)
	}
}

// LoadRecords reads a JSON array or YAML sequence of mappings. An empty
// format is inferred from the file extension.
func LoadRecords(path, format string) ([]Record, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return DecodeRecords(data, format)
}

// DecodeRecords decodes records from raw bytes in the given format
func DecodeRecords(data []byte, format string) ([]Record, error) {
	var records []Record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON records: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML records: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported record format %q", format)
	}

	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("record %d is not a mapping", i)
		}
	}
	return records, nil
}

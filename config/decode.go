package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names accepted by DecodeWithFormat.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Decode auto-detects the document format (YAML, JSON, or TOML) and decodes
// it into the map[string]any shape Parse consumes. Detection tries the
// character-based heuristic first (matching the teacher's
// MultiFormatParser.detectFormat); if that format does not decode (or the
// heuristic picks YAML) it tries YAML, then JSON, then TOML, and returns the
// first successful decode.
func Decode(data []byte) (map[string]any, error) {
	switch detectFormat(data) {
	case FormatJSON:
		if m, err := decodeJSON(data); err == nil {
			return m, nil
		}
	case FormatTOML:
		if m, err := decodeTOML(data); err == nil {
			return m, nil
		}
	}

	if m, err := decodeYAML(data); err == nil {
		return m, nil
	}
	if m, err := decodeJSON(data); err == nil {
		return m, nil
	}
	if m, err := decodeTOML(data); err == nil {
		return m, nil
	}
	return nil, fmt.Errorf("config: could not decode document as YAML, JSON, or TOML")
}

// DecodeWithFormat decodes data using an explicitly named format, skipping
// auto-detection.
func DecodeWithFormat(data []byte, format string) (map[string]any, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return Decode(data)
	}
}

func decodeYAML(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalizeYAMLMaps(raw).(map[string]any), nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeTOML(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalizeYAMLMaps(raw).(map[string]any), nil
}

// normalizeYAMLMaps recursively converts map[string]interface{} that
// gopkg.in/yaml.v3 may produce as map[any]any-compatible shapes (it
// actually already yields map[string]any for string-keyed mappings, but
// nested nodes need the same walk applied) so Parse only ever sees
// map[string]any and []any, never yaml-specific types. TOML output goes
// through the same walk, which turns its arrays of tables
// ([]map[string]any) into []any.
func normalizeYAMLMaps(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = normalizeYAMLMaps(child)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeYAMLMaps(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeYAMLMaps(child)
		}
		return out
	default:
		return val
	}
}

// detectFormat applies the teacher's character-counting heuristic, with a
// TOML extension: a document whose non-whitespace lines are dominated by
// "key = value" assignments rather than "key:" mappings is probably TOML.
func detectFormat(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return FormatYAML
	}

	switch data[0] {
	case '{', '[':
		return FormatJSON
	}
	if bytes.HasPrefix(data, []byte("---")) {
		return FormatYAML
	}

	sampleSize := 200
	if len(data) < sampleSize {
		sampleSize = len(data)
	}
	sample := data[:sampleSize]

	jsonChars := bytes.Count(sample, []byte("{")) + bytes.Count(sample, []byte("}")) +
		bytes.Count(sample, []byte("[")) + bytes.Count(sample, []byte("]"))
	yamlChars := bytes.Count(sample, []byte(":")) + bytes.Count(sample, []byte("-\n"))
	tomlChars := bytes.Count(sample, []byte(" = ")) + bytes.Count(sample, []byte("[["))

	if jsonChars > yamlChars && jsonChars > tomlChars {
		return FormatJSON
	}
	if tomlChars > yamlChars {
		return FormatTOML
	}
	return FormatYAML
}

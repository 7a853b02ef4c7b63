package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written into every document produced by Encode.
const SchemaVersion = 2

var (
	ErrUnsupportedVersion = errors.New("model: unsupported scripts version")
	ErrInvalidEntry       = errors.New("model: invalid slide entry")
)

type Format string

const (
	FormatEmpty     Format = "empty"
	FormatVersioned Format = "versioned"
	FormatRecords   Format = "records"
	FormatLegacy    Format = "legacy"
)

type document struct {
	Version int `json:"version"`
	Slides  Raw `json:"slides"`
}

// Encode writes raw inside the versioned envelope.
func Encode(raw Raw) ([]byte, error) {
	if raw == nil {
		raw = Raw{}
	}
	return json.MarshalIndent(document{Version: SchemaVersion, Slides: raw}, "", "  ")
}

// Decode reads a scripts document. Versioned envelopes are used as is. A bare
// mapping is migrated entry by entry: a string value is a legacy script with
// no title, an object value is a record.
func Decode(data []byte) (Raw, Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Raw{}, FormatEmpty, nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, "", fmt.Errorf("decode scripts: %w", err)
	}
	if len(top) == 0 {
		return Raw{}, FormatEmpty, nil
	}
	if v, ok := top["version"]; ok {
		return decodeVersioned(v, top["slides"])
	}
	return decodeBare(top)
}

func decodeVersioned(version, slides json.RawMessage) (Raw, Format, error) {
	var v int
	if err := json.Unmarshal(version, &v); err != nil {
		return nil, "", fmt.Errorf("decode scripts version: %w", err)
	}
	if v != SchemaVersion {
		return nil, "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	out := Raw{}
	if len(slides) == 0 || string(bytes.TrimSpace(slides)) == "null" {
		return out, FormatVersioned, nil
	}
	if err := json.Unmarshal(slides, &out); err != nil {
		return nil, "", fmt.Errorf("decode slides: %w", err)
	}
	for key := range out {
		if _, err := ParseSlideNumber(key); err != nil {
			return nil, "", err
		}
	}
	return out, FormatVersioned, nil
}

func decodeBare(top map[string]json.RawMessage) (Raw, Format, error) {
	out := make(Raw, len(top))
	format := FormatRecords
	for key, value := range top {
		if _, err := ParseSlideNumber(key); err != nil {
			return nil, "", err
		}
		trimmed := bytes.TrimSpace(value)
		switch {
		case len(trimmed) > 0 && trimmed[0] == '"':
			var script string
			if err := json.Unmarshal(trimmed, &script); err != nil {
				return nil, "", fmt.Errorf("%w: slide %s: %v", ErrInvalidEntry, key, err)
			}
			out[key] = Record{Script: script}
			format = FormatLegacy
		case len(trimmed) > 0 && trimmed[0] == '{':
			var rec Record
			if err := json.Unmarshal(trimmed, &rec); err != nil {
				return nil, "", fmt.Errorf("%w: slide %s: %v", ErrInvalidEntry, key, err)
			}
			out[key] = rec
		default:
			return nil, "", fmt.Errorf("%w: slide %s", ErrInvalidEntry, key)
		}
	}
	return out, format, nil
}

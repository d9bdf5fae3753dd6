package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes every "```json" and "```" marker from s and trims
// surrounding whitespace. It is idempotent.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseAnalysis decodes a model response into an Analysis.
//
// title, summary and tags are always required; transcription is required only
// when requireTranscription is set. tags must be an array of strings, an empty
// array is accepted. op names the model call for error reporting.
func ParseAnalysis(op, raw string, requireTranscription bool) (Analysis, error) {
	cleaned := StripFences(raw)

	fields, err := decodeObject(cleaned)
	if err != nil {
		return Analysis{}, malformed(op, "response is not a JSON object", raw, err)
	}

	var a Analysis
	if a.Title, err = requireString(fields, "title"); err != nil {
		return Analysis{}, malformed(op, err.Error(), raw, nil)
	}
	if a.Summary, err = requireString(fields, "summary"); err != nil {
		return Analysis{}, malformed(op, err.Error(), raw, nil)
	}
	if a.Tags, err = requireStrings(fields, "tags"); err != nil {
		return Analysis{}, malformed(op, err.Error(), raw, nil)
	}
	if requireTranscription {
		if a.Transcription, err = requireString(fields, "transcription"); err != nil {
			return Analysis{}, malformed(op, err.Error(), raw, nil)
		}
	}

	return a, nil
}

// decodeObject decodes s as a JSON object. When s has chatter around the
// object, the outermost {...} span is tried before giving up.
func decodeObject(s string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal([]byte(s), &fields)
	if err == nil && fields != nil {
		return fields, nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		if err == nil {
			err = fmt.Errorf("null document")
		}
		return nil, err
	}

	fields = nil
	if innerErr := json.Unmarshal([]byte(s[start:end+1]), &fields); innerErr != nil {
		return nil, innerErr
	}
	if fields == nil {
		return nil, fmt.Errorf("null document")
	}
	return fields, nil
}

func requireString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("missing required field %q", key)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return v, nil
}

func requireStrings(fields map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	var v []string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("field %q must be an array of strings", key)
	}
	if v == nil {
		v = []string{}
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type encoder interface {
	Encode(v any) error
}

// yamlStream writes one YAML document per Encode.
type yamlStream struct {
	w     io.Writer
	count int
}

func (y *yamlStream) Encode(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if y.count > 0 {
		if _, err := io.WriteString(y.w, "---\n"); err != nil {
			return err
		}
	}
	y.count++
	_, err = y.w.Write(data)
	return err
}

func newEncoder(w io.Writer, format string) (encoder, error) {
	switch strings.ToLower(format) {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc, nil
	case formatYAML, "yml":
		return &yamlStream{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

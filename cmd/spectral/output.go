// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v as JSON or YAML. Text rendering is command-specific.
func encode(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	default:
		return errors.Newf("unknown output format %q (want text, json or yaml)", format)
	}
}

func checkFormat(format string) error {
	switch strings.ToLower(format) {
	case formatText, formatJSON, formatYAML:
		return nil
	}

	return errors.Newf("unknown output format %q (want text, json or yaml)", format)
}

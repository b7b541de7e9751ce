// Copyright 2024 The lintsql Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package iox implements the read/write policy the CLI uses for file
// content: decode as UTF-8 with an optional BOM prefix, never failing on
// input that claims to be UTF-8 but isn't — a file's encoding is outside
// this module's control, so the lint pipeline should still run against
// it rather than aborting on a decode error.
package iox

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads path, decoding it as UTF-8 with an optional BOM (the
// teacher's own "internal/encoding" read policy: unicode.BOMOverride
// over unicode.UTF8's decoder, as a streaming transform.Reader).
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Decode(raw)
}

// Decode applies the BOM-aware UTF-8 decode policy to raw bytes already
// in memory (e.g. stdin).
func Decode(raw []byte) (string, error) {
	t := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := transform.NewReader(bytes.NewReader(raw), t)
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WriteFile writes content to path, preserving the file's existing mode
// if it already exists (0644 for a new file).
func WriteFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, []byte(content), mode)
}

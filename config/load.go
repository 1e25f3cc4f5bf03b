/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dirpx.dev/anydyn/apis"
)

// ErrUnknownFormat is returned by Load for unsupported file extensions.
var ErrUnknownFormat = errors.New("anydyn(config): unknown config file format")

// ParseYAML decodes a YAML document on top of DefaultConfig.
//
//	duplicates: replace
//	native_fallback: true
//	verify_views: false
func ParseYAML(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return apis.Config{}, fmt.Errorf("anydyn(config): yaml: %w", err)
	}
	return sanitize(cfg), nil
}

// ParseTOML decodes a TOML document on top of DefaultConfig.
func ParseTOML(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return apis.Config{}, fmt.Errorf("anydyn(config): toml: %w", err)
	}
	return sanitize(cfg), nil
}

// Load reads path and decodes it according to its extension
// (.yaml, .yml or .toml).
func Load(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("anydyn(config): %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return apis.Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

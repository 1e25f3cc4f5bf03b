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

package apis

import (
	"fmt"
	"strings"
)

// Config carries read-only casting knobs that influence the registry and strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Duplicates selects what a Registry does when a (concrete, interface)
	// pair is registered a second time.
	Duplicates DuplicatePolicy `yaml:"duplicates" toml:"duplicates"`

	// NativeFallback lets a cast succeed without a registry entry when the
	// concrete type implements the target interface natively. When false,
	// only registered (or self-describing) pairs cast.
	NativeFallback bool `yaml:"native_fallback" toml:"native_fallback"`

	// VerifyViews checks every constructed view against the target
	// interface and panics on a mismatch instead of reporting a miss.
	VerifyViews bool `yaml:"verify_views" toml:"verify_views"`
}

// DuplicatePolicy decides the outcome of re-registering a pair.
type DuplicatePolicy int

const (
	// DuplicateReject keeps the first registration and rejects later ones.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateReplace lets the last registration win.
	DuplicateReplace
)

// String implements fmt.Stringer.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateReplace:
		return "replace"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p DuplicatePolicy) MarshalText() ([]byte, error) {
	switch p {
	case DuplicateReject, DuplicateReplace:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("apis: unknown duplicate policy %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler ("reject" or "replace").
func (p *DuplicatePolicy) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "reject", "":
		*p = DuplicateReject
	case "replace":
		*p = DuplicateReplace
	default:
		return fmt.Errorf("apis: unknown duplicate policy %q", string(b))
	}
	return nil
}

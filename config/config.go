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
	"dirpx.dev/anydyn/apis"
)

const (
	// DefaultDuplicates represents the default for Duplicates.
	DefaultDuplicates = apis.DuplicateReject
	// DefaultNativeFallback represents the default for NativeFallback.
	// When false, only declared pairs cast.
	DefaultNativeFallback = false
	// DefaultVerifyViews represents the default for VerifyViews.
	DefaultVerifyViews = true
)

const (
	// Reject is shorthand for apis.DuplicateReject.
	Reject = apis.DuplicateReject
	// Replace is shorthand for apis.DuplicateReplace.
	Replace = apis.DuplicateReplace
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Duplicates:     DefaultDuplicates,
		NativeFallback: DefaultNativeFallback,
		VerifyViews:    DefaultVerifyViews,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDuplicates sets the Duplicates option.
// An unknown policy resets to the default.
func WithDuplicates(p apis.DuplicatePolicy) Option {
	return func(c *apis.Config) {
		c.Duplicates = p
	}
}

// WithNativeFallback sets the NativeFallback option.
func WithNativeFallback(enabled bool) Option {
	return func(c *apis.Config) {
		c.NativeFallback = enabled
	}
}

// WithVerifyViews sets the VerifyViews option.
func WithVerifyViews(verify bool) Option {
	return func(c *apis.Config) {
		c.VerifyViews = verify
	}
}

func sanitize(cfg apis.Config) apis.Config {
	switch cfg.Duplicates {
	case apis.DuplicateReject, apis.DuplicateReplace:
	default:
		cfg.Duplicates = DefaultDuplicates
	}
	return cfg
}

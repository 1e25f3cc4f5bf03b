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

package builder

import (
	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/registry"
	"dirpx.dev/anydyn/resolver"
	"dirpx.dev/anydyn/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry for cfg. Entries of prev are
// copied over and a sealed prev yields a sealed registry. Copying follows
// the new duplicate policy, which cannot conflict since prev holds unique pairs.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e)
		}
		if prev.Sealed() {
			nreg.Seal()
		}
	}
	return nreg
}

// BuildResolver builds the default chain over reg:
// identity, self-describing casters, registry constructors, native fallback.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewIdentityStrategy(),
		strategy.NewCasterStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewNativeStrategy(),
	)
}

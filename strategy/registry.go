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

package strategy

import (
	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/token"
)

// NewRegistryStrategy creates a strategy that builds views from registry constructors.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry (reflection-free lookup).
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up (src's concrete type, target) and runs its constructor.
func (s *registryStrategy) TryResolve(src ref.Ref, target token.InterfaceID, cfg apis.Config) (any, bool) {
	if src.IsZero() || s.reg == nil {
		return nil, false
	}
	e, ok := s.reg.Lookup(src.Concrete(), target)
	if !ok {
		return nil, false
	}
	return checkView(e.Constructor(src.Data()), src, target, cfg, "constructor")
}

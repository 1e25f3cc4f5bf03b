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

// NewCasterStrategy returns the strategy that lets objects implementing
// apis.Caster answer for themselves. A refusal falls through.
func NewCasterStrategy() apis.Strategy {
	return &casterStrategy{}
}

type casterStrategy struct{}

var _ apis.Strategy = (*casterStrategy)(nil)

func (*casterStrategy) TryResolve(src ref.Ref, target token.InterfaceID, cfg apis.Config) (any, bool) {
	if src.IsZero() || target.IsZero() {
		return nil, false
	}
	c, ok := src.Data().(apis.Caster)
	if !ok {
		return nil, false
	}
	view, ok := c.CastTo(target)
	if !ok {
		return nil, false
	}
	return checkView(view, src, target, cfg, "CastTo")
}

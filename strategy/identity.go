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

// NewIdentityStrategy returns the strategy that handles casts to the
// interface a reference was erased from, using the attached view.
func NewIdentityStrategy() apis.Strategy {
	return identityStrategy{}
}

type identityStrategy struct{}

var _ apis.Strategy = identityStrategy{}

func (identityStrategy) TryResolve(src ref.Ref, target token.InterfaceID, _ apis.Config) (any, bool) {
	if src.IsZero() || target.IsZero() || src.Interface() != target {
		return nil, false
	}
	return src.View(), true
}

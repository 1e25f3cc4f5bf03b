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
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/token"
)

// Resolver coordinates strategies to cast erased references.
// Typical chain: Identity -> Caster -> Registry -> Native.
type Resolver interface {
	// Resolve returns a view of src implementing target, or (nil, false)
	// if src cannot be cast. A miss is an ordinary outcome, not an error.
	Resolve(src ref.Ref, target token.InterfaceID, cfg Config) (view any, ok bool)
}

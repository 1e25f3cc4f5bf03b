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

import "dirpx.dev/anydyn/token"

// Caster is implemented by concrete types that answer cast requests
// themselves instead of (or in addition to) registering constructors.
//
// CastTo returns a view implementing target, bound to the receiver, or
// (nil, false) to let the remaining strategies try. It must be cheap and
// free of side effects.
type Caster interface {
	CastTo(target token.InterfaceID) (view any, ok bool)
}

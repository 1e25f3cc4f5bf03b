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

package anydyn

import "dirpx.dev/anydyn/token"

// Case is one interface a Caster offers. Build it with Offer.
type Case struct {
	iface token.InterfaceID
	view  any
}

// Offer returns a Case presenting view as interface J.
func Offer[J any](view J) Case {
	return Case{iface: token.InterfaceOf[J](), view: any(view)}
}

// Match returns the view of the first case offering target.
// It is the usual body of an apis.Caster implementation:
//
//	func (w *Widget) CastTo(target token.InterfaceID) (any, bool) {
//	    return anydyn.Match(target, anydyn.Offer[Drawable](w), anydyn.Offer[Serializable](w))
//	}
func Match(target token.InterfaceID, cases ...Case) (any, bool) {
	for _, c := range cases {
		if c.iface == target && c.view != nil {
			return c.view, true
		}
	}
	return nil, false
}

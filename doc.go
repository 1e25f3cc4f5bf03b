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

// Package anydyn casts an interface value to a different interface
// implemented by the same object, after the original interface has been
// forgotten.
//
// A caller erases an interface value into a ref.Ref, passes it through code
// that does not know the interface, and later asks for some other interface:
//
//	var d Drawable = widget
//	r := anydyn.Erase(d)
//	// ...
//	if s, ok := anydyn.Downcast[Serializable](r); ok {
//	    _ = s.ToBytes()
//	}
//
// A miss is an ordinary (zero, false) result: the object does not expose
// the interface, or nobody declared that it does.
//
// # Design
//
// The package holds a read-mostly global snapshot (state):
//
//   - Config: duplicate-registration policy, native fallback, and view
//     verification (see apis.Config and package config).
//
//   - Registry: a process-wide map from (concrete type, target interface)
//     to a constructor that builds the target view for a value. Concrete
//     types declare what they expose with Declare, usually from init.
//
//   - Resolver: an ordered chain of strategies. The default chain answers,
//     in order: the erased interface itself; apis.Caster implemented by the
//     object; registry constructors; and, when Config.NativeFallback is set,
//     interfaces the concrete type implements natively.
//
//   - Builder: constructs Registry and Resolver for a Config. Rebuilds
//     migrate registry entries and the sealed flag.
//
// Readers load the snapshot atomically and never lock. Writers (SetConfig,
// SetBuilder, SetExt, SetRegistry, SetResolver, SetAll) take a short build
// mutex, assemble a new snapshot and publish it. SetRegistry/SetResolver
// pin a layer so later rebuilds leave it alone until it is unpinned.
//
// # Registration discipline
//
//	func init() {
//	    anydyn.MustDeclare[*Widget](
//	        anydyn.Self[*Widget, Serializable](),
//	        anydyn.Via[*Widget, Audible](newWidgetAudio),
//	    )
//	}
//
// Register and Declare are meant to run during initialization, before
// concurrent casting starts. The registry is safe for concurrent use either
// way, but a cast racing its own registration may miss. Seal freezes the
// registry once the process is configured. Duplicate pairs are rejected by
// default (config.Reject); config.Replace lets the last registration win.
//
// # Exclusive references
//
// Borrow erases a pointer-shaped value exclusively for the duration of a
// callback. A second Borrow of the same object fails while the first is
// open, DowncastMut hands out one derived reference at a time, and the
// RefMut expires when the callback returns.
//
// # Lifetimes
//
// Erased references borrow; they never own. Pass them down a call chain
// and drop them; do not keep them past the interface value they came from.
package anydyn

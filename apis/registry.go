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

// Constructor produces the view that exposes one interface for data.
// data always has the dynamic type the entry was registered for. The result
// must implement the entry's interface and be bound to data; typically it is
// data itself or a small adapter around it. Constructors must be pure.
type Constructor func(data any) any

// Registry maps (concrete type, target interface) pairs to constructors.
// Implementations must be safe for concurrent Lookup.
type Registry interface {
	// Register inserts e. Re-registering the same pair follows Config.Duplicates.
	Register(e Entry) error
	// Lookup returns the entry for the pair if present.
	Lookup(c token.ConcreteID, i token.InterfaceID) (Entry, bool)
	// Entries returns a snapshot for diagnostics/docs, ordered by concrete then interface name.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Seal rejects all further registrations.
	Seal()
	// Sealed reports whether Seal has been called.
	Sealed() bool
	// Reset clears all entries and the sealed flag. Intended for tests.
	Reset()
}

// Entry is a single (concrete, interface, constructor) association.
type Entry struct {
	// Concrete is the implementing type.
	Concrete token.ConcreteID
	// Interface is the target interface.
	Interface token.InterfaceID
	// Constructor builds the Interface view for a Concrete value.
	Constructor Constructor
}

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

// Package ref implements erased interface references.
//
// A Ref captures an interface value together with the identity of its
// concrete type and of the interface it was erased from. It can be passed
// through code that does not know the original interface and later turned
// back into a typed interface value, either directly (TryAs, when the
// target is the erased interface) or through a cast registry.
//
// A RefMut is the exclusive counterpart. It only exists inside a Borrow
// scope, at most one per object at a time, and hands out at most one
// derived reference at a time.
//
// Neither type carries synchronization for the referenced object. A Ref
// must not outlive the reference it was erased from; do not store it in
// long-lived containers.
package ref

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/anydyn/token"
	uref "dirpx.dev/anydyn/utils/reflect"
)

var (
	// ErrNilData is returned when a reference is built from a nil value.
	ErrNilData = errors.New("anydyn(ref): nil data")
	// ErrConcreteMismatch is returned when the concrete token does not
	// describe the dynamic type of the data.
	ErrConcreteMismatch = errors.New("anydyn(ref): concrete token does not match data")
	// ErrZeroInterface is returned when no interface token is supplied.
	ErrZeroInterface = errors.New("anydyn(ref): zero interface token")
	// ErrViewMismatch is returned when the view does not implement the
	// interface named by the interface token.
	ErrViewMismatch = errors.New("anydyn(ref): view does not implement interface")
)

// Ref is an erased shared reference.
//
// Invariant: view implements iface and exposes the object held in data.
// The zero Ref references nothing; every cast from it misses.
type Ref struct {
	data     any
	concrete token.ConcreteID
	iface    token.InterfaceID
	view     any
}

// Erase captures r as a Ref tagged with interface I.
// A nil r yields the zero Ref. Erase panics if I is not an interface type.
func Erase[I any](r I) Ref {
	iface := token.InterfaceOf[I]()
	v := any(r)
	if v == nil {
		return Ref{}
	}
	return Ref{
		data:     v,
		concrete: token.ConcreteOfValue(v),
		iface:    iface,
		view:     v,
	}
}

// New packages data and view as a Ref without deriving anything.
//
// view is the value that exposes interface iface for data; it is either
// data itself or an adapter bound to it. New validates everything that can
// be checked at runtime: the tokens, the dynamic type of data, and that
// view implements iface. Whether view is actually bound to data is the
// caller's responsibility.
func New(data any, concrete token.ConcreteID, iface token.InterfaceID, view any) (Ref, error) {
	if data == nil {
		return Ref{}, ErrNilData
	}
	if concrete.IsZero() || reflect.TypeOf(data) != concrete.Type() {
		return Ref{}, fmt.Errorf("%w: %s for %T", ErrConcreteMismatch, concrete, data)
	}
	if iface.IsZero() {
		return Ref{}, ErrZeroInterface
	}
	if view == nil || !uref.Implements(reflect.TypeOf(view), iface.Type()) {
		return Ref{}, fmt.Errorf("%w: %T as %s", ErrViewMismatch, view, iface)
	}
	return Ref{data: data, concrete: concrete, iface: iface, view: view}, nil
}

// Data returns the referenced object.
func (r Ref) Data() any { return r.data }

// Concrete returns the token of the referenced object's type.
func (r Ref) Concrete() token.ConcreteID { return r.concrete }

// Interface returns the token of the interface currently attached.
func (r Ref) Interface() token.InterfaceID { return r.iface }

// View returns the value exposing the attached interface.
func (r Ref) View() any { return r.view }

// IsZero reports whether r references nothing.
func (r Ref) IsZero() bool { return r.data == nil }

// String describes r for logs, e.g. "*widget.Widget as gfx.Drawable".
func (r Ref) String() string {
	if r.IsZero() {
		return "ref(<nil>)"
	}
	return "ref(" + r.concrete.String() + " as " + r.iface.String() + ")"
}

// TryAs returns r as J when J is the interface r was erased from.
// It never consults a registry; any other J is a miss.
func TryAs[J any](r Ref) (J, bool) {
	var zero J
	if r.IsZero() || r.iface != token.InterfaceOf[J]() {
		return zero, false
	}
	j, ok := r.view.(J)
	return j, ok
}

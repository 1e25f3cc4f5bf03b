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

// Package token provides comparable runtime identities for Go types.
//
// An InterfaceID names one interface type and a ConcreteID names one
// concrete (non-interface) type. Both wrap the runtime's own type
// descriptor, so a token is unique per type, stable for the process
// lifetime, allocation-free to obtain, and directly usable as a map key.
// The two kinds are distinct Go types so they cannot be swapped by mistake
// when building registry keys.
package token

import (
	"fmt"
	"reflect"

	uref "dirpx.dev/anydyn/utils/reflect"
)

// InterfaceID identifies an interface type. The zero value identifies none.
type InterfaceID struct {
	t reflect.Type
}

// ConcreteID identifies a concrete type. The zero value identifies none.
type ConcreteID struct {
	t reflect.Type
}

// InterfaceOf returns the token for interface type I.
// It panics if I is not an interface type.
func InterfaceOf[I any]() InterfaceID {
	id, err := InterfaceFor(reflect.TypeFor[I]())
	if err != nil {
		panic(fmt.Errorf("anydyn(token): InterfaceOf[%s]: %w", reflect.TypeFor[I](), err))
	}
	return id
}

// InterfaceFor returns the token for the interface type t.
func InterfaceFor(t reflect.Type) (InterfaceID, error) {
	it, err := uref.Interface(t)
	if err != nil {
		return InterfaceID{}, err
	}
	return InterfaceID{t: it}, nil
}

// ConcreteOf returns the token for concrete type T.
// It panics if T is an interface type.
func ConcreteOf[T any]() ConcreteID {
	id, err := ConcreteFor(reflect.TypeFor[T]())
	if err != nil {
		panic(fmt.Errorf("anydyn(token): ConcreteOf[%s]: %w", reflect.TypeFor[T](), err))
	}
	return id
}

// ConcreteFor returns the token for the concrete type t.
func ConcreteFor(t reflect.Type) (ConcreteID, error) {
	ct, err := uref.Concrete(t)
	if err != nil {
		return ConcreteID{}, err
	}
	return ConcreteID{t: ct}, nil
}

// ConcreteOfValue returns the token for the dynamic type of v,
// or the zero ConcreteID if v is nil.
func ConcreteOfValue(v any) ConcreteID {
	if v == nil {
		return ConcreteID{}
	}
	return ConcreteID{t: reflect.TypeOf(v)}
}

// Type returns the underlying reflect.Type (nil for the zero token).
func (id InterfaceID) Type() reflect.Type { return id.t }

// IsZero reports whether id identifies no type.
func (id InterfaceID) IsZero() bool { return id.t == nil }

// String returns a stable "pkg.Type" name suitable for logs and errors.
func (id InterfaceID) String() string {
	if id.t == nil {
		return "<nil>"
	}
	return uref.Name(id.t)
}

// Type returns the underlying reflect.Type (nil for the zero token).
func (id ConcreteID) Type() reflect.Type { return id.t }

// IsZero reports whether id identifies no type.
func (id ConcreteID) IsZero() bool { return id.t == nil }

// String returns a stable "pkg.Type" name suitable for logs and errors.
func (id ConcreteID) String() string {
	if id.t == nil {
		return "<nil>"
	}
	return uref.Name(id.t)
}

// Implements reports whether the concrete type natively implements iface.
func (id ConcreteID) Implements(iface InterfaceID) bool {
	return uref.Implements(id.t, iface.t)
}

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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"unsafe"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotInterface indicates that an interface type was required
	// but a concrete type was provided.
	ErrReflectNotInterface = errors.New("reflect: type is not an interface")
	// ErrReflectIsInterface indicates that a concrete type was required
	// but an interface type was provided.
	ErrReflectIsInterface = errors.New("reflect: type is an interface")
	// ErrReflectNotAddressable indicates that a value has no stable identity
	// (it is not pointer-shaped) and cannot be exclusively borrowed.
	ErrReflectNotAddressable = errors.New("reflect: value has no pointer identity")
	// ErrReflectNilPointer is returned when a pointer-shaped value is nil.
	ErrReflectNilPointer = errors.New("reflect: nil pointer has no identity")
)

// Interface returns t unchanged if it is an interface type.
func Interface(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() != reflect.Interface {
		return nil, ErrReflectNotInterface
	}
	return t, nil
}

// Concrete returns t unchanged if it is not an interface type.
//
// Dynamic types stored in an interface value are never interfaces, so every
// reflect.TypeOf(v) with v != nil passes this check.
func Concrete(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() == reflect.Interface {
		return nil, ErrReflectIsInterface
	}
	return t, nil
}

// Implements reports whether t implements the interface type iface.
// Nil types and non-interface targets yield false instead of panicking.
func Implements(t, iface reflect.Type) bool {
	if t == nil || iface == nil || iface.Kind() != reflect.Interface {
		return false
	}
	return t.Implements(iface)
}

// Identity returns the address that identifies the object behind v.
//
// Only pointer-shaped values (pointers, maps, channels, unsafe pointers)
// have an identity: copying any other value produces an unrelated object,
// so there is nothing to alias.
func Identity(v any) (unsafe.Pointer, error) {
	if v == nil {
		return nil, ErrReflectNilPointer
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return nil, ErrReflectNilPointer
		}
		return rv.UnsafePointer(), nil
	default:
		return nil, ErrReflectNotAddressable
	}
}

// Name derives a stable, human-readable "pkg.Type" name for t.
//
// Naming policy:
//   - named types: path.Base(PkgPath) + "." + Name, type parameters stripped;
//   - builtin named types (no package): Name as-is (e.g. "int", "error");
//   - pointers: one "*" per level followed by the name of the pointee;
//   - anything else unnamed: t.String().
func Name(t reflect.Type) string {
	if t == nil {
		return ""
	}
	stars := 0
	for t.Kind() == reflect.Ptr && t.Name() == "" {
		stars++
		t = t.Elem()
	}

	name := t.String()
	if n := t.Name(); n != "" {
		name = stripTypeParams(n)
		if p := t.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	}
	return strings.Repeat("*", stars) + name
}

func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

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

import (
	"errors"
	"fmt"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/token"
)

var (
	// ErrNotImplemented is returned by Declare when Self names an interface
	// the concrete type does not implement.
	ErrNotImplemented = errors.New("anydyn: concrete type does not implement interface")
	// ErrInvalidImpl is returned by Declare for a zero Impl or a nil view function.
	ErrInvalidImpl = errors.New("anydyn: invalid implementation declaration")
	// ErrDuplicateImpl is returned by Declare when one call lists an interface twice.
	ErrDuplicateImpl = errors.New("anydyn: interface declared twice")
)

// Impl declares that concrete type C can be viewed as one interface.
// Build it with Self or Via.
type Impl[C any] struct {
	iface  token.InterfaceID
	view   func(C) any
	native bool
}

// Self declares that C implements J with its own methods.
// Declare verifies this when it runs.
func Self[C, J any]() Impl[C] {
	return Impl[C]{
		iface:  token.InterfaceOf[J](),
		view:   func(c C) any { return c },
		native: true,
	}
}

// Via declares that C is viewed as J through view, typically an adapter
// that wraps the value. view must return a J bound to its argument.
func Via[C, J any](view func(C) J) Impl[C] {
	im := Impl[C]{iface: token.InterfaceOf[J]()}
	if view != nil {
		im.view = func(c C) any { return view(c) }
	}
	return im
}

// Interface returns the interface this Impl declares.
func (im Impl[C]) Interface() token.InterfaceID { return im.iface }

// Declare registers every interface C exposes in the global registry.
//
//	func init() {
//	    anydyn.MustDeclare[*Widget](
//	        anydyn.Self[*Widget, Drawable](),
//	        anydyn.Self[*Widget, Serializable](),
//	        anydyn.Via[*Widget, Audible](newWidgetAudio),
//	    )
//	}
func Declare[C any](impls ...Impl[C]) error {
	return DeclareIn(Registry(), impls...)
}

// MustDeclare is like Declare but panics on error. Use it from init.
func MustDeclare[C any](impls ...Impl[C]) {
	if err := Declare(impls...); err != nil {
		panic(err)
	}
}

// DeclareIn registers impls for C in reg.
//
// Every Impl is checked before anything is inserted, so a malformed
// declaration registers nothing. Conflicts with earlier registrations are
// reported by reg and stop at the first failing pair.
func DeclareIn[C any](reg apis.Registry, impls ...Impl[C]) error {
	c := token.ConcreteOf[C]()

	entries := make([]apis.Entry, 0, len(impls))
	seen := make(map[token.InterfaceID]struct{}, len(impls))
	for _, im := range impls {
		if im.iface.IsZero() || im.view == nil {
			return fmt.Errorf("%w: %s as %s", ErrInvalidImpl, c, im.iface)
		}
		if _, dup := seen[im.iface]; dup {
			return fmt.Errorf("%w: %s as %s", ErrDuplicateImpl, c, im.iface)
		}
		seen[im.iface] = struct{}{}
		if im.native && !c.Implements(im.iface) {
			return fmt.Errorf("%w: %s as %s", ErrNotImplemented, c, im.iface)
		}
		entries = append(entries, apis.Entry{Concrete: c, Interface: im.iface, Constructor: constructor(im.view)})
	}

	for _, e := range entries {
		if err := reg.Register(e); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		logger().Debugf("declared %s with %d interface(s)", c, len(entries))
	}
	return nil
}

// constructor adapts a typed view function to apis.Constructor.
// The registry only hands it values of type C.
func constructor[C any](view func(C) any) apis.Constructor {
	return func(data any) any {
		c, ok := data.(C)
		if !ok {
			return nil
		}
		return view(c)
	}
}

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

package ref

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/anydyn/token"
	uref "dirpx.dev/anydyn/utils/reflect"
)

var (
	// ErrBorrowed is returned when an object is already exclusively borrowed.
	ErrBorrowed = errors.New("anydyn(ref): object is already exclusively borrowed")
	// ErrExpired is returned when a RefMut is used after its Borrow scope ended.
	ErrExpired = errors.New("anydyn(ref): exclusive reference used outside its borrow")
	// ErrAliased is returned when a RefMut already has a live derived reference.
	ErrAliased = errors.New("anydyn(ref): exclusive reference already has a live derived reference")
	// ErrNotAddressable is returned when the object has no pointer identity.
	ErrNotAddressable = errors.New("anydyn(ref): object has no pointer identity")
)

const (
	stateActive int32 = iota
	stateDerived
	stateReleased
)

// borrows tracks live exclusive borrows by object address.
var borrows sync.Map // map[unsafe.Pointer]*RefMut

// RefMut is an erased exclusive reference. See Borrow.
type RefMut struct {
	ref   Ref
	state atomic.Int32
}

// Borrow erases r exclusively and runs fn with the resulting RefMut.
//
// While fn runs no other Borrow of the same object succeeds (ErrBorrowed).
// The RefMut is only valid until fn returns; afterwards every use reports
// ErrExpired. r must be pointer-shaped (pointer, map or channel).
func Borrow[I any](r I, fn func(m *RefMut) error) error {
	e := Erase(r)
	if e.IsZero() {
		return ErrNilData
	}
	key, err := uref.Identity(e.data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotAddressable, e.concrete, err)
	}

	m := &RefMut{ref: e}
	if _, loaded := borrows.LoadOrStore(key, m); loaded {
		return fmt.Errorf("%w: %s", ErrBorrowed, e.concrete)
	}
	defer func() {
		// Expire before releasing the slot so a stale RefMut can never
		// coexist with the next borrow of the same object.
		m.state.Store(stateReleased)
		borrows.Delete(key)
	}()

	return fn(m)
}

// Acquire marks m as having a live derived reference and returns the
// underlying Ref for resolution. The derived reference must not be used
// after release is called.
func (m *RefMut) Acquire() (r Ref, release func(), err error) {
	if m == nil {
		return Ref{}, nil, ErrExpired
	}
	if !m.state.CompareAndSwap(stateActive, stateDerived) {
		if m.state.Load() == stateReleased {
			return Ref{}, nil, ErrExpired
		}
		return Ref{}, nil, ErrAliased
	}
	return m.ref, func() { m.state.CompareAndSwap(stateDerived, stateActive) }, nil
}

// Concrete returns the token of the borrowed object's type.
func (m *RefMut) Concrete() token.ConcreteID { return m.ref.concrete }

// Interface returns the token of the interface the object was borrowed as.
func (m *RefMut) Interface() token.InterfaceID { return m.ref.iface }

// Live reports whether the Borrow scope that produced m is still open.
func (m *RefMut) Live() bool { return m != nil && m.state.Load() != stateReleased }

// TryAsMut runs fn with m as J when J is the interface m was borrowed as.
// It reports whether fn ran. The J passed to fn must not escape fn.
func TryAsMut[J any](m *RefMut, fn func(J) error) (bool, error) {
	r, release, err := m.Acquire()
	if err != nil {
		return false, err
	}
	defer release()

	j, ok := TryAs[J](r)
	if !ok {
		return false, nil
	}
	return true, fn(j)
}

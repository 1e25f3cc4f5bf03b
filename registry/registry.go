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

package registry

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/slices"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/config"
	"dirpx.dev/anydyn/token"
)

var (
	// ErrZeroConcrete is returned when an entry has no concrete type.
	ErrZeroConcrete = errors.New("anydyn(registry): zero concrete token")
	// ErrZeroInterface is returned when an entry has no target interface.
	ErrZeroInterface = errors.New("anydyn(registry): zero interface token")
	// ErrNilConstructor is returned when an entry has no constructor.
	ErrNilConstructor = errors.New("anydyn(registry): nil constructor")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a (concrete, interface) pair under the reject policy.
	ErrConflictingRegistration = errors.New("anydyn(registry): conflicting registration")
	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("anydyn(registry): registry is sealed")
)

// logger is looked up per call so a backend configured after package
// initialization still receives the messages.
func logger() commonlog.Logger { return commonlog.GetLogger("anydyn.registry") }

// New constructs a Registry that resolves duplicates according to cfg.
// Only Duplicates is used here.
func New(cfg apis.Config) apis.Registry {
	switch cfg.Duplicates {
	case apis.DuplicateReject, apis.DuplicateReplace:
	default:
		cfg.Duplicates = config.DefaultDuplicates
	}
	return &registry{cfg: cfg}
}

// key is the composite lookup key. Both halves are comparable type tokens.
type key struct {
	c token.ConcreteID
	i token.InterfaceID
}

// registry is a read-mostly Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for duplicate handling.
	cfg apis.Config
	// mu guards write-side consistency, the counter and sealing.
	mu sync.Mutex
	// m maps key to apis.Entry.
	m sync.Map
	// count tracks the number of registered entries.
	count int
	// sealed rejects registrations once set.
	sealed atomic.Bool
}

// Register inserts e, following cfg.Duplicates for an existing pair.
func (r *registry) Register(e apis.Entry) error {
	// Validate inputs early.
	if e.Concrete.IsZero() {
		return ErrZeroConcrete
	}
	if e.Interface.IsZero() {
		return ErrZeroInterface
	}
	if e.Constructor == nil {
		return fmt.Errorf("%w: %s as %s", ErrNilConstructor, e.Concrete, e.Interface)
	}
	k := key{c: e.Concrete, i: e.Interface}

	// Fast read path: reject without locking.
	if r.sealed.Load() {
		return r.sealedErr(e)
	}
	if _, ok := r.m.Load(k); ok && r.cfg.Duplicates == apis.DuplicateReject {
		return r.conflict(e)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine sealed or stored meanwhile.
	if r.sealed.Load() {
		return r.sealedErr(e)
	}
	if _, ok := r.m.Load(k); ok {
		if r.cfg.Duplicates == apis.DuplicateReject {
			return r.conflict(e)
		}
		r.m.Store(k, e)
		logger().Debugf("replaced %s as %s", e.Concrete, e.Interface)
		return nil
	}

	r.m.Store(k, e)
	r.count++
	logger().Debugf("registered %s as %s", e.Concrete, e.Interface)
	return nil
}

func (r *registry) conflict(e apis.Entry) error {
	logger().Warningf("rejected duplicate registration of %s as %s", e.Concrete, e.Interface)
	return fmt.Errorf("%w: %s as %s", ErrConflictingRegistration, e.Concrete, e.Interface)
}

func (r *registry) sealedErr(e apis.Entry) error {
	logger().Warningf("rejected registration of %s as %s after seal", e.Concrete, e.Interface)
	return fmt.Errorf("%w: %s as %s", ErrSealed, e.Concrete, e.Interface)
}

// Lookup returns the entry for the pair if present.
func (r *registry) Lookup(c token.ConcreteID, i token.InterfaceID) (apis.Entry, bool) {
	if c.IsZero() || i.IsZero() {
		return apis.Entry{}, false
	}
	if v, ok := r.m.Load(key{c: c, i: i}); ok {
		return v.(apis.Entry), true
	}
	return apis.Entry{}, false
}

// Entries returns a snapshot ordered by concrete then interface name.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Entry))
		return true
	})
	slices.SortFunc(entries, func(a, b apis.Entry) int {
		return cmp.Or(
			strings.Compare(a.Concrete.String(), b.Concrete.String()),
			strings.Compare(a.Interface.String(), b.Interface.String()),
		)
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Seal rejects all further registrations.
func (r *registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed.Swap(true) {
		logger().Infof("sealed with %d entries", r.count)
	}
}

// Sealed reports whether Seal has been called.
func (r *registry) Sealed() bool {
	return r.sealed.Load()
}

// Reset clears all registered entries and the sealed flag.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
	r.sealed.Store(false)
}

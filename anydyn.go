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
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/builder"
	"dirpx.dev/anydyn/config"
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/token"
)

// init initializes the global state.
func init() {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	st.Store(&state{cfg: cfg, bld: b, reg: reg, res: b.BuildResolver(cfg, reg, nil, nil)})
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("anydyn: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("anydyn: builder returned nil resolver")
)

func logger() commonlog.Logger { return commonlog.GetLogger("anydyn") }

// Erase captures r as an erased shared reference. See ref.Erase.
func Erase[I any](r I) ref.Ref {
	return ref.Erase(r)
}

// Borrow erases r exclusively for the duration of fn. See ref.Borrow.
func Borrow[I any](r I, fn func(m *ref.RefMut) error) error {
	return ref.Borrow(r, fn)
}

// TryAs returns r as J only when J is the interface r was erased from.
func TryAs[J any](r ref.Ref) (J, bool) {
	return ref.TryAs[J](r)
}

// Downcast recovers r as interface J.
//
// The erased interface itself is answered without any lookup. Otherwise the
// global resolver decides; an object that does not expose J yields
// (zero, false), which is an ordinary outcome rather than an error. The
// result must not be used longer than the reference r was erased from.
func Downcast[J any](r ref.Ref) (J, bool) {
	if j, ok := ref.TryAs[J](r); ok {
		return j, true
	}
	var zero J
	if r.IsZero() {
		return zero, false
	}
	s := st.Load()
	view, ok := s.res.Resolve(r, token.InterfaceOf[J](), s.cfg)
	if !ok {
		return zero, false
	}
	j, ok := view.(J)
	return j, ok
}

// DowncastMut runs fn with the exclusively borrowed object as interface J.
// It reports whether fn ran; a miss is (false, nil). While fn runs, m hands
// out no other derived reference, and the J passed to fn must not escape it.
func DowncastMut[J any](m *ref.RefMut, fn func(J) error) (bool, error) {
	r, release, err := m.Acquire()
	if err != nil {
		return false, err
	}
	defer release()

	j, ok := Downcast[J](r)
	if !ok {
		return false, nil
	}
	return true, fn(j)
}

// Register adds one (concrete, interface) constructor to the global registry.
// Call it during initialization, before concurrent casting starts.
func Register(c token.ConcreteID, i token.InterfaceID, ctor apis.Constructor) error {
	return st.Load().reg.Register(apis.Entry{Concrete: c, Interface: i, Constructor: ctor})
}

// Seal freezes the global registry; later registrations fail with
// registry.ErrSealed. Rebuilds triggered by SetConfig keep the seal.
func Seal() {
	st.Load().reg.Seal()
}

// SetAll replaces the whole snapshot in one step. A nil cfg or bld keeps
// the current one; ext is always replaced. A non-nil reg or res is installed
// and pinned, a nil one is rebuilt by the builder and left unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	next := &state{cfg: ncfg, ext: ext, bld: nbld, reg: reg, res: res}
	if next.reg == nil {
		next.reg = nbld.BuildRegistry(ncfg, old.reg, ext)
	} else {
		next.preg = true
	}
	if next.res == nil {
		next.res = nbld.BuildResolver(ncfg, next.reg, old.res, ext)
	} else {
		next.pres = true
	}
	publish(next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds
// the non-pinned registry and resolver.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.cfg = cfg
	rebuild(old, &next, true, true)
	publish(&next)
}

// LoadConfig reads a YAML or TOML file and applies it with SetConfig.
func LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger().Infof("loaded cast config from %s (duplicates=%s native_fallback=%t verify_views=%t)",
		path, cfg.Duplicates, cfg.NativeFallback, cfg.VerifyViews)
	SetConfig(cfg)
	return nil
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry, rebuilding the
// resolver over it unless the resolver is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg = reg
	next.preg = true
	rebuild(old, &next, false, true)
	publish(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(s *state) {
		s.res = res
		s.pres = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the non-pinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.bld = b
	rebuild(old, &next, true, true)
	publish(&next)
}

// SetExt replaces the builder extension payload and rebuilds unpinned layers.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.ext = ext
	rebuild(old, &next, true, true)
	publish(&next)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() {
	update(func(s *state) { s.preg = true })
}

// UnpinRegistry allows automatic rebuilds of the global registry again.
func UnpinRegistry() {
	update(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() {
	update(func(s *state) { s.pres = true })
}

// UnpinResolver allows automatic rebuilds of the global resolver again.
func UnpinResolver() {
	update(func(s *state) { s.pres = false })
}

// rebuild fills next.reg / next.res from next.bld for every non-pinned layer
// selected by the flags. The resolver is always built over next.reg.
func rebuild(old, next *state, reg, res bool) {
	if reg && !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if res && !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
}

// update applies fn to a copy of the current state and publishes it.
func update(fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	publish(&next)
}

// publish validates s and stores it. Callers hold buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes snapshot writers.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; never mutate fields of a published
// state. Writers copy it, adjust the copy and swap it in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the opaque extension payload handed to the builder.
	ext any
	// reg is the global cast registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}

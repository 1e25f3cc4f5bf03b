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

package strategy_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/config"
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/registry"
	"dirpx.dev/anydyn/strategy"
	"dirpx.dev/anydyn/token"
)

type Drawable interface{ Draw() string }
type Serializable interface{ ToBytes() []byte }
type Audible interface{ Play() string }

type Widget struct{ label string }

func (w *Widget) Draw() string     { return "widget:" + w.label }
func (w *Widget) ToBytes() []byte { return []byte(w.label) }

// Speaker answers casts itself.
type Speaker struct{ refuse bool }

func (*Speaker) Draw() string { return "speaker" }

func (s *Speaker) CastTo(target token.InterfaceID) (any, bool) {
	if s.refuse {
		return nil, false
	}
	if target == token.InterfaceOf[Audible]() {
		return speakerAudio{s}, true
	}
	if target == token.InterfaceOf[Serializable]() {
		return s, true // *Speaker does not implement Serializable: bad view
	}
	return nil, false
}

type speakerAudio struct{ s *Speaker }

func (speakerAudio) Play() string { return "beep" }

func erasedWidget() (*Widget, ref.Ref) {
	w := &Widget{label: "w"}
	var d Drawable = w
	return w, ref.Erase(d)
}

func mustPanicWith(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	fn()
}

func TestIdentityStrategy(t *testing.T) {
	s := strategy.NewIdentityStrategy()
	cfg := config.DefaultConfig()
	w, r := erasedWidget()

	view, ok := s.TryResolve(r, token.InterfaceOf[Drawable](), cfg)
	if !ok || view != any(w) {
		t.Fatalf("same interface: got (%v,%v)", view, ok)
	}
	if _, ok := s.TryResolve(r, token.InterfaceOf[Serializable](), cfg); ok {
		t.Fatal("other interface should fall through")
	}
	if _, ok := s.TryResolve(ref.Ref{}, token.InterfaceOf[Drawable](), cfg); ok {
		t.Fatal("zero ref should fall through")
	}
}

func TestCasterStrategy(t *testing.T) {
	s := strategy.NewCasterStrategy()
	cfg := config.DefaultConfig()

	var d Drawable = &Speaker{}
	r := ref.Erase(d)

	view, ok := s.TryResolve(r, token.InterfaceOf[Audible](), cfg)
	if !ok {
		t.Fatal("caster did not handle Audible")
	}
	if a, ok := view.(Audible); !ok || a.Play() != "beep" {
		t.Fatalf("unexpected view %T", view)
	}

	if _, ok := s.TryResolve(r, token.InterfaceOf[Drawable](), cfg); ok {
		t.Fatal("caster answered an interface it did not offer")
	}

	d = &Speaker{refuse: true}
	if _, ok := s.TryResolve(ref.Erase(d), token.InterfaceOf[Audible](), cfg); ok {
		t.Fatal("refusal should fall through")
	}

	// Non-casters are ignored.
	_, wr := erasedWidget()
	if _, ok := s.TryResolve(wr, token.InterfaceOf[Audible](), cfg); ok {
		t.Fatal("non-caster handled")
	}
}

func TestCasterStrategy_BadView(t *testing.T) {
	s := strategy.NewCasterStrategy()
	var d Drawable = &Speaker{}
	r := ref.Erase(d)

	mustPanicWith(t, strategy.ErrViewMismatch, func() {
		s.TryResolve(r, token.InterfaceOf[Serializable](), config.DefaultConfig())
	})

	lax := config.NewConfig(config.WithVerifyViews(false))
	if _, ok := s.TryResolve(r, token.InterfaceOf[Serializable](), lax); ok {
		t.Fatal("bad view without verification should be a miss")
	}
}

func TestRegistryStrategy(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	if err := reg.Register(apis.Entry{
		Concrete:    token.ConcreteOf[*Widget](),
		Interface:   token.InterfaceOf[Serializable](),
		Constructor: func(data any) any { return data },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s := strategy.NewRegistryStrategy(reg)
	w, r := erasedWidget()

	view, ok := s.TryResolve(r, token.InterfaceOf[Serializable](), cfg)
	if !ok || view != any(w) {
		t.Fatalf("registered pair: got (%v,%v)", view, ok)
	}
	if _, ok := s.TryResolve(r, token.InterfaceOf[Audible](), cfg); ok {
		t.Fatal("unregistered pair handled")
	}
	if _, ok := strategy.NewRegistryStrategy(nil).TryResolve(r, token.InterfaceOf[Serializable](), cfg); ok {
		t.Fatal("nil registry handled")
	}
}

func TestRegistryStrategy_BadConstructor(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	_ = reg.Register(apis.Entry{
		Concrete:    token.ConcreteOf[*Widget](),
		Interface:   token.InterfaceOf[Audible](),
		Constructor: func(data any) any { return data }, // *Widget is not Audible
	})
	s := strategy.NewRegistryStrategy(reg)
	_, r := erasedWidget()

	mustPanicWith(t, strategy.ErrViewMismatch, func() {
		s.TryResolve(r, token.InterfaceOf[Audible](), cfg)
	})
}

func TestNativeStrategy(t *testing.T) {
	s := strategy.NewNativeStrategy()
	w, r := erasedWidget()

	if _, ok := s.TryResolve(r, token.InterfaceOf[Serializable](), config.DefaultConfig()); ok {
		t.Fatal("native fallback must be opt-in")
	}

	on := config.NewConfig(config.WithNativeFallback(true))
	view, ok := s.TryResolve(r, token.InterfaceOf[Serializable](), on)
	if !ok || view != any(w) {
		t.Fatalf("native: got (%v,%v)", view, ok)
	}
	if _, ok := s.TryResolve(r, token.InterfaceOf[Audible](), on); ok {
		t.Fatal("native handled an interface the type lacks")
	}
}

func TestNativeStrategy_Concurrent_NoRace(t *testing.T) {
	s := strategy.NewNativeStrategy()
	on := config.NewConfig(config.WithNativeFallback(true))
	_, r := erasedWidget()
	targets := []token.InterfaceID{
		token.InterfaceOf[Drawable](), token.InterfaceOf[Serializable](), token.InterfaceOf[Audible](),
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				target := targets[(i+id)%len(targets)]
				_, ok := s.TryResolve(r, target, on)
				if want := target != token.InterfaceOf[Audible](); ok != want {
					t.Errorf("TryResolve(%v) = %v, want %v", target, ok, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

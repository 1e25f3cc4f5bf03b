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

package token_test

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/anydyn/token"
	uref "dirpx.dev/anydyn/utils/reflect"
)

type Drawable interface{ Draw() string }
type Serializable interface{ ToBytes() []byte }

type Widget struct{ label string }

func (w *Widget) Draw() string     { return "widget:" + w.label }
func (w *Widget) ToBytes() []byte { return []byte(w.label) }

type Gadget struct{}

func TestInterfaceOf_StableAndDistinct(t *testing.T) {
	if token.InterfaceOf[Drawable]() != token.InterfaceOf[Drawable]() {
		t.Fatal("InterfaceOf[Drawable] not stable")
	}
	if token.InterfaceOf[Drawable]() == token.InterfaceOf[Serializable]() {
		t.Fatal("distinct interfaces share a token")
	}
	if token.InterfaceOf[io.Reader]() == token.InterfaceOf[io.Writer]() {
		t.Fatal("io.Reader and io.Writer share a token")
	}
}

func TestConcreteOf_StableAndDistinct(t *testing.T) {
	if token.ConcreteOf[*Widget]() != token.ConcreteOf[*Widget]() {
		t.Fatal("ConcreteOf[*Widget] not stable")
	}
	if token.ConcreteOf[*Widget]() == token.ConcreteOf[Widget]() {
		t.Fatal("*Widget and Widget share a token")
	}
	if token.ConcreteOf[*Widget]() == token.ConcreteOf[*Gadget]() {
		t.Fatal("distinct concrete types share a token")
	}
}

func TestConcreteOfValue_MatchesStaticToken(t *testing.T) {
	var d Drawable = &Widget{}
	if got, want := token.ConcreteOfValue(d), token.ConcreteOf[*Widget](); got != want {
		t.Fatalf("ConcreteOfValue = %v, want %v", got, want)
	}
	if !token.ConcreteOfValue(nil).IsZero() {
		t.Fatal("ConcreteOfValue(nil) should be zero")
	}
}

func TestTokens_AsMapKeys(t *testing.T) {
	m := map[token.InterfaceID]string{
		token.InterfaceOf[Drawable]():     "drawable",
		token.InterfaceOf[Serializable](): "serializable",
	}
	m[token.InterfaceOf[Drawable]()] = "drawable2"
	if len(m) != 2 || m[token.InterfaceOf[Drawable]()] != "drawable2" {
		t.Fatalf("unexpected map contents: %v", m)
	}
}

func TestInterfaceOf_PanicsForConcrete(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, uref.ErrReflectNotInterface) {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	_ = token.InterfaceOf[*Widget]()
}

func TestConcreteOf_PanicsForInterface(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, uref.ErrReflectIsInterface) {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	_ = token.ConcreteOf[Drawable]()
}

func TestFor_Errors(t *testing.T) {
	if _, err := token.InterfaceFor(reflect.TypeOf(Widget{})); !errors.Is(err, uref.ErrReflectNotInterface) {
		t.Fatalf("InterfaceFor(Widget): got %v", err)
	}
	if _, err := token.ConcreteFor(nil); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("ConcreteFor(nil): got %v", err)
	}
	id, err := token.InterfaceFor(reflect.TypeFor[Drawable]())
	if err != nil || id != token.InterfaceOf[Drawable]() {
		t.Fatalf("InterfaceFor(Drawable): got (%v,%v)", id, err)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		name string
		got  fmt.Stringer
		want string
	}{
		{"interface", token.InterfaceOf[Drawable](), "token_test.Drawable"},
		{"pointer concrete", token.ConcreteOf[*Widget](), "*token_test.Widget"},
		{"zero interface", token.InterfaceID{}, "<nil>"},
		{"zero concrete", token.ConcreteID{}, "<nil>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if s := tc.got.String(); s != tc.want {
				t.Fatalf("String() = %q, want %q", s, tc.want)
			}
		})
	}
}

func TestImplements(t *testing.T) {
	w := token.ConcreteOf[*Widget]()
	if !w.Implements(token.InterfaceOf[Drawable]()) {
		t.Fatal("*Widget should implement Drawable")
	}
	if token.ConcreteOf[Widget]().Implements(token.InterfaceOf[Drawable]()) {
		t.Fatal("Widget (value) should not implement Drawable")
	}
	if w.Implements(token.InterfaceID{}) {
		t.Fatal("zero interface must never be implemented")
	}
}

func TestTokens_Concurrent_NoRace(t *testing.T) {
	want := token.InterfaceOf[Drawable]()
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				if token.InterfaceOf[Drawable]() != want {
					t.Error("token changed under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

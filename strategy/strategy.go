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

// Package strategy holds the resolution steps chained by a resolver.
package strategy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/token"
	uref "dirpx.dev/anydyn/utils/reflect"
)

// ErrViewMismatch is the panic value raised when a constructor or caster
// returns a view that does not implement the requested interface while
// Config.VerifyViews is set.
var ErrViewMismatch = errors.New("anydyn(strategy): view does not implement target interface")

func logger() commonlog.Logger { return commonlog.GetLogger("anydyn.strategy") }

// checkView validates view against target. A bad view from integration code
// is a programming error: with VerifyViews it fails loudly, otherwise it
// degrades to a miss.
func checkView(view any, src ref.Ref, target token.InterfaceID, cfg apis.Config, via string) (any, bool) {
	if view != nil && uref.Implements(reflect.TypeOf(view), target.Type()) {
		return view, true
	}
	if !cfg.VerifyViews {
		return nil, false
	}
	err := fmt.Errorf("%w: %s produced %T for %s as %s", ErrViewMismatch, via, view, src.Concrete(), target)
	logger().Critical(err.Error())
	panic(err)
}

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

package strategy

import (
	"sync"

	"dirpx.dev/anydyn/apis"
	"dirpx.dev/anydyn/ref"
	"dirpx.dev/anydyn/token"
)

// NewNativeStrategy returns the strategy that casts to interfaces the
// concrete type implements natively. It only acts when cfg.NativeFallback is set.
func NewNativeStrategy() apis.Strategy {
	return nativeStrategy{}
}

type nativeStrategy struct{}

var _ apis.Strategy = (*nativeStrategy)(nil)

type cacheKey struct {
	c token.ConcreteID
	i token.InterfaceID
}

var implementsCache sync.Map // key: cacheKey, val: bool

func (nativeStrategy) TryResolve(src ref.Ref, target token.InterfaceID, cfg apis.Config) (any, bool) {
	if !cfg.NativeFallback || src.IsZero() || target.IsZero() {
		return nil, false
	}
	if !implements(src.Concrete(), target) {
		return nil, false
	}
	return src.Data(), true
}

func implements(c token.ConcreteID, i token.InterfaceID) bool {
	key := cacheKey{c: c, i: i}
	if v, ok := implementsCache.Load(key); ok {
		return v.(bool)
	}
	ok := c.Implements(i)
	implementsCache.Store(key, ok)
	return ok
}

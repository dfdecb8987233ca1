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
	"reflect"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is a zero-cost fast path: if v implements apis.Namer,
// return its ClassName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if v implements apis.Namer and returns its ClassName().
func (*namerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	if n, ok := v.(apis.Namer); ok {
		return n.ClassName(), true
	}
	return "", false
}

// TryResolveType handles types whose zero value implements apis.Namer.
// Value receivers are required for this path; pointer-only implementations
// are tried through a freshly allocated instance.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	namer := reflect.TypeFor[apis.Namer]()
	switch {
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(namer):
		return reflect.New(t).Interface().(apis.Namer).ClassName(), true
	case t.Kind() == reflect.Pointer && t.Implements(namer):
		return reflect.New(t.Elem()).Interface().(apis.Namer).ClassName(), true
	}
	return "", false
}

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
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/mrpin/mrpin-rocketamf/apis"
	uref "github.com/mrpin/mrpin-rocketamf/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives class names via
// reflection using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes a stable "pkg.Type".
// It unwraps pointers via Normalize and strips generic instantiation
// parameters. Unnamed and builtin types have no class and are not handled.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// typeNameCache caches resolved type names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolve computes the class name for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return TypeName(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the class name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return TypeName(t, cfg)
}

// TypeName returns the "pkg.Type" class name of t with memoization.
// Builtin and unnamed types yield ("", false).
func TypeName(t reflect.Type, cfg apis.Config) (string, bool) {
	key := cacheKey{t: t, maxUnwrap: int16(cfg.MaxUnwrap)}
	if v, ok := typeNameCache.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}

	name := ""
	if base, err := uref.Normalize(t, cfg); err == nil && base.PkgPath() != "" {
		name = path.Base(base.PkgPath()) + "." + stripTypeParams(base.Name())
	}

	typeNameCache.Store(key, name)
	return name, name != ""
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

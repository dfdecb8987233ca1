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
// Package resolver turns Go values and types into local class names by
// consulting naming strategies in priority order.
package resolver

import (
	"reflect"
	"slices"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// New returns a resolver consulting strategies in the order given; nil
// entries are dropped. The first strategy that recognizes a value names its
// class, even when the name it reports is empty.
func New(strategies ...apis.Strategy) apis.Resolver {
	return classNames(slices.DeleteFunc(slices.Clone(strategies), func(s apis.Strategy) bool {
		return s == nil
	}))
}

// classNames is the ordered strategy list. It is never modified after New.
type classNames []apis.Strategy

// Resolve returns the local class name of v, or "" when no strategy
// recognizes it.
func (c classNames) Resolve(v any, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolve(v, cfg) })
}

// ResolveType is Resolve for a type.
func (c classNames) ResolveType(t reflect.Type, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolveType(t, cfg) })
}

func (c classNames) first(try func(apis.Strategy) (string, bool)) string {
	for _, s := range c {
		if name, ok := try(s); ok {
			return name
		}
	}
	return ""
}

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

// NewCatalogStrategy creates an apis.Strategy backed by an apis.Catalog.
func NewCatalogStrategy(cat apis.Catalog) apis.Strategy {
	return &catalogStrategy{cat: cat}
}

// catalogStrategy returns the name a class was explicitly registered under.
type catalogStrategy struct {
	cat apis.Catalog
}

// Ensure catalogStrategy implements apis.Strategy.
var _ apis.Strategy = (*catalogStrategy)(nil)

// TryResolve looks up v's type in the catalog.
func (s *catalogStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType looks up t in the catalog.
func (s *catalogStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.cat == nil {
		return "", false
	}
	c, ok := s.cat.LookupType(t)
	if !ok {
		return "", false
	}
	return c.Name, true
}

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

package builder

import (
	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/cache"
	"github.com/mrpin/mrpin-rocketamf/discovery"
	"github.com/mrpin/mrpin-rocketamf/resolver"
	"github.com/mrpin/mrpin-rocketamf/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildResolver builds the local class name resolver: a Namer fast path, then
// names registered in cat, then the reflect fallback ("pkg.Type").
func (b *builder) BuildResolver(_ apis.Config, cat apis.Catalog) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewCatalogStrategy(cat),
		strategy.NewReflectStrategy(),
	)
}

// BuildDiscoverer builds a property discoverer that also sees the extension
// accessors registered in cat.
func (b *builder) BuildDiscoverer(cfg apis.Config, cat apis.Catalog) apis.Discoverer {
	return discovery.New(cfg, cat)
}

// BuildCache builds an empty cache of the configured mode in front of d.
func (b *builder) BuildCache(cfg apis.Config, d apis.Discoverer) apis.Cache {
	return cache.New(cfg, d)
}

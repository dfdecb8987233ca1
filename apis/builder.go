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

package apis

// Builder composes the per-mapper collaborators from a Config.
// Mappers call it once at construction; implementations must not retain
// per-mapper state between calls.
type Builder interface {
	// BuildResolver constructs the local class name resolver.
	BuildResolver(cfg Config, cat Catalog) Resolver
	// BuildDiscoverer constructs the property discoverer for cat's classes.
	BuildDiscoverer(cfg Config, cat Catalog) Discoverer
	// BuildCache constructs a fresh, empty property cache in front of d.
	BuildCache(cfg Config, d Discoverer) Cache
}

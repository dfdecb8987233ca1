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

package mapper

import "github.com/mrpin/mrpin-rocketamf/apis"

// Option configures a Mapper.
type Option func(*Mapper)

// WithConfig sets the naming, unwrapping and cache policy.
func WithConfig(cfg apis.Config) Option {
	return func(m *Mapper) { m.cfg = cfg }
}

// WithBuilder replaces the builder composing the resolver, discoverer and cache.
// A nil builder is ignored.
func WithBuilder(b apis.Builder) Option {
	return func(m *Mapper) {
		if b != nil {
			m.bld = b
		}
	}
}

// WithObserver reports discoveries and instantiations to o.
func WithObserver(o apis.Observer) Option {
	return func(m *Mapper) { m.obs = o }
}

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

import (
	"reflect"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// observedDiscoverer reports every actual discovery. Sitting behind the cache,
// it only sees misses.
type observedDiscoverer struct {
	next apis.Discoverer
	obs  apis.Observer
	res  apis.Resolver
	cfg  apis.Config
}

func (d observedDiscoverer) Discover(t reflect.Type) []apis.Property {
	props := d.next.Discover(t)
	d.obs.ObserveDiscovery(d.res.ResolveType(t, d.cfg), len(props))
	return props
}

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

// Package cache memoizes discovered class properties.
//
// Three modes are available, selected by apis.CacheMode:
//
//   - PerMapper: a plain map owned by one mapper, not safe for concurrent use.
//   - Synchronized: safe for a mapper shared by several goroutines; concurrent
//     misses for one class collapse into a single discovery.
//   - None: every call discovers again.
//
// Entries are keyed by the class type with pointers stripped up to the
// configured MaxUnwrap and are never invalidated; a cache lives exactly as
// long as its mapper.
package cache

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/mrpin/mrpin-rocketamf/apis"
	uref "github.com/mrpin/mrpin-rocketamf/utils/reflect"
)

// New returns an empty cache in front of d, in the mode cfg.Cache selects.
// Unknown modes behave as PerMapper.
func New(cfg apis.Config, d apis.Discoverer) apis.Cache {
	k := keyer{cfg: cfg}
	switch cfg.Cache {
	case apis.Synchronized:
		return &synced{keyer: k, d: d}
	case apis.None:
		return none{keyer: k, d: d}
	default:
		return &local{keyer: k, d: d, m: make(map[reflect.Type][]apis.Property)}
	}
}

// keyer strips pointers so that T and *T share one entry.
type keyer struct {
	cfg apis.Config
}

func (k keyer) key(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	return uref.Unwrap(t, k.cfg)
}

// local is the single-owner cache.
type local struct {
	keyer
	d apis.Discoverer
	m map[reflect.Type][]apis.Property
}

func (c *local) Properties(t reflect.Type) []apis.Property {
	k := c.key(t)
	if props, ok := c.m[k]; ok {
		return props
	}
	props := c.d.Discover(k)
	c.m[k] = props
	return props
}

func (c *local) Len() int { return len(c.m) }

// synced is the shared cache. Reads hit the sync.Map; misses go through
// singleflight so each class is discovered at most once.
type synced struct {
	keyer
	d     apis.Discoverer
	m     sync.Map // reflect.Type -> []apis.Property
	group singleflight.Group
	n     atomic.Int64
}

func (c *synced) Properties(t reflect.Type) []apis.Property {
	k := c.key(t)
	if v, ok := c.m.Load(k); ok {
		return v.([]apis.Property)
	}
	// Types with equal strings may still differ; the pointer keeps keys apart.
	v, _, _ := c.group.Do(fmt.Sprintf("%v@%p", k, k), func() (any, error) {
		if v, ok := c.m.Load(k); ok {
			return v, nil
		}
		props := c.d.Discover(k)
		if _, loaded := c.m.LoadOrStore(k, props); !loaded {
			c.n.Add(1)
		}
		return props, nil
	})
	return v.([]apis.Property)
}

func (c *synced) Len() int { return int(c.n.Load()) }

// none never stores anything.
type none struct {
	keyer
	d apis.Discoverer
}

func (c none) Properties(t reflect.Type) []apis.Property { return c.d.Discover(c.key(t)) }

func (none) Len() int { return 0 }

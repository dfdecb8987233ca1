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

package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/config"
	"github.com/mrpin/mrpin-rocketamf/strategy"
	uref "github.com/mrpin/mrpin-rocketamf/utils/reflect"
)

var (
	// ErrNilType is returned when a class without a Type is registered.
	ErrNilType = errors.New("rocketamf(catalog): class has no type")
	// ErrEmptyName is returned when no name is given and none can be derived.
	ErrEmptyName = errors.New("rocketamf(catalog): class has no name")
	// ErrUnknownClass is returned when extending a class that is not registered.
	ErrUnknownClass = errors.New("rocketamf(catalog): unknown class")
	// ErrInvalidAccessor is returned for accessors without a name, getter or setter.
	ErrInvalidAccessor = errors.New("rocketamf(catalog): accessor needs a name, getter and setter")
)

// New constructs a Catalog seeded with defaults. Reset returns to exactly this
// set. Invalid defaults are skipped.
func New(defaults ...apis.Class) apis.Catalog {
	c := &catalog{}
	for _, d := range defaults {
		if n, err := c.normalize(d); err == nil {
			c.defaults = append(c.defaults, n)
		}
	}
	c.reset()
	return c
}

// catalog is a RWMutex-guarded set of classes plus per-class extension accessors.
type catalog struct {
	mu sync.RWMutex
	// byName maps class name -> class.
	byName map[string]apis.Class
	// byType maps normalized type -> most recently registered name.
	byType map[reflect.Type]string
	// ext maps class name -> extension accessors in registration order.
	ext map[string][]apis.Accessor
	// defaults are reinstated by Reset.
	defaults []apis.Class
}

// normalize validates c, unwraps its type and derives a missing name.
func (c *catalog) normalize(cls apis.Class) (apis.Class, error) {
	if cls.Type == nil {
		return cls, ErrNilType
	}
	cfg := config.DefaultConfig()
	cls.Type = uref.Unwrap(cls.Type, cfg)
	if cls.Name == "" {
		name, ok := strategy.TypeName(cls.Type, cfg)
		if !ok {
			return cls, ErrEmptyName
		}
		cls.Name = name
	}
	return cls, nil
}

// reset must be called with mu held (or before publication).
func (c *catalog) reset() {
	c.byName = make(map[string]apis.Class, len(c.defaults))
	c.byType = make(map[reflect.Type]string, len(c.defaults))
	c.ext = make(map[string][]apis.Accessor)
	for _, d := range c.defaults {
		c.put(d)
	}
}

func (c *catalog) put(cls apis.Class) {
	if old, ok := c.byName[cls.Name]; ok && old.Type != cls.Type && c.byType[old.Type] == cls.Name {
		delete(c.byType, old.Type)
	}
	c.byName[cls.Name] = cls
	c.byType[cls.Type] = cls.Name
}

// Register adds or replaces a class. The same type may be registered under
// several names; type lookups return the latest one.
func (c *catalog) Register(cls apis.Class) error {
	cls, err := c.normalize(cls)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(cls)
	return nil
}

// Lookup returns the class registered under name.
func (c *catalog) Lookup(name string) (apis.Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cls, ok := c.byName[name]
	return cls, ok
}

// LookupType returns the class registered for t.
func (c *catalog) LookupType(t reflect.Type) (apis.Class, bool) {
	if t == nil {
		return apis.Class{}, false
	}
	t = uref.Unwrap(t, config.DefaultConfig())

	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.byType[t]
	if !ok {
		return apis.Class{}, false
	}
	return c.byName[name], true
}

// Extend attaches accessors to the class registered under name. An accessor
// with the name of an existing extension replaces it.
func (c *catalog) Extend(name string, accessors ...apis.Accessor) error {
	for _, a := range accessors {
		if a.Name == "" || a.Get == nil || a.Set == nil {
			return fmt.Errorf("%w: %q", ErrInvalidAccessor, a.Name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	// Copy on write: slices handed out by Accessors stay untouched.
	next := slices.Clone(c.ext[name])
	for _, a := range accessors {
		if i := slices.IndexFunc(next, func(x apis.Accessor) bool { return x.Name == a.Name }); i >= 0 {
			next[i] = a
			continue
		}
		next = append(next, a)
	}
	c.ext[name] = next
	return nil
}

// Accessors returns the extension accessors of t's class.
func (c *catalog) Accessors(t reflect.Type) []apis.Accessor {
	if t == nil {
		return nil
	}
	t = uref.Unwrap(t, config.DefaultConfig())

	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.byType[t]
	if !ok {
		return nil
	}
	return c.ext[name]
}

// Classes returns a snapshot of all classes sorted by name.
func (c *catalog) Classes() []apis.Class {
	c.mu.RLock()
	out := make([]apis.Class, 0, len(c.byName))
	for _, cls := range c.byName {
		out = append(out, cls)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b apis.Class) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Count returns the number of registered class names.
func (c *catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}

// Reset drops custom classes and all extensions and reinstates the defaults.
func (c *catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

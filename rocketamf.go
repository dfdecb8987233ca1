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

package rocketamf

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/builder"
	"github.com/mrpin/mrpin-rocketamf/catalog"
	"github.com/mrpin/mrpin-rocketamf/config"
	"github.com/mrpin/mrpin-rocketamf/mapper"
	"github.com/mrpin/mrpin-rocketamf/messages"
	"github.com/mrpin/mrpin-rocketamf/registry"
)

// init publishes the default state: built-in message classes and mappings.
func init() {
	st.Store(&state{
		cfg: config.DefaultConfig(),
		reg: newRegistry(),
		cat: newCatalog(),
		bld: builder.New(),
	})
}

var (
	// ErrNilSample is returned when MapType is given no sample value.
	ErrNilSample = errors.New("rocketamf: nil sample value")
	// ErrNilDefine is returned when Define is given no function.
	ErrNilDefine = errors.New("rocketamf: nil define function")
	// ErrNilFile is returned when Apply is given no file.
	ErrNilFile = errors.New("rocketamf: nil mapping file")
)

func newRegistry() apis.Registry { return registry.New(messages.Mappings()...) }

func newCatalog() apis.Catalog { return catalog.New(messages.Classes()...) }

// Map maps the remote name to the local class name in the global registry.
// The class itself may be registered later; it is looked up when an object
// is created.
func Map(remote, local string) error {
	return st.Load().reg.Map(remote, local)
}

// MapType registers the class of sample in the global catalog, unless it is
// already there, and maps remote to it.
func MapType(remote string, sample any) error {
	if sample == nil {
		return ErrNilSample
	}
	s := st.Load()

	t := reflect.TypeOf(sample)
	cls, ok := s.cat.LookupType(t)
	if !ok {
		cls = apis.Class{
			Name: s.bld.BuildResolver(s.cfg, s.cat).ResolveType(t, s.cfg),
			Type: t,
		}
		if err := s.cat.Register(cls); err != nil {
			return fmt.Errorf("register class for %q: %w", remote, err)
		}
		// Register may have derived the name or unwrapped the type.
		cls, _ = s.cat.LookupType(t)
	}
	return s.reg.Map(remote, cls.Name)
}

// RegisterClass adds cls to the global catalog.
func RegisterClass(cls apis.Class) error {
	return st.Load().cat.Register(cls)
}

// Define runs fn against the global registry. Concurrent Define, Reset and
// Set* calls are serialized.
func Define(fn func(m apis.Registry) error) error {
	if fn == nil {
		return ErrNilDefine
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	return fn(st.Load().reg)
}

// Reset drops custom mappings and reinstates the defaults. Classes registered
// in the catalog are kept.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Load().reg.Reset()
}

// ResetAll resets both the global registry and the global catalog.
func ResetAll() {
	buildMu.Lock()
	defer buildMu.Unlock()
	s := st.Load()
	s.reg.Reset()
	s.cat.Reset()
}

// NewMapper returns a mapper over the global registry and catalog using the
// global configuration and builder. opts are applied after those and may
// override them.
func NewMapper(opts ...mapper.Option) *mapper.Mapper {
	s := st.Load()
	all := make([]mapper.Option, 0, len(opts)+2)
	all = append(all, mapper.WithConfig(s.cfg), mapper.WithBuilder(s.bld))
	all = append(all, opts...)
	return mapper.New(s.reg, s.cat, all...)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// Catalog returns the global catalog.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the configuration used by mappers created from now on.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, reg: old.reg, cat: old.cat, bld: old.bld})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the builder used by mappers created from now on.
// A nil builder is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, reg: old.reg, cat: old.cat, bld: b})
}

// SetAll replaces the global state in one step.
//
// A nil cfg or bld leaves that component unchanged. A nil reg or cat is
// replaced by a fresh one holding only the defaults, which makes SetAll the
// way for tests to start from a clean state.
func SetAll(cfg *apis.Config, reg apis.Registry, cat apis.Catalog, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, reg: reg, cat: cat, bld: old.bld}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if next.reg == nil {
		next.reg = newRegistry()
	}
	if next.cat == nil {
		next.cat = newCatalog()
	}
	st.Store(next)
}

// Apply installs the configuration of f and adds its mappings, in order, to
// the global registry. Mappings already present are kept. f is validated
// first; an invalid file changes nothing.
func Apply(f *config.File) error {
	if f == nil {
		return ErrNilFile
	}
	if err := f.Validate(); err != nil {
		return err
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	for _, m := range f.Mappings {
		if err := old.reg.Map(m.Remote, m.Local); err != nil {
			return fmt.Errorf("apply mapping %q: %w", m.Remote, err)
		}
	}
	st.Store(&state{cfg: f.Config(), reg: old.reg, cat: old.cat, bld: old.bld})
	return nil
}

// LoadFile reads a YAML mapping file and applies it.
func LoadFile(path string) error {
	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	return Apply(f)
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers create a new state and swap
// it atomically. The registry and catalog are shared and synchronize
// themselves.
type state struct {
	// cfg is used for every mapper created from this state.
	cfg apis.Config
	// reg maps remote names to local class names.
	reg apis.Registry
	// cat holds the local classes.
	cat apis.Catalog
	// bld composes the per-mapper resolver, discoverer and cache.
	bld apis.Builder
}

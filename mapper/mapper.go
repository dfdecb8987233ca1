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
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/builder"
	"github.com/mrpin/mrpin-rocketamf/config"
	"github.com/mrpin/mrpin-rocketamf/discovery"
	"github.com/mrpin/mrpin-rocketamf/typed"
	uref "github.com/mrpin/mrpin-rocketamf/utils/reflect"
)

var (
	// ErrUnknownClass is returned when a remote name maps to a local class
	// missing from the catalog.
	ErrUnknownClass = errors.New("rocketamf(mapper): mapped class is not in the catalog")
	// ErrNotConstructible is returned when a mapped class cannot be instantiated
	// without arguments.
	ErrNotConstructible = errors.New("rocketamf(mapper): class cannot be constructed")
	// ErrNilObject is returned for nil objects.
	ErrNilObject = errors.New("rocketamf(mapper): nil object")
	// ErrUnsupportedObject is returned for values that are neither structs,
	// maps nor typed objects.
	ErrUnsupportedObject = errors.New("rocketamf(mapper): unsupported object")

	// ErrNotSettable is returned when deserializing into a value that cannot
	// be written, such as a struct passed by value.
	ErrNotSettable = discovery.ErrNotSettable
	// ErrPropertyType is returned when an incoming value does not fit a property.
	ErrPropertyType = discovery.ErrPropertyType
)

// Mapper maps objects between their remote and local representations.
// Unless built with the Synchronized cache mode, a Mapper must not be used
// from several goroutines at once.
type Mapper struct {
	reg apis.Registry
	cat apis.Catalog
	cfg apis.Config
	bld apis.Builder
	obs apis.Observer

	res   apis.Resolver
	cache apis.Cache
}

// New returns a Mapper over reg and cat with an empty property cache.
func New(reg apis.Registry, cat apis.Catalog, opts ...Option) *Mapper {
	m := &Mapper{
		reg: reg,
		cat: cat,
		cfg: config.DefaultConfig(),
		bld: builder.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	m.res = m.bld.BuildResolver(m.cfg, cat)
	d := m.bld.BuildDiscoverer(m.cfg, cat)
	if m.obs != nil {
		d = observedDiscoverer{next: d, obs: m.obs, res: m.res, cfg: m.cfg}
	}
	m.cache = m.bld.BuildCache(m.cfg, d)
	return m
}

// ClassNameRemote returns the remote name for input, which may be an
// instance, a reflect.Type, an apis.Class, a local class name, a
// *typed.Object or an Object. Plain maps have no remote name.
func (m *Mapper) ClassNameRemote(input any) (string, bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case Object:
		return m.ClassNameRemote(v.Value())
	case *typed.Object:
		if v == nil || v.TypeName() == "" {
			return "", false
		}
		if remote, ok := m.reg.ResolveRemote(v.TypeName()); ok {
			return remote, true
		}
		// Typed objects are only ever built for remote names.
		return v.TypeName(), true
	case map[string]any:
		return "", false
	case string:
		return m.reg.ResolveRemote(v)
	case apis.Class:
		if v.Name != "" {
			return m.reg.ResolveRemote(v.Name)
		}
		return m.remoteOfType(v.Type)
	case reflect.Type:
		return m.remoteOfType(v)
	}
	return m.remoteOf(m.res.Resolve(input, m.cfg))
}

func (m *Mapper) remoteOfType(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	return m.remoteOf(m.res.ResolveType(t, m.cfg))
}

func (m *Mapper) remoteOf(local string) (string, bool) {
	if local == "" {
		return "", false
	}
	return m.reg.ResolveRemote(local)
}

// CreateObject returns a blank instance of the local class mapped to remote,
// or a typed object named remote when there is no mapping. An error is only
// returned for malformed registrations.
func (m *Mapper) CreateObject(remote string) (Object, error) {
	local, ok := m.reg.ResolveLocal(remote)
	if !ok {
		m.observeCreate(remote, apis.OutcomeTyped)
		return TypedObject(typed.New(remote)), nil
	}

	obj, err := m.instantiate(local)
	if err != nil {
		m.observeCreate(remote, apis.OutcomeError)
		return Object{}, fmt.Errorf("create %q: %w", remote, err)
	}
	m.observeCreate(remote, apis.OutcomeLocal)
	return LocalObject(obj), nil
}

func (m *Mapper) instantiate(local string) (obj any, err error) {
	cls, ok := m.cat.Lookup(local)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, local)
	}

	if cls.New == nil {
		if cls.Type == nil || cls.Type.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %q has no factory", ErrNotConstructible, local)
		}
		return reflect.New(cls.Type).Interface(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			obj, err = nil, fmt.Errorf("%w: %q: factory panicked: %v", ErrNotConstructible, local, r)
		}
	}()
	obj = cls.New()
	if obj == nil {
		return nil, fmt.Errorf("%w: %q factory returned nil", ErrNotConstructible, local)
	}
	return obj, nil
}

func (m *Mapper) observeCreate(remote string, outcome apis.Outcome) {
	if m.obs != nil {
		m.obs.ObserveCreate(remote, outcome)
	}
}

// ObjectSerialize returns the properties of obj. Property maps are returned
// as they are and other maps are copied under string keys. Typed objects
// yield a copy of their properties and structs their readable properties as
// cached by this mapper.
func (m *Mapper) ObjectSerialize(obj any) (map[string]any, error) {
	switch v := obj.(type) {
	case nil:
		return nil, ErrNilObject
	case Object:
		return m.ObjectSerialize(v.Value())
	case map[string]any:
		return v, nil
	case *typed.Object:
		if v == nil {
			return nil, ErrNilObject
		}
		return v.Properties(), nil
	}

	rv, err := m.targetValue(obj)
	if err != nil {
		return nil, err
	}
	if rv.Kind() == reflect.Map {
		return mapProperties(rv), nil
	}
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}

	props := m.cache.Properties(rv.Type())
	out := make(map[string]any, len(props))
	for _, p := range props {
		if p.Readable {
			out[p.Name] = p.Get(rv)
		}
	}
	return out, nil
}

// ObjectDeserialize writes props into obj and returns it. Typed objects and
// maps are merged, converting keys and values to the map's types; structs,
// which must be passed by pointer, receive the writable cached properties
// present in props. Unknown names are ignored.
func (m *Mapper) ObjectDeserialize(obj any, props map[string]any) (any, error) {
	switch v := obj.(type) {
	case nil:
		return nil, ErrNilObject
	case Object:
		return m.ObjectDeserialize(v.Value(), props)
	case map[string]any:
		if v == nil {
			return nil, ErrNilObject
		}
		maps.Copy(v, props)
		return v, nil
	case *typed.Object:
		if v == nil {
			return nil, ErrNilObject
		}
		v.Merge(props)
		return v, nil
	}

	rv, err := m.targetValue(obj)
	if err != nil {
		return obj, err
	}
	if rv.Kind() == reflect.Map {
		if rv.IsNil() {
			return obj, fmt.Errorf("%w: %T", ErrNilObject, obj)
		}
		return obj, mergeMap(rv, props)
	}
	if !rv.CanAddr() {
		return obj, fmt.Errorf("%w: %T must be passed by pointer", ErrNotSettable, obj)
	}

	for _, p := range m.cache.Properties(rv.Type()) {
		if !p.Writable {
			continue
		}
		val, ok := props[p.Name]
		if !ok {
			continue
		}
		if err := p.Set(rv, val); err != nil {
			return obj, fmt.Errorf("property %q: %w", p.Name, err)
		}
	}
	return obj, nil
}

// Properties returns the cached property descriptors of obj's class in
// discovery order. obj may also be a reflect.Type.
func (m *Mapper) Properties(obj any) ([]apis.Property, error) {
	if t, ok := obj.(reflect.Type); ok {
		if t == nil {
			return nil, ErrNilObject
		}
		if uref.Unwrap(t, m.cfg).Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedObject, t)
		}
		return m.cache.Properties(t), nil
	}

	rv, err := m.structValue(obj)
	if err != nil {
		return nil, err
	}
	return m.cache.Properties(rv.Type()), nil
}

// CachedClasses returns the number of classes in this mapper's cache.
func (m *Mapper) CachedClasses() int { return m.cache.Len() }

// structValue dereferences obj down to a struct value.
func (m *Mapper) structValue(obj any) (reflect.Value, error) {
	rv, err := m.targetValue(obj)
	if err != nil {
		return reflect.Value{}, err
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrUnsupportedObject, obj)
	}
	return rv, nil
}

// targetValue dereferences obj down to a struct or map value.
func (m *Mapper) targetValue(obj any) (reflect.Value, error) {
	if obj == nil {
		return reflect.Value{}, ErrNilObject
	}
	rv, ok := uref.Indirect(reflect.ValueOf(obj), m.cfg)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNilObject, obj)
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrUnsupportedObject, obj)
	}
	return rv, nil
}

// mapProperties copies a map of any key and element type into a property
// map. Keys are formatted with fmt unless they are strings.
func mapProperties(rv reflect.Value) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		name := fmt.Sprint(k.Interface())
		if k.Kind() == reflect.String {
			name = k.String()
		}
		out[name] = iter.Value().Interface()
	}
	return out
}

// mergeMap converts props to rv's key and element types and stores them.
// Nothing is stored when any entry does not convert.
func mergeMap(rv reflect.Value, props map[string]any) error {
	kt, et := rv.Type().Key(), rv.Type().Elem()
	keys := slices.Sorted(maps.Keys(props))
	vals := make([]reflect.Value, 0, 2*len(keys))
	for _, name := range keys {
		k, err := discovery.Convert(name, kt)
		if err != nil {
			return fmt.Errorf("key %q: %w", name, err)
		}
		v, err := discovery.Convert(props[name], et)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		vals = append(vals, k, v)
	}
	for i := 0; i < len(vals); i += 2 {
		rv.SetMapIndex(vals[i], vals[i+1])
	}
	return nil
}

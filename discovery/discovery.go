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

package discovery

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/config"
	uref "github.com/mrpin/mrpin-rocketamf/utils/reflect"
)

var (
	// ErrPropertyType is returned when a value cannot be converted to a property's type.
	ErrPropertyType = errors.New("rocketamf(discovery): value does not fit property type")
	// ErrNotSettable is returned when a property cannot be written on the given value.
	ErrNotSettable = errors.New("rocketamf(discovery): property is not settable")
)

// New returns a Discoverer using cfg for naming and cat for extension accessors.
// cat may be nil.
func New(cfg apis.Config, cat apis.Catalog) apis.Discoverer {
	if cfg.TagName == "" {
		cfg.TagName = config.DefaultTagName
	}
	return &discoverer{cfg: cfg, cat: cat}
}

type discoverer struct {
	cfg apis.Config
	cat apis.Catalog
}

// node is one struct type in the embedding tree and the field index path
// leading to it from the outer type.
type node struct {
	t     reflect.Type
	index []int
}

// Discover returns the properties of t's class. Non-struct types have none.
func (d *discoverer) Discover(t reflect.Type) []apis.Property {
	if t == nil {
		return nil
	}
	t = uref.Unwrap(t, d.cfg)
	if t.Kind() != reflect.Struct {
		return nil
	}

	var props []apis.Property
	seen := make(map[string]bool)
	add := func(p apis.Property) {
		if seen[p.Name] {
			return
		}
		seen[p.Name] = true
		props = append(props, p)
	}

	methods := d.methodPairs(t)

	visited := map[reflect.Type]bool{t: true}
	level := []node{{t: t}}
	for depth := 0; len(level) > 0; depth++ {
		var next []node
		for _, n := range level {
			for i := 0; i < n.t.NumField(); i++ {
				f := n.t.Field(i)
				name, skip := d.tagName(f)
				if skip {
					continue
				}
				index := append(append(make([]int, 0, len(n.index)+1), n.index...), i)

				if f.Anonymous && name == "" {
					et, ptr := f.Type, f.Type.Kind() == reflect.Pointer
					if ptr {
						et = et.Elem()
					}
					if et.Kind() == reflect.Struct {
						// Nil unexported embedded pointers cannot be allocated.
						if ptr && !f.IsExported() {
							continue
						}
						if !visited[et] {
							visited[et] = true
							next = append(next, node{t: et, index: index})
						}
						continue
					}
				}
				if !f.IsExported() {
					continue
				}
				if name == "" {
					name = d.name(f.Name)
				}
				add(fieldProperty(name, index))
			}
			if d.cat != nil {
				for _, a := range d.cat.Accessors(n.t) {
					add(accessorProperty(a, n.index))
				}
			}
		}
		for _, p := range methods[depth] {
			add(p)
		}
		delete(methods, depth)
		level = next
	}

	// Methods promoted through embedded non-struct types lie below the
	// last struct level.
	for _, depth := range slices.Sorted(maps.Keys(methods)) {
		for _, p := range methods[depth] {
			add(p)
		}
	}
	return props
}

// tagName returns the explicit property name of f and whether f is hidden.
func (d *discoverer) tagName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup(d.cfg.TagName)
	if !ok {
		return "", false
	}
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

// name applies the LowerFirst policy to a Go identifier.
func (d *discoverer) name(s string) string {
	if !d.cfg.LowerFirst {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func fieldProperty(name string, index []int) apis.Property {
	return apis.Property{
		Name:     name,
		Readable: true,
		Writable: true,
		Get: func(v reflect.Value) any {
			fv, ok := walk(v, index, false)
			if !ok || !fv.CanInterface() {
				return nil
			}
			return fv.Interface()
		},
		Set: func(v reflect.Value, value any) error {
			fv, ok := walk(v, index, true)
			if !ok || !fv.CanSet() {
				return ErrNotSettable
			}
			return assign(fv, value)
		},
	}
}

func accessorProperty(a apis.Accessor, index []int) apis.Property {
	target := func(v reflect.Value, alloc bool) (any, bool) {
		ev, ok := walk(v, index, alloc)
		if !ok {
			return nil, false
		}
		if ev.Kind() == reflect.Pointer {
			if ev.IsNil() {
				if !alloc || !ev.CanSet() {
					return nil, false
				}
				ev.Set(reflect.New(ev.Type().Elem()))
			}
			ev = ev.Elem()
		}
		if !ev.CanAddr() {
			return nil, false
		}
		pv := ev.Addr()
		if !pv.CanInterface() {
			return nil, false
		}
		return pv.Interface(), true
	}
	return apis.Property{
		Name:     a.Name,
		Readable: true,
		Writable: true,
		Get: func(v reflect.Value) any {
			obj, ok := target(v, false)
			if !ok {
				return nil
			}
			return a.Get(obj)
		},
		Set: func(v reflect.Value, value any) error {
			obj, ok := target(v, true)
			if !ok {
				return ErrNotSettable
			}
			return a.Set(obj, value)
		},
	}
}

// walk follows index from the struct value v, dereferencing embedded pointers
// on the way. With alloc, nil embedded pointers are allocated.
func walk(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for _, x := range index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

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

// Package typed provides the container used for objects whose remote type
// name has no local class.
//
// A typed Object keeps the remote type name next to an insertion-ordered set
// of properties, so an object decoded from an unmapped type is re-encoded
// under the very same name.
package typed

import (
	"maps"
	"slices"
)

// Object is a remote object without a local class.
// The zero value is not usable; construct with New.
type Object struct {
	typeName string
	keys     []string
	props    map[string]any
}

// New returns an empty Object for the given remote type name.
func New(typeName string) *Object {
	return &Object{typeName: typeName, props: make(map[string]any)}
}

// FromMap returns an Object with props copied in sorted key order.
func FromMap(typeName string, props map[string]any) *Object {
	o := New(typeName)
	for _, k := range slices.Sorted(maps.Keys(props)) {
		o.Set(k, props[k])
	}
	return o
}

// TypeName returns the remote type name given at construction.
func (o *Object) TypeName() string {
	return o.typeName
}

// Get returns the value of property k.
func (o *Object) Get(k string) (any, bool) {
	v, ok := o.props[k]
	return v, ok
}

// Has reports whether property k is present.
func (o *Object) Has(k string) bool {
	_, ok := o.props[k]
	return ok
}

// Set adds or overwrites property k. New keys are appended to the order.
func (o *Object) Set(k string, v any) {
	if _, ok := o.props[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.props[k] = v
}

// Delete removes property k.
func (o *Object) Delete(k string) {
	if _, ok := o.props[k]; !ok {
		return
	}
	delete(o.props, k)
	o.keys = slices.DeleteFunc(o.keys, func(x string) bool { return x == k })
}

// Len returns the number of properties.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns property names in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Properties returns a copy of the property map.
func (o *Object) Properties() map[string]any {
	return maps.Clone(o.props)
}

// Range calls fn for each property in insertion order until fn returns false.
func (o *Object) Range(fn func(k string, v any) bool) {
	for _, k := range o.keys {
		if !fn(k, o.props[k]) {
			return
		}
	}
}

// Merge copies props into o. Present keys are overwritten, missing keys are
// appended in sorted order, keys absent from props are kept.
func (o *Object) Merge(props map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(props)) {
		o.Set(k, props[k])
	}
}

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

import "reflect"

// Property describes one externally visible property of a local class.
type Property struct {
	// Name is the property name used on the wire.
	Name string
	// Readable reports whether Get may be called.
	Readable bool
	// Writable reports whether Set may be called.
	Writable bool
	// Get reads the property from v, an addressable struct value of the class.
	Get func(v reflect.Value) any
	// Set writes value into v, an addressable struct value of the class.
	Set func(v reflect.Value, value any) error
}

// Accessor is an explicit read/write pair attached to a class through
// Catalog.Extend. Obj is always a pointer to an instance of the class.
type Accessor struct {
	Name string
	Get  func(obj any) any
	Set  func(obj any, value any) error
}

// Discoverer enumerates the properties of a class. Discovery is comparatively
// expensive and must be fronted by a Cache.
type Discoverer interface {
	Discover(t reflect.Type) []Property
}

// Cache memoizes discovered properties per class type.
type Cache interface {
	// Properties returns the cached property list of t, discovering it on the
	// first request.
	Properties(t reflect.Type) []Property
	// Len returns the number of cached classes.
	Len() int
}

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

// Catalog knows the local classes that can be instantiated by name.
// It is the statically typed replacement for looking classes up by name at
// runtime: every class must be registered with a zero-argument factory.
type Catalog interface {
	// Register adds or replaces a class. An empty Name is derived from Type.
	Register(c Class) error
	// Lookup returns the class registered under name.
	Lookup(name string) (Class, bool)
	// LookupType returns the class registered for t (pointers are unwrapped).
	LookupType(t reflect.Type) (Class, bool)
	// Extend attaches additional accessor pairs to an already registered class.
	// Mappers created afterwards see the new properties; existing mappers that
	// already cached the class do not.
	Extend(name string, accessors ...Accessor) error
	// Accessors returns the extension accessors attached to t's class.
	Accessors(t reflect.Type) []Accessor
	// Classes returns a snapshot of all registered classes sorted by name.
	Classes() []Class
	// Count returns the number of registered classes.
	Count() int
	// Reset drops custom classes and extensions and reinstates the defaults.
	Reset()
}

// Class describes one local class.
type Class struct {
	// Name is the local class identifier used by the Registry.
	Name string
	// Type is the named struct type of instances (not a pointer).
	Type reflect.Type
	// New constructs a blank instance, normally a pointer to Type.
	// When nil, reflect.New(Type) is used.
	New func() any
}

// ClassOf builds a Class for T with a reflect-free factory.
func ClassOf[T any](name string) Class {
	return Class{
		Name: name,
		Type: reflect.TypeFor[T](),
		New:  func() any { return new(T) },
	}
}

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

// Package mapper converts between remote objects and local classes.
//
// A Mapper is cheap to build and is meant to live for one unit of work, such
// as decoding a single message: it owns a property cache that is filled as
// classes are first seen and never invalidated. Class changes made through
// apis.Catalog.Extend therefore become visible to new mappers only.
//
// Remote names without a local class are not errors. CreateObject returns a
// *typed.Object for them, and Object makes callers handle both outcomes:
//
//	obj, err := m.CreateObject(name)
//	if err != nil {
//		return err // malformed registration
//	}
//	if t, ok := obj.Typed(); ok {
//		// unmapped: t.TypeName() == name
//	}
package mapper

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

import "github.com/mrpin/mrpin-rocketamf/typed"

// Object is either an instance of a local class or a typed container for a
// remote name without a local class. The zero Object holds neither.
type Object struct {
	local any
	typed *typed.Object
}

// LocalObject wraps an instance of a local class.
func LocalObject(v any) Object { return Object{local: v} }

// TypedObject wraps a typed container.
func TypedObject(t *typed.Object) Object { return Object{typed: t} }

// Local returns the local instance, if o holds one.
func (o Object) Local() (any, bool) { return o.local, o.local != nil }

// Typed returns the typed container, if o holds one.
func (o Object) Typed() (*typed.Object, bool) { return o.typed, o.typed != nil }

// Value returns whichever value o holds, or nil.
func (o Object) Value() any {
	if o.typed != nil {
		return o.typed
	}
	return o.local
}

// IsZero reports whether o holds nothing.
func (o Object) IsZero() bool { return o.local == nil && o.typed == nil }

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

// Config carries read-only knobs for discovery and caching.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TagName is the struct tag consulted for property names ("amf" by default).
	// `amf:"name"` renames a field, `amf:"-"` hides it.
	TagName string

	// LowerFirst lowercases the first rune of untagged field and accessor
	// method names, turning Go's exported "ClientID" into "clientID".
	LowerFirst bool

	// MaxUnwrap limits pointer unwrapping when normalizing a type to its class.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// Cache selects the property cache implementation of each mapper.
	Cache CacheMode
}

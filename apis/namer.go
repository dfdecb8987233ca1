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

// Namer lets a type declare its local class name directly.
//
// # Overview
//
// When a value implements Namer, class name resolution uses ClassName and
// does not consult the Catalog or derive a name from the Go type. This is the
// cheapest path and the one to use when the local class name must differ from
// the "pkg.Type" form, e.g. to keep a historical name stable across a package
// move.
//
// # Contract
//
//   - ClassName MUST be non-empty and MUST NOT depend on instance state.
//   - ClassName MUST be safe for concurrent use and MUST NOT block.
type Namer interface {
	ClassName() string
}

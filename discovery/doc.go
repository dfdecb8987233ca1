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

// Package discovery enumerates the wire-visible properties of local classes.
//
// A property is anything that can be both read and written under one name:
//
//   - exported struct fields, renamed with `amf:"name"` or hidden with `amf:"-"`;
//   - method pairs X() T / SetX(T) [error] on the pointer receiver;
//   - accessor pairs attached to a class at runtime through Catalog.Extend.
//
// Embedded structs play the role of ancestor classes. They are walked
// breadth-first, most-derived first; a name already claimed closer to the
// outer type is not counted again. Within one call the resulting order is
// deterministic: per depth, fields in declaration order followed by that
// depth's extension accessors, then all method pairs sorted by name.
//
// Discovery is comparatively expensive and is always fronted by a cache.
package discovery

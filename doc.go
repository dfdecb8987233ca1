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

// Package rocketamf maps classes between an AMF-style wire protocol and Go.
//
// Objects on the wire are named by a remote type name such as
// "flex.messaging.messages.CommandMessage". This package keeps the
// process-wide mapping between those names and local classes, and hands out
// mappers that use it while an encoder or decoder walks a message.
//
// # Design
//
// The package holds a read-mostly global snapshot (state) of four things:
//
//   - Config: naming and caching rules (struct tag name, first-rune casing,
//     pointer unwrap limit, property cache mode).
//
//   - Registry: remote name to local class name, both directions. Each
//     direction is last write wins; Reset reinstates the built-in Flex
//     message mappings.
//
//   - Catalog: local class name to Go type and factory. A remote name may be
//     mapped before its class is registered; the class is looked up when an
//     object is created.
//
//   - Builder: composes the resolver, property discoverer and property
//     cache of every new mapper.
//
// Readers load the snapshot atomically and never lock. Writers take a short
// build mutex, derive a new snapshot and publish it.
//
// # Usage
//
//	rocketamf.RegisterClass(apis.ClassOf[User]("app.User"))
//	rocketamf.Map("com.example.User", "app.User")
//
//	m := rocketamf.NewMapper() // one per decoded message
//	obj, err := m.CreateObject(remoteName)
//	if err != nil {
//		return err
//	}
//	_, err = m.ObjectDeserialize(obj, props)
//
// Mappings may also come from a YAML file, see LoadFile and config.File.
//
// # Property cache
//
// Every mapper discovers a class's properties once and keeps them for its
// lifetime. Accessors attached later with Catalog().Extend are seen by
// mappers created afterwards only. Mappers are not safe for concurrent use
// unless the cache mode is apis.Synchronized.
//
// # Tests
//
// SetAll replaces the whole snapshot in one step; passing nil registry and
// catalog yields fresh ones holding only the defaults.
package rocketamf

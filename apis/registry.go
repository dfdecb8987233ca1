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

// Registry is the bidirectional mapping between remote type names (as they
// appear on the wire) and local class names (as registered in a Catalog).
//
// Both directions are exact-match and last-write-wins. Entries are additive;
// the only way to remove one is Reset, which reinstates the defaults the
// registry was constructed with.
type Registry interface {
	// Map registers remote <-> local, superseding earlier entries for the
	// same remote name and for the same local class.
	Map(remote, local string) error
	// ResolveLocal returns the local class name mapped to remote.
	ResolveLocal(remote string) (local string, ok bool)
	// ResolveRemote returns the remote name mapped to local.
	ResolveRemote(local string) (remote string, ok bool)
	// Entries returns a snapshot of the forward mappings sorted by remote name.
	Entries() []Mapping
	// Count returns the number of forward mappings.
	Count() int
	// Reset discards custom entries and reinstates the defaults.
	Reset()
}

// Mapping is a single (remote, local) association.
type Mapping struct {
	// Remote is the wire-level type name, e.g. "flex.messaging.messages.CommandMessage".
	Remote string `yaml:"remote" validate:"required"`
	// Local is the local class name as known to the Catalog.
	Local string `yaml:"local" validate:"required"`
}

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

// Outcome classifies the result of instantiating a remote type name.
type Outcome string

const (
	// OutcomeLocal means a mapped local class was instantiated.
	OutcomeLocal Outcome = "local"
	// OutcomeTyped means the name was unmapped and a typed container was returned.
	OutcomeTyped Outcome = "typed"
	// OutcomeError means the name was mapped but the class could not be constructed.
	OutcomeError Outcome = "error"
)

// Observer receives notifications from mappers. Implementations must be safe
// for concurrent use since one Observer is usually shared by many mappers.
type Observer interface {
	// ObserveDiscovery is called once per actual (uncached) property discovery.
	ObserveDiscovery(class string, properties int)
	// ObserveCreate is called for every CreateObject call.
	ObserveCreate(remote string, outcome Outcome)
}

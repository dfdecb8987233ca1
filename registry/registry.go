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

package registry

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

var (
	// ErrEmptyRemote is returned when an empty remote name is mapped.
	ErrEmptyRemote = errors.New("rocketamf(registry): empty remote name provided")
	// ErrEmptyLocal is returned when an empty local class name is mapped.
	ErrEmptyLocal = errors.New("rocketamf(registry): empty local class name provided")
)

// New constructs a Registry seeded with defaults. Reset returns to exactly
// this set. Defaults with an empty side are skipped.
func New(defaults ...apis.Mapping) apis.Registry {
	r := &registry{defaults: slices.Clone(defaults)}
	r.tbl.Store(r.seed())
	return r
}

// registry publishes an immutable table through an atomic pointer.
// Readers never lock; writers copy the table under mu and swap it in, so a
// concurrent Reset can never be observed half-applied.
type registry struct {
	// mu serializes writers.
	mu sync.Mutex
	// tbl is the currently published table.
	tbl atomic.Pointer[table]
	// defaults are reinstated by Reset.
	defaults []apis.Mapping
}

// table is one immutable snapshot of both directions.
type table struct {
	// remote maps remote name -> local class name.
	remote map[string]string
	// local maps local class name -> remote name.
	local map[string]string
}

func (t *table) clone() *table {
	return &table{remote: maps.Clone(t.remote), local: maps.Clone(t.local)}
}

func (t *table) put(remote, local string) {
	t.remote[remote] = local
	t.local[local] = remote
}

// seed builds a fresh table holding only the defaults.
func (r *registry) seed() *table {
	t := &table{
		remote: make(map[string]string, len(r.defaults)),
		local:  make(map[string]string, len(r.defaults)),
	}
	for _, m := range r.defaults {
		if m.Remote == "" || m.Local == "" {
			continue
		}
		t.put(m.Remote, m.Local)
	}
	return t
}

// Map registers remote <-> local. Later calls for the same remote name or the
// same local class silently supersede earlier ones in that direction.
func (r *registry) Map(remote, local string) error {
	if remote == "" {
		return ErrEmptyRemote
	}
	if local == "" {
		return ErrEmptyLocal
	}

	// Fast read path: nothing to publish if the pair is already current.
	if cur := r.tbl.Load(); cur.remote[remote] == local && cur.local[local] == remote {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.tbl.Load().clone()
	next.put(remote, local)
	r.tbl.Store(next)
	return nil
}

// ResolveLocal returns the local class name for remote (verbatim match).
func (r *registry) ResolveLocal(remote string) (string, bool) {
	local, ok := r.tbl.Load().remote[remote]
	return local, ok
}

// ResolveRemote returns the remote name for local (verbatim match).
func (r *registry) ResolveRemote(local string) (string, bool) {
	remote, ok := r.tbl.Load().local[local]
	return remote, ok
}

// Entries returns a snapshot of forward mappings sorted by remote name.
func (r *registry) Entries() []apis.Mapping {
	t := r.tbl.Load()
	entries := make([]apis.Mapping, 0, len(t.remote))
	for remote, local := range t.remote {
		entries = append(entries, apis.Mapping{Remote: remote, Local: local})
	}
	slices.SortFunc(entries, func(a, b apis.Mapping) int {
		return strings.Compare(a.Remote, b.Remote)
	})
	return entries
}

// Count returns the number of forward mappings.
func (r *registry) Count() int {
	return len(r.tbl.Load().remote)
}

// Reset clears custom entries and reinstates the defaults.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tbl.Store(r.seed())
}

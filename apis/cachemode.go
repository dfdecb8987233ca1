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

import (
	"fmt"
	"strings"
)

// CacheMode selects how a mapper memoizes discovered class properties.
//
// # Values
//
//   - PerMapper    — one plain map per mapper, no locking. The mapper must not
//     be shared between goroutines.
//   - Synchronized — one concurrent map per mapper; concurrent misses for the
//     same class collapse into a single discovery.
//   - None         — nothing is retained; every call rediscovers.
//
// Whatever the mode, a cache never outlives its mapper: a new mapper always
// starts empty and sees the current shape of every class.
type CacheMode int

const (
	// PerMapper is the default mode.
	PerMapper CacheMode = iota
	// Synchronized allows one mapper to serve concurrent units of work.
	Synchronized
	// None disables caching. Meant for debugging and comparison.
	None
)

// String returns the canonical token of the mode. Unknown values render as
// "Unknown(<n>)" and never panic.
func (m CacheMode) String() string {
	switch m {
	case PerMapper:
		return "per-mapper"
	case Synchronized:
		return "synchronized"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseCacheMode parses a textual cache mode, case-insensitively and ignoring
// surrounding whitespace. On failure it returns PerMapper and a non-nil error.
func ParseCacheMode(s string) (CacheMode, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return PerMapper, fmt.Errorf("cache: empty mode")
	}

	switch strings.ToLower(trimmed) {
	case "per-mapper", "permapper":
		return PerMapper, nil
	case "synchronized", "sync":
		return Synchronized, nil
	case "none":
		return None, nil
	default:
		return PerMapper, fmt.Errorf("cache: unknown mode %q", s)
	}
}

// MustParseCacheMode is like ParseCacheMode but panics on invalid input.
func MustParseCacheMode(s string) CacheMode {
	mode, err := ParseCacheMode(s)
	if err != nil {
		panic(err)
	}
	return mode
}

// MarshalText implements encoding.TextMarshaler. Unknown values are rejected
// rather than persisted as "Unknown(...)".
func (m CacheMode) MarshalText() ([]byte, error) {
	switch m {
	case PerMapper, Synchronized, None:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("cache: cannot marshal unknown mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *m is left
// unchanged.
func (m *CacheMode) UnmarshalText(text []byte) error {
	value, err := ParseCacheMode(string(text))
	if err != nil {
		return err
	}
	*m = value
	return nil
}

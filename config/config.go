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

package config

import (
	"github.com/mrpin/mrpin-rocketamf/apis"
)

const (
	// DefaultTagName is the struct tag consulted for property names.
	DefaultTagName = "amf"
	// DefaultLowerFirst keeps untagged Go names verbatim.
	DefaultLowerFirst = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultCacheMode is one unsynchronized cache per mapper.
	DefaultCacheMode = apis.PerMapper
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.TagName == "" {
		cfg.TagName = DefaultTagName
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		TagName:    DefaultTagName,
		LowerFirst: DefaultLowerFirst,
		MaxUnwrap:  DefaultMaxUnwrap,
		Cache:      DefaultCacheMode,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithTagName sets the struct tag used for property names.
// An empty name resets to the default.
func WithTagName(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.TagName = DefaultTagName
			return
		}
		c.TagName = name
	}
}

// WithLowerFirst sets the LowerFirst option.
func WithLowerFirst(lower bool) Option {
	return func(c *apis.Config) {
		c.LowerFirst = lower
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithCacheMode sets the per-mapper property cache mode.
func WithCacheMode(mode apis.CacheMode) Option {
	return func(c *apis.Config) {
		c.Cache = mode
	}
}

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
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// ErrInvalidFile is returned when a mapping file fails validation.
var ErrInvalidFile = errors.New("rocketamf(config): invalid mapping file")

// File is the on-disk form of a class mapping configuration.
//
//	cache: per-mapper
//	tag: amf
//	lower_first: false
//	mappings:
//	  - remote: ASClass
//	    local: ClassMappingTest
type File struct {
	// Cache is the property cache mode for mappers ("per-mapper" when empty).
	Cache *apis.CacheMode `yaml:"cache"`
	// Tag overrides the struct tag name.
	Tag string `yaml:"tag" validate:"omitempty,alphanum"`
	// LowerFirst lowercases the first rune of untagged property names.
	LowerFirst bool `yaml:"lower_first"`
	// MaxUnwrap overrides the pointer unwrap limit; zero keeps the default.
	MaxUnwrap int `yaml:"max_unwrap" validate:"gte=0"`
	// Mappings are applied in order, so later entries win.
	Mappings []apis.Mapping `yaml:"mappings" validate:"dive"`
}

var validate = validator.New()

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks f against its field constraints. Every mapping must name
// both sides.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Config returns the apis.Config described by f on top of the defaults.
func (f *File) Config() apis.Config {
	opts := []Option{WithTagName(f.Tag), WithLowerFirst(f.LowerFirst)}
	if f.MaxUnwrap > 0 {
		opts = append(opts, WithMaxUnwrap(f.MaxUnwrap))
	}
	if f.Cache != nil {
		opts = append(opts, WithCacheMode(*f.Cache))
	}
	return NewConfig(opts...)
}

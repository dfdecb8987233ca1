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

package builder_test

import (
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/builder"
	"github.com/mrpin/mrpin-rocketamf/catalog"
	"github.com/mrpin/mrpin-rocketamf/config"
)

// userType is a plain named type with no special behavior.
// It is used to test fallback via reflection.
type userType struct {
	Name string
}

// hotType implements apis.Namer and is used to verify that the
// Namer-based strategy takes priority over other strategies.
type hotType struct{}

func (hotType) ClassName() string { return "hot-name" }

// TestBuildResolver_Order_NamerThenCatalogThenReflect verifies resolution priority:
// 1. If the value implements apis.Namer, use ClassName().
// 2. Otherwise, if the type is registered in the Catalog, use that name.
// 3. Otherwise, fall back to the reflect-based strategy ("pkg.Type").
func TestBuildResolver_Order_NamerThenCatalogThenReflect(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	type fromCatalog struct{}
	cat := catalog.New()
	if err := cat.Register(apis.ClassOf[fromCatalog]("cat-name")); err != nil {
		t.Fatalf("Register(fromCatalog) failed: %v", err)
	}
	// Namer wins even over an explicit registration.
	if err := cat.Register(apis.ClassOf[hotType]("hot-registered")); err != nil {
		t.Fatalf("Register(hotType) failed: %v", err)
	}

	res := b.BuildResolver(cfg, cat)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	if got := res.Resolve(hotType{}, cfg); got != "hot-name" {
		t.Fatalf("Namer priority broken: got %q want %q", got, "hot-name")
	}

	if got := res.ResolveType(reflect.TypeOf(&fromCatalog{}), cfg); got != "cat-name" {
		t.Fatalf("Catalog strategy broken: got %q want %q", got, "cat-name")
	}

	got := res.ResolveType(reflect.TypeOf(userType{}), cfg)
	if strings.TrimSpace(got) == "" {
		t.Fatalf("Reflect strategy returned empty name for userType")
	}
	if got != "builder_test.userType" {
		t.Fatalf("Reflect strategy name: got %q want %q", got, "builder_test.userType")
	}
}

// TestBuildDiscoverer_UsesCatalogExtensions asserts the discoverer sees
// accessors attached to a class after the fact.
func TestBuildDiscoverer_UsesCatalogExtensions(t *testing.T) {
	cat := catalog.New(apis.ClassOf[userType]("userType"))
	d := builder.New().BuildDiscoverer(config.DefaultConfig(), cat)

	if n := len(d.Discover(reflect.TypeOf(userType{}))); n != 1 {
		t.Fatalf("Discover before Extend: got %d properties, want 1", n)
	}

	err := cat.Extend("userType", apis.Accessor{
		Name: "extra",
		Get:  func(any) any { return 1 },
		Set:  func(any, any) error { return nil },
	})
	if err != nil {
		t.Fatalf("Extend failed: %v", err)
	}
	if n := len(d.Discover(reflect.TypeOf(userType{}))); n != 2 {
		t.Fatalf("Discover after Extend: got %d properties, want 2", n)
	}
}

// TestBuildCache_FreshPerCall asserts every BuildCache call yields an empty cache
// of the configured mode.
func TestBuildCache_FreshPerCall(t *testing.T) {
	b := builder.New()
	cat := catalog.New()

	for _, mode := range []apis.CacheMode{apis.PerMapper, apis.Synchronized, apis.None} {
		cfg := config.NewConfig(config.WithCacheMode(mode))
		d := b.BuildDiscoverer(cfg, cat)

		c1 := b.BuildCache(cfg, d)
		c1.Properties(reflect.TypeOf(userType{}))
		c2 := b.BuildCache(cfg, d)

		want := 1
		if mode == apis.None {
			want = 0
		}
		if c1.Len() != want {
			t.Fatalf("%s: c1.Len: got %d want %d", mode, c1.Len(), want)
		}
		if c2.Len() != 0 {
			t.Fatalf("%s: c2.Len: got %d want 0", mode, c2.Len())
		}
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Resolve/ResolveType concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	cat := catalog.New()
	_ = cat.Register(apis.ClassOf[userType]("userType"))
	_ = cat.Register(apis.ClassOf[hotType]("hotType")) // Namer still should override

	res := b.BuildResolver(cfg, cat)

	types := []reflect.Type{
		reflect.TypeOf(userType{}),
		reflect.TypeOf(hotType{}),
		reflect.TypeOf(&userType{}),
		reflect.TypeOf([]userType{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[(i+id)%len(types)]
				_ = res.ResolveType(tt, cfg)
				if got := res.Resolve(hotType{}, cfg); got != "hot-name" {
					t.Errorf("Resolve(hotType): got %q", got)
					return
				}
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()

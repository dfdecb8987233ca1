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

package strategy

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()
	a := &A{}

	cases := []struct {
		name     string
		val      any
		expected string
		ok       bool
	}{
		{"plain struct", A{}, "strategy.A", true},
		{"ptr", &A{}, "strategy.A", true},
		{"ptr ptr", &a, "strategy.A", true},
		{"generic strips params", G[int]{}, "strategy.G", true},
		{"slice has no class", []A{}, "", false},
		{"builtin has no class", 42, "", false},
		{"anonymous struct", struct{ X int }{}, "", false},
		{"nil", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, cfg())
			if ok != tc.ok || got != tc.expected {
				t.Fatalf("got (%q,%v), want (%q,%v)", got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestReflectStrategy_MaxUnwrap(t *testing.T) {
	s := NewReflectStrategy()

	type PP = **A
	tt := reflect.TypeOf((*PP)(nil)).Elem() // **A type (not a value)

	t.Run("tight limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 }))
		if ok || got != "" {
			t.Fatalf("MaxUnwrap=1: expected failed resolution, got (%q,%v)", got, ok)
		}
	})

	t.Run("wide limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg(func(c *apis.Config) { c.MaxUnwrap = 8 }))
		if !ok || got != "strategy.A" {
			t.Fatalf("MaxUnwrap=8: got (%q,%v), want (strategy.A,true)", got, ok)
		}
	})
}

// This test stresses the memoization and Normalize path under concurrency.
func TestReflectStrategy_Concurrent(t *testing.T) {
	s := NewReflectStrategy()
	conf := cfg()

	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(G[string]{}),
	}
	expect := []string{"strategy.A", "strategy.A", "strategy.G", "strategy.G"}

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				idx := i % len(types)
				got, ok := s.TryResolveType(types[idx], conf)
				if !ok || got != expect[idx] {
					errCh <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for got := range errCh {
		t.Fatalf("concurrent resolution returned %q", got)
	}
}

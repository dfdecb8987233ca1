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

package mapper_test

import (
	"reflect"
	"runtime"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrpin/mrpin-rocketamf/apis"
	"github.com/mrpin/mrpin-rocketamf/catalog"
	"github.com/mrpin/mrpin-rocketamf/config"
	"github.com/mrpin/mrpin-rocketamf/mapper"
	"github.com/mrpin/mrpin-rocketamf/messages"
	"github.com/mrpin/mrpin-rocketamf/registry"
	"github.com/mrpin/mrpin-rocketamf/typed"
)

type ClassMappingTest struct {
	PropA any `amf:"prop_a"`
	PropB any `amf:"prop_b"`
}

type ClassMappingTest2 struct {
	ClassMappingTest
	PropC any `amf:"prop_c"`
}

type ClassMappingTest3 struct {
	PropA any `amf:"prop_a"`
	propB any
}

type TestRubyClass struct{}

type Counter struct {
	Count int `amf:"count"`
}

type Owner struct {
	name string
}

func (o *Owner) Name() string     { return o.name }
func (o *Owner) SetName(s string) { o.name = s }

type Session struct {
	*Owner
	Other string
}

type label string

// env is a registry and catalog set up the way an application would.
type env struct {
	reg apis.Registry
	cat apis.Catalog
}

func newEnv(t *testing.T) env {
	t.Helper()
	e := env{
		reg: registry.New(messages.Mappings()...),
		cat: catalog.New(messages.Classes()...),
	}
	require.NoError(t, e.cat.Register(apis.ClassOf[ClassMappingTest]("ClassMappingTest")))
	require.NoError(t, e.cat.Register(apis.ClassOf[ClassMappingTest2]("ClassMappingTest2")))
	require.NoError(t, e.cat.Register(apis.ClassOf[ClassMappingTest3]("ClassMappingTest3")))
	require.NoError(t, e.cat.Register(apis.ClassOf[TestRubyClass]("anamespace.TestRubyClass")))
	require.NoError(t, e.reg.Map("ASClass", "ClassMappingTest"))
	return e
}

func (e env) mapper(opts ...mapper.Option) *mapper.Mapper {
	return mapper.New(e.reg, e.cat, opts...)
}

func TestClassNameRemote(t *testing.T) {
	m := newEnv(t).mapper()

	cases := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"instance", ClassMappingTest{}, "ASClass", true},
		{"pointer", &ClassMappingTest{}, "ASClass", true},
		{"class name", "ClassMappingTest", "ASClass", true},
		{"type", reflect.TypeOf(ClassMappingTest{}), "ASClass", true},
		{"class", apis.ClassOf[ClassMappingTest](""), "ASClass", true},
		{"typed with local name", typed.New("ClassMappingTest"), "ASClass", true},
		{"typed with remote name", typed.New("UnmappedClass"), "UnmappedClass", true},
		{"typed without name", typed.New(""), "", false},
		{"object", mapper.LocalObject(&ClassMappingTest{}), "ASClass", true},
		{"bad class name", "BadClass", "", false},
		{"unmapped instance", Counter{}, "", false},
		{"plain map", map[string]any{"a": 1}, "", false},
		{"nil", nil, "", false},
		{"builtin", 42, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.ClassNameRemote(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestCreateObject(t *testing.T) {
	e := newEnv(t)
	m := e.mapper()

	obj, err := m.CreateObject("ASClass")
	require.NoError(t, err)
	local, ok := obj.Local()
	require.True(t, ok)
	assert.IsType(t, &ClassMappingTest{}, local)
	_, isTyped := obj.Typed()
	assert.False(t, isTyped)

	// A fresh instance every time.
	again, err := m.CreateObject("ASClass")
	require.NoError(t, err)
	assert.NotSame(t, local, again.Value())
}

func TestCreateObject_Namespaced(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.reg.Map("ASClass", "anamespace.TestRubyClass"))

	obj, err := e.mapper().CreateObject("ASClass")
	require.NoError(t, err)
	assert.IsType(t, &TestRubyClass{}, obj.Value())
}

func TestCreateObject_Unmapped(t *testing.T) {
	obj, err := newEnv(t).mapper().CreateObject("UnmappedClass")
	require.NoError(t, err)

	tobj, ok := obj.Typed()
	require.True(t, ok)
	assert.Equal(t, "UnmappedClass", tobj.TypeName())
	_, isLocal := obj.Local()
	assert.False(t, isLocal)
}

func TestCreateObject_MalformedRegistration(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.cat.Register(apis.Class{Name: "nilFactory", Type: reflect.TypeOf(Counter{}), New: func() any { return nil }}))
	require.NoError(t, e.cat.Register(apis.Class{Name: "panics", Type: reflect.TypeOf(Counter{}), New: func() any { panic("no") }}))
	require.NoError(t, e.cat.Register(apis.Class{Name: "iface", Type: reflect.TypeFor[apis.Namer]()}))
	require.NoError(t, e.cat.Register(apis.Class{Name: "byType", Type: reflect.TypeOf(Counter{})}))
	require.NoError(t, e.reg.Map("NilFactory", "nilFactory"))
	require.NoError(t, e.reg.Map("Panics", "panics"))
	require.NoError(t, e.reg.Map("Iface", "iface"))
	require.NoError(t, e.reg.Map("Missing", "no.SuchClass"))
	require.NoError(t, e.reg.Map("ByType", "byType"))
	m := e.mapper()

	for remote, want := range map[string]error{
		"NilFactory": mapper.ErrNotConstructible,
		"Panics":     mapper.ErrNotConstructible,
		"Iface":      mapper.ErrNotConstructible,
		"Missing":    mapper.ErrUnknownClass,
	} {
		obj, err := m.CreateObject(remote)
		assert.ErrorIs(t, err, want, remote)
		assert.True(t, obj.IsZero(), remote)
	}

	obj, err := m.CreateObject("ByType")
	require.NoError(t, err)
	assert.IsType(t, &Counter{}, obj.Value())
}

func TestDefaultMappings(t *testing.T) {
	m := newEnv(t).mapper()

	for _, mp := range messages.Mappings() {
		obj, err := m.CreateObject(mp.Remote)
		require.NoError(t, err, mp.Remote)
		_, isTyped := obj.Typed()
		assert.False(t, isTyped, mp.Remote)
	}

	remote, ok := m.ClassNameRemote(messages.ErrorMessageClass)
	require.True(t, ok)
	assert.Equal(t, "flex.messaging.messages.ErrorMessage", remote)

	remote, ok = m.ClassNameRemote(messages.NewErrorMessage(nil, assert.AnError))
	require.True(t, ok)
	assert.Equal(t, "flex.messaging.messages.ErrorMessage", remote)
}

func TestRemapKeepsEarlierForwardEntry(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.reg.Map("SecondClass", "ClassMappingTest"))
	m := e.mapper()

	remote, ok := m.ClassNameRemote(&ClassMappingTest{})
	require.True(t, ok)
	assert.Equal(t, "SecondClass", remote)

	obj, err := m.CreateObject("ASClass")
	require.NoError(t, err)
	assert.IsType(t, &ClassMappingTest{}, obj.Value())
}

func TestObjectDeserialize(t *testing.T) {
	m := newEnv(t).mapper()

	obj, err := m.ObjectDeserialize(&ClassMappingTest{}, map[string]any{"prop_a": "Data", "unknown": 1})
	require.NoError(t, err)
	assert.Equal(t, "Data", obj.(*ClassMappingTest).PropA)

	tobj := typed.New("UnmappedClass")
	tobj.Set("kept", true)
	out, err := m.ObjectDeserialize(tobj, map[string]any{"prop_a": "Data"})
	require.NoError(t, err)
	assert.Same(t, tobj, out)
	v, _ := tobj.Get("prop_a")
	assert.Equal(t, "Data", v)
	assert.True(t, tobj.Has("kept"))

	created, err := m.CreateObject("ASClass")
	require.NoError(t, err)
	out, err = m.ObjectDeserialize(created, map[string]any{"prop_b": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 2.5, out.(*ClassMappingTest).PropB)
}

func TestObjectDeserialize_Errors(t *testing.T) {
	m := newEnv(t).mapper()

	_, err := m.ObjectDeserialize(ClassMappingTest{}, map[string]any{"prop_a": 1})
	assert.ErrorIs(t, err, mapper.ErrNotSettable)

	_, err = m.ObjectDeserialize(&Counter{}, map[string]any{"count": "many"})
	assert.ErrorIs(t, err, mapper.ErrPropertyType)

	_, err = m.ObjectDeserialize(nil, nil)
	assert.ErrorIs(t, err, mapper.ErrNilObject)

	_, err = m.ObjectDeserialize((*Counter)(nil), nil)
	assert.ErrorIs(t, err, mapper.ErrNilObject)

	n := 3
	_, err = m.ObjectDeserialize(&n, nil)
	assert.ErrorIs(t, err, mapper.ErrUnsupportedObject)
}

func TestObjectSerialize(t *testing.T) {
	m := newEnv(t).mapper()

	hash := map[string]any{"a": "test1", "b": "test2"}
	out, err := m.ObjectSerialize(hash)
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(hash).Pointer(), reflect.ValueOf(out).Pointer())

	out, err = m.ObjectSerialize(&ClassMappingTest{PropA: "Test A"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prop_a": "Test A", "prop_b": nil}, out)

	tobj := typed.FromMap("UnmappedClass", map[string]any{"x": 1})
	out, err = m.ObjectSerialize(mapper.TypedObject(tobj))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1}, out)

	_, err = m.ObjectSerialize(nil)
	assert.ErrorIs(t, err, mapper.ErrNilObject)
	_, err = m.ObjectSerialize("text")
	assert.ErrorIs(t, err, mapper.ErrUnsupportedObject)
}

func TestObjectSerialize_Inherited(t *testing.T) {
	m := newEnv(t).mapper()

	obj := &ClassMappingTest2{PropC: "Test C"}
	obj.PropA = "Test A"

	out, err := m.ObjectSerialize(obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prop_a": "Test A", "prop_b": nil, "prop_c": "Test C"}, out)

	props, err := m.Properties(obj)
	require.NoError(t, err)
	require.Len(t, props, 3)
}

func TestObjectSerialize_PromotedMethodThroughNilPointer(t *testing.T) {
	m := newEnv(t).mapper()

	obj := &Session{Other: "x"}
	var out map[string]any
	require.NotPanics(t, func() {
		var err error
		out, err = m.ObjectSerialize(obj)
		require.NoError(t, err)
	})
	assert.Equal(t, map[string]any{"Other": "x", "Name": nil}, out)
	assert.Nil(t, obj.Owner)

	_, err := m.ObjectDeserialize(obj, map[string]any{"Name": "n"})
	require.NoError(t, err)
	require.NotNil(t, obj.Owner)
	assert.Equal(t, "n", obj.Owner.Name())
}

func TestObjectSerialize_Maps(t *testing.T) {
	m := newEnv(t).mapper()

	out, err := m.ObjectSerialize(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, out)

	out, err = m.ObjectSerialize(map[int]string{1: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": "x"}, out)

	out, err = m.ObjectSerialize(&map[label]bool{"k": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": true}, out)
}

func TestObjectDeserialize_Maps(t *testing.T) {
	m := newEnv(t).mapper()

	counts := map[string]int{"a": 1}
	out, err := m.ObjectDeserialize(counts, map[string]any{"b": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, out)

	labels := map[label]string{}
	_, err = m.ObjectDeserialize(&labels, map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, map[label]string{"k": "v"}, labels)

	_, err = m.ObjectDeserialize(counts, map[string]any{"c": 3, "d": "many"})
	assert.ErrorIs(t, err, mapper.ErrPropertyType)
	assert.NotContains(t, counts, "c")

	byID := map[int]string{}
	_, err = m.ObjectDeserialize(byID, map[string]any{"1": "x"})
	assert.ErrorIs(t, err, mapper.ErrPropertyType)
	assert.Empty(t, byID)

	var none map[string]int
	_, err = m.ObjectDeserialize(none, map[string]any{"a": 1})
	assert.ErrorIs(t, err, mapper.ErrNilObject)
}

func TestObjectSerialize_Idempotent(t *testing.T) {
	m := newEnv(t).mapper()

	first, err := m.ObjectSerialize(ClassMappingTest2{})
	require.NoError(t, err)
	second, err := m.ObjectSerialize(ClassMappingTest2{})
	require.NoError(t, err)
	assert.Equal(t, keys(first), keys(second))
}

func TestObjectSerialize_CachePerMapper(t *testing.T) {
	e := newEnv(t)
	m1 := e.mapper()

	_, err := m1.ObjectSerialize(&ClassMappingTest3{})
	require.NoError(t, err)
	assert.Equal(t, 1, m1.CachedClasses())

	require.NoError(t, e.cat.Extend("ClassMappingTest3", apis.Accessor{
		Name: "prop_b",
		Get:  func(obj any) any { return obj.(*ClassMappingTest3).propB },
		Set: func(obj any, v any) error {
			obj.(*ClassMappingTest3).propB = v
			return nil
		},
	}))

	obj := &ClassMappingTest3{PropA: "Test A", propB: "Test B"}
	out, err := m1.ObjectSerialize(obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prop_a": "Test A"}, out)

	m2 := e.mapper()
	out, err = m2.ObjectSerialize(obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prop_a": "Test A", "prop_b": "Test B"}, out)
}

func TestProperties(t *testing.T) {
	m := newEnv(t).mapper()

	props, err := m.Properties(reflect.TypeOf(&ClassMappingTest2{}))
	require.NoError(t, err)
	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"prop_c", "prop_a", "prop_b"}, names)

	_, err = m.Properties(reflect.TypeOf(0))
	assert.ErrorIs(t, err, mapper.ErrUnsupportedObject)
	_, err = m.Properties(nil)
	assert.ErrorIs(t, err, mapper.ErrNilObject)
}

// recorder is an apis.Observer collecting every notification.
type recorder struct {
	mu          sync.Mutex
	discoveries map[string]int
	creates     map[apis.Outcome]int
}

func newRecorder() *recorder {
	return &recorder{discoveries: map[string]int{}, creates: map[apis.Outcome]int{}}
}

func (r *recorder) ObserveDiscovery(class string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discoveries[class]++
}

func (r *recorder) ObserveCreate(_ string, outcome apis.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates[outcome]++
}

func TestObserver(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.reg.Map("Broken", "no.SuchClass"))
	rec := newRecorder()
	m := e.mapper(mapper.WithObserver(rec))

	_, _ = m.ObjectSerialize(&ClassMappingTest{})
	_, _ = m.ObjectSerialize(ClassMappingTest{})
	_, _ = m.CreateObject("ASClass")
	_, _ = m.CreateObject("UnmappedClass")
	_, _ = m.CreateObject("Broken")

	assert.Equal(t, map[string]int{"ClassMappingTest": 1}, rec.discoveries)
	assert.Equal(t, map[apis.Outcome]int{
		apis.OutcomeLocal: 1,
		apis.OutcomeTyped: 1,
		apis.OutcomeError: 1,
	}, rec.creates)
}

func TestSharedMapper_Synchronized(t *testing.T) {
	e := newEnv(t)
	rec := newRecorder()
	m := e.mapper(
		mapper.WithConfig(config.NewConfig(config.WithCacheMode(apis.Synchronized))),
		mapper.WithObserver(rec),
	)

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				obj, err := m.CreateObject("ASClass")
				if err != nil {
					t.Errorf("CreateObject: %v", err)
					return
				}
				if _, err := m.ObjectDeserialize(obj, map[string]any{"prop_a": i}); err != nil {
					t.Errorf("ObjectDeserialize: %v", err)
					return
				}
				out, err := m.ObjectSerialize(obj)
				if err != nil || out["prop_a"] != i {
					t.Errorf("ObjectSerialize: got (%v, %v), want prop_a=%d", out, err, i)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, m.CachedClasses())
	assert.Equal(t, 1, rec.discoveries["ClassMappingTest"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

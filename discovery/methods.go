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
package discovery

import (
	"reflect"
	"runtime"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

var errorType = reflect.TypeFor[error]()

// methodPairs collects the exported getter/setter pairs of *t, keyed by the
// embedding depth of the type declaring them. A getter takes no arguments and
// returns one value; its setter is Set<Name>, takes that value and returns
// nothing or an error.
func (d *discoverer) methodPairs(t reflect.Type) map[int][]apis.Property {
	pairs := make(map[int][]apis.Property)
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		getter := pt.Method(i)
		gt := getter.Type
		if gt.NumIn() != 1 || gt.NumOut() != 1 {
			continue
		}
		setter, ok := pt.MethodByName("Set" + getter.Name)
		if !ok {
			continue
		}
		st := setter.Type
		if st.NumIn() != 2 || st.In(1) != gt.Out(0) {
			continue
		}
		if st.NumOut() > 1 || (st.NumOut() == 1 && st.Out(0) != errorType) {
			continue
		}
		getPath, ok := methodOwner(t, getter.Name)
		if !ok {
			continue
		}
		setPath, ok := methodOwner(t, setter.Name)
		if !ok {
			continue
		}
		depth := min(len(getPath), len(setPath))
		pairs[depth] = append(pairs[depth], methodProperty(
			d.name(getter.Name),
			method{index: getter.Index, path: getPath},
			method{index: setter.Index, path: setPath},
			st.In(1),
		))
	}
	return pairs
}

// method is a method of the outer pointer type together with the field path
// to the embedded value whose type declares it.
type method struct {
	index int
	path  []int
}

// methodOwner returns the field path from t to the shallowest embedded value
// declaring the method name. Ambiguous names report false.
func methodOwner(t reflect.Type, name string) ([]int, bool) {
	visited := map[reflect.Type]bool{t: true}
	level := []node{{t: t}}
	for len(level) > 0 {
		var found []node
		var next []node
		for _, n := range level {
			if declares(n.t, name) {
				found = append(found, n)
				continue
			}
			if n.t.Kind() != reflect.Struct {
				continue
			}
			for i := 0; i < n.t.NumField(); i++ {
				f := n.t.Field(i)
				if !f.Anonymous {
					continue
				}
				et := f.Type
				if et.Kind() == reflect.Pointer {
					et = et.Elem()
				}
				if visited[et] {
					continue
				}
				visited[et] = true
				index := append(append(make([]int, 0, len(n.index)+1), n.index...), i)
				next = append(next, node{t: et, index: index})
			}
		}
		switch len(found) {
		case 0:
			level = next
		case 1:
			return found[0].index, true
		default:
			return nil, false
		}
	}
	return nil, false
}

// declares reports whether t itself, rather than one of its embedded fields,
// provides the method name.
func declares(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		_, ok := t.MethodByName(name)
		return ok
	}
	m, ok := reflect.PointerTo(t).MethodByName(name)
	if !ok {
		return false
	}
	if vm, ok := t.MethodByName(name); ok && !generated(vm) {
		return true
	}
	if !generated(m) {
		return true
	}
	// Methods of generic instantiations are wrappers too; fall back to
	// promotion rules.
	return !embeds(t, name)
}

// generated reports whether m is a compiler-generated wrapper, as produced
// for promoted methods and for pointer receivers of value methods.
func generated(m reflect.Method) bool {
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return false
	}
	file, _ := fn.FileLine(fn.Entry())
	return file == "<autogenerated>"
}

// embeds reports whether any field embedded directly in t has the method name.
func embeds(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		if _, ok := ft.MethodByName(name); ok {
			return true
		}
	}
	return false
}

func methodProperty(name string, get, set method, in reflect.Type) apis.Property {
	return apis.Property{
		Name:     name,
		Readable: true,
		Writable: true,
		Get: func(v reflect.Value) any {
			if !v.CanAddr() || !reach(v, get.path, false) {
				return nil
			}
			return v.Addr().Method(get.index).Call(nil)[0].Interface()
		},
		Set: func(v reflect.Value, value any) error {
			arg, err := convert(value, in)
			if err != nil {
				return err
			}
			if !v.CanAddr() || !reach(v, set.path, true) {
				return ErrNotSettable
			}
			out := v.Addr().Method(set.index).Call([]reflect.Value{arg})
			if len(out) == 1 && !out[0].IsNil() {
				return out[0].Interface().(error)
			}
			return nil
		},
	}
}

// reach reports whether every embedded pointer and interface on path from the
// struct value v is non-nil, so a method promoted along it can be called.
// With alloc, nil pointers are allocated where the field is settable.
func reach(v reflect.Value, path []int, alloc bool) bool {
	for _, x := range path {
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		v = v.Field(x)
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return false
			}
		case reflect.Pointer:
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
		}
	}
	return true
}

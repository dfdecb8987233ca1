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
	"fmt"
	"math"
	"reflect"
)

// assign converts value to dst's type and stores it.
func assign(dst reflect.Value, value any) error {
	cv, err := convert(value, dst.Type())
	if err != nil {
		return err
	}
	dst.Set(cv)
	return nil
}

// Convert returns value as a value of type to, following the same rules as
// property writes.
func Convert(value any, to reflect.Type) (reflect.Value, error) {
	return convert(value, to)
}

// convert turns a decoded wire value into a value of type to.
//
// Supported: nil -> zero value, assignable values, numeric <-> numeric without
// loss, same-kind string/bool conversions, T <-> *T, slices and arrays into
// slices, maps into maps, all applied element-wise.
func convert(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}
	return convertValue(reflect.ValueOf(value), to)
}

func convertValue(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	st := src.Type()
	switch {
	case st.AssignableTo(to):
		return src, nil
	case src.Kind() == reflect.Interface:
		if src.IsNil() {
			return reflect.Zero(to), nil
		}
		return convertValue(src.Elem(), to)
	case src.Kind() == reflect.Pointer && src.IsNil():
		return reflect.Zero(to), nil
	case to.Kind() == reflect.Pointer:
		ev, err := convertValue(src, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(to.Elem())
		p.Elem().Set(ev)
		return p, nil
	case src.Kind() == reflect.Pointer:
		return convertValue(src.Elem(), to)
	case isNumber(st.Kind()) && isNumber(to.Kind()):
		return convertNumber(src, to)
	case st.Kind() == to.Kind() && (st.Kind() == reflect.String || st.Kind() == reflect.Bool):
		return src.Convert(to), nil
	case (st.Kind() == reflect.Slice || st.Kind() == reflect.Array) && to.Kind() == reflect.Slice:
		if st.Kind() == reflect.Slice && src.IsNil() {
			return reflect.Zero(to), nil
		}
		out := reflect.MakeSlice(to, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			ev, err := convertValue(src.Index(i), to.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case st.Kind() == reflect.Map && to.Kind() == reflect.Map:
		if src.IsNil() {
			return reflect.Zero(to), nil
		}
		out := reflect.MakeMapWithSize(to, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			kv, err := convertValue(iter.Key(), to.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			vv, err := convertValue(iter.Value(), to.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			out.SetMapIndex(kv, vv)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", ErrPropertyType, st, to)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convertNumber converts between numeric kinds, rejecting fractions,
// negative unsigned values and overflow.
func convertNumber(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()
	fail := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrPropertyType, src, to)
	}

	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		var f float64
		switch {
		case src.CanInt():
			f = float64(src.Int())
		case src.CanUint():
			f = float64(src.Uint())
		default:
			f = src.Float()
		}
		if out.OverflowFloat(f) {
			return fail()
		}
		out.SetFloat(f)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch {
		case src.CanInt():
			i = src.Int()
		case src.CanUint():
			u := src.Uint()
			if u > math.MaxInt64 {
				return fail()
			}
			i = int64(u)
		default:
			f := src.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return fail()
			}
			i = int64(f)
		}
		if out.OverflowInt(i) {
			return fail()
		}
		out.SetInt(i)

	default:
		var u uint64
		switch {
		case src.CanInt():
			i := src.Int()
			if i < 0 {
				return fail()
			}
			u = uint64(i)
		case src.CanUint():
			u = src.Uint()
		default:
			f := src.Float()
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
				return fail()
			}
			u = uint64(f)
		}
		if out.OverflowUint(u) {
			return fail()
		}
		out.SetUint(u)
	}
	return out, nil
}

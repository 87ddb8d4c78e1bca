/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package records holds the generic row helpers the grid uses when the host
// does not supply its own: deep cloning, identity comparison and keyed field
// writeback for maps and structs.
package records

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Record is a schemaless row, the Go counterpart of a plain object.
type Record map[string]any

// Clone returns a deep copy of v. Maps, slices and pointers to structs are
// copied so that writes to the clone never reach the original. Other values
// are returned as is.
func Clone[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	out := cloneValue(rv)
	return out.Interface().(T)
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		c := cloneValue(v.Elem())
		out := reflect.New(v.Type()).Elem()
		out.Set(c)
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return v
		}
		out := reflect.New(v.Elem().Type())
		out.Elem().Set(v.Elem())
		return out
	default:
		return v
	}
}

// Equal reports whether a and b identify the same record: == for comparable
// dynamic types (pointer identity for pointers), reference identity for maps,
// slices and funcs, deep equality otherwise. Two maps with equal contents are
// still different rows.
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	at, bt := reflect.TypeOf(av), reflect.TypeOf(bv)
	if at != bt {
		return false
	}
	if at.Comparable() {
		return av == bv
	}
	x, y := reflect.ValueOf(av), reflect.ValueOf(bv)
	switch x.Kind() {
	case reflect.Map, reflect.Func:
		return x.Pointer() == y.Pointer()
	case reflect.Slice:
		return x.Pointer() == y.Pointer() && x.Len() == y.Len()
	}
	return reflect.DeepEqual(av, bv)
}

// Get reads key from a map record or an exported struct field.
func Get(rec any, key string) (any, bool) {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	f, ok := fieldByKey(v, key)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

// SetField writes value under key and returns the updated record. Maps are
// written in place; pointers to structs have the matching exported field set
// (by `grid:"key"` tag, then case-insensitive name) with value converted to
// the field's kind. Struct values are copied, updated and returned.
func SetField[T any](rec T, key string, value any) (T, error) {
	if key == "" {
		return rec, fmt.Errorf("empty field key")
	}
	v := reflect.ValueOf(&rec).Elem()
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return rec, fmt.Errorf("cannot set %q on nil record", key)
		}
		inner := reflect.New(v.Elem().Type()).Elem()
		inner.Set(v.Elem())
		if err := setOn(inner, key, value); err != nil {
			return rec, err
		}
		v.Set(inner)
		return rec, nil
	}
	if err := setOn(v, key, value); err != nil {
		return rec, err
	}
	return rec, nil
}

func setOn(v reflect.Value, key string, value any) error {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return fmt.Errorf("cannot set %q on nil map", key)
		}
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", v.Type().Key())
		}
		nv, err := convert(value, v.Type().Elem())
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), nv)
		return nil
	case reflect.Pointer:
		if v.IsNil() {
			return fmt.Errorf("cannot set %q on nil pointer", key)
		}
		return setOn(v.Elem(), key, value)
	case reflect.Struct:
		f, ok := fieldByKey(v, key)
		if !ok {
			return fmt.Errorf("no field %q in %s", key, v.Type())
		}
		if !f.CanSet() {
			return fmt.Errorf("field %q in %s is not settable", key, v.Type())
		}
		nv, err := convert(value, f.Type())
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		f.Set(nv)
		return nil
	default:
		return fmt.Errorf("cannot set %q on %s", key, v.Type())
	}
}

func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, ok := sf.Tag.Lookup("grid"); ok && strings.Split(tag, ",")[0] == key {
			return v.Field(i), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, key) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// convert coerces value into a reflect.Value assignable to target. Strings
// are parsed for numeric and bool targets; numbers are converted between
// kinds and formatted for string targets.
func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(target) {
		return src, nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		switch x := value.(type) {
		case float64:
			out.SetString(strconv.FormatFloat(x, 'f', -1, 64))
		default:
			out.SetString(fmt.Sprint(value))
		}
		return out, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, err := toFloat(value)
		if err != nil {
			return out, err
		}
		if f != float64(int64(f)) {
			return out, fmt.Errorf("%v is not an integer", value)
		}
		if out.OverflowInt(int64(f)) {
			return out, fmt.Errorf("%v overflows %s", value, target)
		}
		out.SetInt(int64(f))
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, err := toFloat(value)
		if err != nil {
			return out, err
		}
		if f < 0 || f != float64(uint64(f)) {
			return out, fmt.Errorf("%v is not an unsigned integer", value)
		}
		if out.OverflowUint(uint64(f)) {
			return out, fmt.Errorf("%v overflows %s", value, target)
		}
		out.SetUint(uint64(f))
		return out, nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(value)
		if err != nil {
			return out, err
		}
		out.SetFloat(f)
		return out, nil
	case reflect.Bool:
		switch x := value.(type) {
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return out, err
			}
			out.SetBool(b)
			return out, nil
		}
	case reflect.Interface:
		if src.Type().Implements(target) {
			out.Set(src)
			return out, nil
		}
	}
	if src.Type().ConvertibleTo(target) {
		return src.Convert(target), nil
	}
	return out, fmt.Errorf("cannot use %T as %s", value, target)
}

func toFloat(value any) (float64, error) {
	if s, ok := value.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}
	return 0, fmt.Errorf("%T is not numeric", value)
}

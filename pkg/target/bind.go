package target

import (
	"fmt"
	"reflect"
)

// BindArgs converts positional argument values to the parameter types of
// a function or method signature, handling variadic tails and numeric
// conversions for document-decoded values.
func BindArgs(ft reflect.Type, positional []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(positional) < fixed {
			return nil, fmt.Errorf("expected at least %d args, got %d", fixed, len(positional))
		}
	} else if len(positional) != fixed {
		return nil, fmt.Errorf("expected %d args, got %d", fixed, len(positional))
	}

	in := make([]reflect.Value, 0, len(positional))
	for i, arg := range positional {
		var want reflect.Type
		if i < fixed {
			want = ft.In(i)
		} else {
			want = ft.In(ft.NumIn() - 1).Elem()
		}
		v, err := convertValue(arg, want)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		in = append(in, v)
	}
	return in, nil
}

// convertValue coerces a dynamic value to the wanted type. Beyond direct
// assignability it converts between numeric kinds and rebuilds []any
// slices and map[string]any maps decoded from documents into the wanted
// element types.
func convertValue(val any, want reflect.Type) (reflect.Value, error) {
	if val == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", want)
	}

	v := reflect.ValueOf(val)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if isNumericKind(v.Kind()) && isNumericKind(want.Kind()) {
		return v.Convert(want), nil
	}
	if v.Kind() == reflect.String && want.Kind() == reflect.String {
		return v.Convert(want), nil
	}

	switch want.Kind() {
	case reflect.Slice:
		if v.Kind() == reflect.Slice {
			out := reflect.MakeSlice(want, v.Len(), v.Len())
			for i := 0; i < v.Len(); i++ {
				ev, err := convertValue(v.Index(i).Interface(), want.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}
	case reflect.Map:
		if v.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(want, v.Len())
			for _, key := range v.MapKeys() {
				kv, err := convertValue(key.Interface(), want.Key())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("key %v: %w", key, err)
				}
				vv, err := convertValue(v.MapIndex(key).Interface(), want.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("value for %v: %w", key, err)
				}
				out.SetMapIndex(kv, vv)
			}
			return out, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", val, want)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

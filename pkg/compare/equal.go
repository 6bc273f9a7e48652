package compare

import "reflect"

// Equal reports deep structural equality between an actual value and an
// expected value. Unlike reflect.DeepEqual it compares compound values
// element by element with numeric cross-type coercion, so an expected
// int decoded from a YAML document matches an int64 or float64 returned
// by the subject under test. Identity is never considered.
func Equal(actual, expected any) bool {
	if actual == nil || expected == nil {
		return isNil(actual) && isNil(expected)
	}

	if af, ok := toFloat(actual); ok {
		bf, ok := toFloat(expected)
		return ok && af == bf
	}

	av := reflect.ValueOf(actual)
	bv := reflect.ValueOf(expected)

	switch av.Kind() {
	case reflect.Ptr:
		if av.IsNil() {
			return isNil(expected)
		}
		return Equal(av.Elem().Interface(), expected)
	case reflect.Slice, reflect.Array:
		return equalSequence(av, bv)
	case reflect.Map:
		return equalMap(av, bv)
	}

	if bv.Kind() == reflect.Ptr {
		if bv.IsNil() {
			return false
		}
		return Equal(actual, bv.Elem().Interface())
	}

	return reflect.DeepEqual(actual, expected)
}

func equalSequence(av, bv reflect.Value) bool {
	if bv.Kind() != reflect.Slice && bv.Kind() != reflect.Array {
		return false
	}
	if av.Len() != bv.Len() {
		return false
	}
	for i := 0; i < av.Len(); i++ {
		if !Equal(av.Index(i).Interface(), bv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func equalMap(av, bv reflect.Value) bool {
	if bv.Kind() != reflect.Map || av.Len() != bv.Len() {
		return false
	}
	for _, key := range av.MapKeys() {
		bval, ok := lookupKey(bv, key)
		if !ok || !Equal(av.MapIndex(key).Interface(), bval) {
			return false
		}
	}
	return true
}

// lookupKey finds the entry of m whose key is Equal to key, tolerating
// key type differences (e.g. interface{} keys from YAML decoding).
func lookupKey(m reflect.Value, key reflect.Value) (any, bool) {
	if v := m.MapIndex(key); v.IsValid() {
		return v.Interface(), true
	}
	for _, k := range m.MapKeys() {
		if Equal(k.Interface(), key.Interface()) {
			return m.MapIndex(k).Interface(), true
		}
	}
	return nil, false
}

// compareNumeric orders two numeric values, returning -1/0/1 and whether
// both values were numeric.
func compareNumeric(a, b any) (int, bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

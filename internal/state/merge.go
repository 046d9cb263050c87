package state

import (
	"fmt"
	"reflect"
)

// Merge is the default reducer. It returns a copy of prev with payload laid
// over it, one level deep:
//
//   - maps: every payload key is written over the copy of prev
//   - structs: every non-zero payload field is written over the copy of prev
//   - pointers to maps or structs: merged into a freshly allocated value
//   - anything else: payload replaces prev
//
// Nested maps, slices and structs are replaced wholesale, never merged. A zero
// struct field in payload reads as "not set", so Merge can never reset a
// struct field to zero; use WithReducer for that.
// Neither prev nor payload is modified.
func Merge[S any](prev, payload S) (S, error) {
	pv := reflect.ValueOf(&prev).Elem()
	nv := reflect.ValueOf(&payload).Elem()

	merged, err := mergeValue(pv, nv)
	if err != nil {
		var zero S
		return zero, err
	}
	return merged.Interface().(S), nil
}

func mergeValue(prev, payload reflect.Value) (reflect.Value, error) {
	switch prev.Kind() {
	case reflect.Map:
		return mergeMap(prev, payload), nil
	case reflect.Struct:
		return mergeStruct(prev, payload), nil
	case reflect.Pointer:
		if payload.IsNil() {
			return prev, nil
		}
		if prev.IsNil() {
			return payload, nil
		}
		elem := prev.Elem().Kind()
		if elem != reflect.Map && elem != reflect.Struct {
			return payload, nil
		}
		merged, err := mergeValue(prev.Elem(), payload.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(prev.Type().Elem())
		out.Elem().Set(merged)
		return out, nil
	case reflect.Interface:
		if payload.IsNil() {
			return prev, nil
		}
		if prev.IsNil() || prev.Elem().Type() != payload.Elem().Type() {
			return payload, nil
		}
		merged, err := mergeValue(prev.Elem(), payload.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(prev.Type()).Elem()
		out.Set(merged)
		return out, nil
	case reflect.Invalid:
		return reflect.Value{}, fmt.Errorf("merge: invalid state value")
	default:
		return payload, nil
	}
}

func mergeMap(prev, payload reflect.Value) reflect.Value {
	out := reflect.MakeMapWithSize(prev.Type(), prev.Len()+payload.Len())
	iter := prev.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}
	iter = payload.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}
	return out
}

func mergeStruct(prev, payload reflect.Value) reflect.Value {
	out := reflect.New(prev.Type()).Elem()
	out.Set(prev)
	for i := 0; i < payload.NumField(); i++ {
		if !out.Field(i).CanSet() {
			continue
		}
		field := payload.Field(i)
		if field.IsZero() {
			continue
		}
		out.Field(i).Set(field)
	}
	return out
}

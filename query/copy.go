package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/kbukum/lego/errors"
)

var timeType = reflect.TypeOf(time.Time{})

// Copy returns a structural deep copy of c. Values must be JSON-representable:
// scalars keep their Go type, containers are rebuilt, and nothing in the
// result shares memory with the input. Functions, channels, complex numbers,
// maps with non-string keys and cyclic structures fail with a
// SERIALIZATION_ERROR naming the offending path.
func Copy(c Collection) (Collection, error) {
	cp := newCopier()
	out := make(Collection, len(c))
	for i, r := range c {
		rec, err := cp.record(r, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

// CopyRecord returns a structural deep copy of a single record.
func CopyRecord(r Record) (Record, error) {
	return newCopier().record(r, "")
}

type copier struct {
	// visiting holds the containers on the current descent path.
	visiting map[uintptr]struct{}
}

func newCopier() *copier {
	return &copier{visiting: make(map[uintptr]struct{})}
}

func (cp *copier) enter(ptr uintptr, path string) error {
	if ptr == 0 {
		return nil
	}
	if _, ok := cp.visiting[ptr]; ok {
		return errors.Serialization(path, "cyclic structure")
	}
	cp.visiting[ptr] = struct{}{}
	return nil
}

func (cp *copier) leave(ptr uintptr) {
	delete(cp.visiting, ptr)
}

func (cp *copier) record(r Record, path string) (Record, error) {
	if r == nil {
		return nil, nil
	}
	ptr := reflect.ValueOf(r).Pointer()
	if err := cp.enter(ptr, path); err != nil {
		return nil, err
	}
	defer cp.leave(ptr)

	out := make(Record, len(r))
	for k, v := range r {
		copied, err := cp.value(v, joinPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = copied
	}
	return out, nil
}

func (cp *copier) value(v any, path string) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, json.Number, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val, nil
	case Record:
		return cp.record(val, path)
	case map[string]any:
		rec, err := cp.record(Record(val), path)
		return map[string]any(rec), err
	case []any:
		if val == nil {
			return val, nil
		}
		ptr := reflect.ValueOf(val).Pointer()
		if len(val) > 0 {
			if err := cp.enter(ptr, path); err != nil {
				return nil, err
			}
			defer cp.leave(ptr)
		}
		out := make([]any, len(val))
		for i, item := range val {
			copied, err := cp.value(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = copied
		}
		return out, nil
	}

	copied, err := cp.reflectValue(reflect.ValueOf(v), path)
	if err != nil {
		return nil, err
	}
	return copied.Interface(), nil
}

func (cp *copier) reflectValue(rv reflect.Value, path string) (reflect.Value, error) {
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rv, nil

	case reflect.Interface:
		if rv.IsNil() {
			return rv, nil
		}
		elem, err := cp.reflectValue(rv.Elem(), path)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(elem)
		return out, nil

	case reflect.Pointer:
		if rv.IsNil() {
			return rv, nil
		}
		ptr := rv.Pointer()
		if err := cp.enter(ptr, path); err != nil {
			return reflect.Value{}, err
		}
		defer cp.leave(ptr)
		elem, err := cp.reflectValue(rv.Elem(), path)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(elem)
		return out, nil

	case reflect.Map:
		if !isKeyKind(rv.Type().Key().Kind()) {
			return reflect.Value{}, errors.Serialization(path,
				fmt.Sprintf("map key type %s is not representable", rv.Type().Key()))
		}
		if rv.IsNil() {
			return rv, nil
		}
		ptr := rv.Pointer()
		if err := cp.enter(ptr, path); err != nil {
			return reflect.Value{}, err
		}
		defer cp.leave(ptr)
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elem, err := cp.reflectValue(iter.Value(), joinPath(path, fmt.Sprint(iter.Key().Interface())))
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(iter.Key(), elem)
		}
		return out, nil

	case reflect.Slice:
		if rv.IsNil() {
			return rv, nil
		}
		if rv.Len() > 0 {
			ptr := rv.Pointer()
			if err := cp.enter(ptr, path); err != nil {
				return reflect.Value{}, err
			}
			defer cp.leave(ptr)
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := cp.reflectValue(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			elem, err := cp.reflectValue(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case reflect.Struct:
		if rv.Type() == timeType {
			return rv, nil
		}
		// Unexported fields are dropped, as a JSON round trip would.
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			elem, err := cp.reflectValue(rv.Field(i), joinPath(path, field.Name))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(elem)
		}
		return out, nil

	case reflect.Invalid:
		return rv, nil

	default:
		return reflect.Value{}, errors.Serialization(path,
			fmt.Sprintf("%s values are not representable", rv.Kind()))
	}
}

func isKeyKind(k reflect.Kind) bool {
	switch k {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

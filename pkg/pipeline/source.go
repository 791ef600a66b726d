package pipeline

import (
	"reflect"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Source is a value handed to Apply together with how the pipeline may use it.
type Source struct {
	value     any
	ownership model.Ownership
}

// Own hands v over to the pipeline, which may consume it.
// The caller must not use v afterwards when it is a slice or a map.
func Own[T any](v T) Source {
	return Source{value: v, ownership: model.Owned}
}

// Ref lets the pipeline read *p. Stages writing to the aggregate work on a copy.
func Ref[T any](p *T) Source {
	return Source{value: *p, ownership: model.ConstAlias}
}

// MutRef lets the pipeline write to the storage behind *p for the duration of the call.
func MutRef[T any](p *T) Source {
	return Source{value: *p, ownership: model.MutableAlias}
}

// Move takes *p from the caller and resets it to its zero value.
func Move[T any](p *T) Source {
	v := *p
	var zero T
	*p = zero

	return Source{value: v, ownership: model.Moved}
}

// Ownership returns the tag of the source.
func (s Source) Ownership() model.Ownership {
	return s.ownership
}

// sourceOf wraps a bare value. Values reaching caller storage through a slice, map, pointer
// or interface are read-only aliases of it. Anything else was copied when passed and is owned.
func sourceOf(v any) Source {
	switch src := v.(type) {
	case Source:
		return src
	case *Source:
		return *src
	case Sequence:
		return Source{value: src, ownership: model.Owned}
	}
	if v == nil {
		return Source{value: v, ownership: model.Owned}
	}
	if holdsReferences(reflect.TypeOf(v)) {
		return Source{value: v, ownership: model.ConstAlias}
	}

	return Source{value: v, ownership: model.Owned}
}

func holdsReferences(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return true
	case reflect.Array:
		return holdsReferences(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsReferences(t.Field(i).Type) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// Sequence is a lazily produced aggregate, such as a generator.
type Sequence interface {
	// Range calls yield for each element until yield returns false or the sequence is exhausted.
	Range(yield func(any) bool)
	// ElemType returns the type of the elements.
	ElemType() reflect.Type
}

// Ranger is implemented by eager aggregates that know how to iterate themselves.
type Ranger interface {
	Range(yield func(any) bool)
}

// Cloner is implemented by aggregates needing more than a shallow copy to stop aliasing.
type Cloner interface {
	Clone() any
}

// iterable reports whether v can feed an Incremental stage.
func iterable(v any) bool {
	switch v.(type) {
	case Sequence, Ranger:
		return true
	}
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return true
	default:
		return false
	}
}

// each calls yield for every element of v. It returns ErrNotIterable when v has no elements to iterate.
func each(v any, yield func(any) bool) error {
	switch agg := v.(type) {
	case Sequence:
		agg.Range(yield)

		return nil
	case Ranger:
		agg.Range(yield)

		return nil
	case string:
		for _, r := range agg {
			if !yield(r) {
				return nil
			}
		}

		return nil
	}
	if v == nil {
		return ErrNotIterable
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !yield(rv.Index(i).Interface()) {
				return nil
			}
		}

		return nil
	default:
		return ErrNotIterable
	}
}

// elemTypeOf returns the element type produced by iterating a value of type t, nil when unknown.
func elemTypeOf(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem()
	case reflect.String:
		return reflect.TypeFor[rune]()
	default:
		return nil
	}
}

// clone returns a deep copy of v that shares no storage with it. It follows slices, arrays,
// maps, structs, pointers and interfaces. Unexported struct fields, functions, channels and
// errors are kept as is; aggregates needing more implement Cloner.
func clone(v any) any {
	if v == nil {
		return nil
	}

	return deepCopy(reflect.ValueOf(v), make(map[uintptr]reflect.Value)).Interface()
}

var (
	clonerType = reflect.TypeFor[Cloner]()
	errorType  = reflect.TypeFor[error]()
	rangerType = reflect.TypeFor[Ranger]()
)

// deepCopy copies v. seen maps the pointers already copied to their copy.
func deepCopy(v reflect.Value, seen map[uintptr]reflect.Value) reflect.Value {
	typ := v.Type()
	if typ.Kind() != reflect.Interface && typ.Implements(errorType) {
		return v
	}
	if typ.Implements(clonerType) && typ.Kind() != reflect.Interface && !isNilValue(v) {
		if cp := reflect.ValueOf(v.Interface().(Cloner).Clone()); cp.IsValid() && cp.Type().AssignableTo(typ) {
			out := reflect.New(typ).Elem()
			out.Set(cp)

			return out
		}
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		if cp, ok := seen[v.Pointer()]; ok {
			return cp
		}
		cp := reflect.New(typ.Elem())
		seen[v.Pointer()] = cp
		cp.Elem().Set(deepCopy(v.Elem(), seen))

		return cp
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		cp := reflect.New(typ).Elem()
		cp.Set(deepCopy(v.Elem(), seen))

		return cp
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(typ, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}

		return cp
	case reflect.Array:
		cp := reflect.New(typ).Elem()
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}

		return cp
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(typ, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), deepCopy(iter.Value(), seen))
		}

		return cp
	case reflect.Struct:
		cp := reflect.New(typ).Elem()
		cp.Set(v)
		for i := 0; i < typ.NumField(); i++ {
			if field := cp.Field(i); field.CanSet() {
				field.Set(deepCopy(v.Field(i), seen))
			}
		}

		return cp
	default:
		return v
	}
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// iterableType reports whether values of type t can feed an Incremental stage.
func iterableType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return true
	default:
		return t.Implements(rangerType)
	}
}

package pipeline

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet  = errors.New("pipeline must be set")
	ErrStyleMismatch      = errors.New("incompatible processing styles")
	ErrNotComplete        = errors.New("pipeline must end Complete")
	ErrElementType        = errors.New("incompatible element types")
	ErrNotAStage          = errors.New("item is not a stage")
	ErrSourcePosition     = errors.New("a source can only start a pipeline")
	ErrMissingEntryPoint  = errors.New("stage does not implement its declared entry point")
	ErrGeneratorConsumed  = errors.New("generator already consumed")
	ErrGeneratorLimit     = errors.New("generator limit exceeded")
	ErrNotIterable        = errors.New("aggregate cannot be iterated")
	ErrResultType         = errors.New("unexpected result type")
	ErrNoResult           = errors.New("pipeline produced no result")
	ErrUnexpectedElement  = errors.New("element reached a stage that expects an aggregate")
	ErrTakeNegative       = errors.New("take count must not be negative")
	ErrChunkSize          = errors.New("chunk size must be greater than 0")
	ErrTeeMustHaveSubPipe = errors.New("tee needs at least one sub-pipeline")
)

// elementTypeError is raised by built-in stages when an element does not have the type they were built for.
// Run recovers it and returns it as an error.
type elementTypeError struct {
	stage string
	want  string
	got   any
}

func (e *elementTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T", e.stage, e.want, e.got)
}

func (e *elementTypeError) Unwrap() error {
	return ErrElementType
}

// as converts v to T or raises an elementTypeError.
func as[T any](stage string, v any) T {
	if t, ok := v.(T); ok {
		return t
	}

	want := reflect.TypeFor[T]()
	if v == nil && nilable(want) {
		var zero T

		return zero
	}
	panic(&elementTypeError{stage: stage, want: want.String(), got: v})
}

// nilable reports whether nil is a valid value of type t.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

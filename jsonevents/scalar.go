package jsonevents

import (
	"fmt"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/result"
)

// scalarHandler captures the single Scalar event PushPop guarantees a
// scalar sub-stream delivers, then converts it with convert. Its first
// event decides the outcome: a sub-stream that instead opens an object
// or array is not this handler's concern and is left alone as Empty,
// so it can sit next to object/array branches in a OneOf without
// misclassifying their nested scalars as its own match.
type scalarHandler[T any] struct {
	convert func(any) (T, error)
	out     result.Result[T]
	set     bool
}

func (h *scalarHandler[T]) IsFinished() bool { return h.set }

func (h *scalarHandler[T]) HandleInput(e Event) (result.Result[T], bool) {
	if h.set {
		return result.Empty[T](), false
	}
	if e.Kind != Scalar {
		h.set = true
		h.out = result.Empty[T]()
		return h.out, true
	}
	v, err := h.convert(e.Value)
	h.set = true
	if err != nil {
		h.out = result.Error[T](err)
	} else {
		h.out = result.Success(v)
	}
	return h.out, true
}

func (h *scalarHandler[T]) HandleError(err error) (result.Result[T], bool) {
	h.set = true
	h.out = result.Error[T](err)
	return h.out, true
}

func (h *scalarHandler[T]) HandleEnd() result.Result[T] {
	if h.set {
		return h.out
	}
	return result.Empty[T]()
}

func scalarParser[T any](convert func(any) (T, error)) weave.Consumer[Event, T] {
	return weave.ConsumerFunc[Event, T](func() weave.Handler[Event, result.Result[T]] {
		return &scalarHandler[T]{convert: convert}
	})
}

// ScalarValue passes a scalar's decoded value through unchanged, as
// `any` (string, float64, bool, or nil).
func ScalarValue() weave.Consumer[Event, any] {
	return scalarParser(func(v any) (any, error) { return v, nil })
}

// String requires the matched scalar to decode as a JSON string.
func String() weave.Consumer[Event, string] {
	return scalarParser(func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("jsonevents: expected string, got %T", v)
		}
		return s, nil
	})
}

// Number requires the matched scalar to decode as a JSON number.
func Number() weave.Consumer[Event, float64] {
	return scalarParser(func(v any) (float64, error) {
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("jsonevents: expected number, got %T", v)
		}
		return n, nil
	})
}

// Bool requires the matched scalar to decode as a JSON boolean.
func Bool() weave.Consumer[Event, bool] {
	return scalarParser(func(v any) (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("jsonevents: expected bool, got %T", v)
		}
		return b, nil
	})
}

package weave

import (
	"errors"
	"io"
)

// Handler is a push-driven state machine that consumes events one at a
// time and emits at most one terminal result over its lifetime.
//
// Protocol: once IsFinished reports true, the driver must not call any
// other method. HandleInput and HandleError report a result by
// returning done=true; HandleEnd is called at most once, and only when
// no prior call has already produced a result.
type Handler[In, Out any] interface {
	IsFinished() bool
	HandleInput(in In) (out Out, done bool)
	HandleError(err error) (out Out, done bool)
	HandleEnd() Out
}

// EventSource bridges an external event producer (a tokenizer, a
// resource reader) to the driver loop. Next returns io.EOF once the
// stream is exhausted. Close must be idempotent: releasing the source
// more than once has the same observable effect as releasing it once.
type EventSource[E any] interface {
	Next() (E, error)
	Close() error
}

// ErrNoResult is returned by ParseWith when a parser reaches end of
// input having produced Result.Empty rather than a value or an error.
var ErrNoResult = errors.New("weave: parser produced no result")

// Parse drives h to completion by pulling events from source, and
// releases source exactly once on every exit path: normal completion,
// short-circuit, or a panic unwinding through this call.
//
// A fatal protocol violation inside a handler (a panic) is allowed to
// propagate to the caller after the source has been released; Parse
// does not recover it, per the framework's error model (see the error
// handling section of SPEC_FULL.md: protocol violations are programmer
// errors, not recoverable outcomes).
func Parse[E, Out any](source EventSource[E], h Handler[E, Out]) (out Out, err error) {
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for !h.IsFinished() {
		e, nextErr := source.Next()
		if nextErr != nil {
			if errors.Is(nextErr, io.EOF) {
				break
			}
			if result, done := h.HandleError(nextErr); done {
				return result, nil
			}
			continue
		}
		if result, done := h.HandleInput(e); done {
			return result, nil
		}
	}
	return h.HandleEnd(), nil
}

package weave_test

import (
	"errors"
	"io"
	"testing"

	"github.com/dhamidi/weave"
)

// sliceSource replays a fixed slice of events, then reports io.EOF, and
// records whether it has been closed and how many times.
type sliceSource[E any] struct {
	items  []E
	pos    int
	closes int
}

func (s *sliceSource[E]) Next() (E, error) {
	if s.pos >= len(s.items) {
		var zero E
		return zero, io.EOF
	}
	v := s.items[s.pos]
	s.pos++
	return v, nil
}

func (s *sliceSource[E]) Close() error {
	s.closes++
	return nil
}

// sumHandler finishes once it has seen n ints, summing them.
type sumHandler struct {
	remaining int
	total     int
}

func (h *sumHandler) IsFinished() bool { return h.remaining <= 0 }

func (h *sumHandler) HandleInput(in int) (int, bool) {
	h.total += in
	h.remaining--
	if h.remaining <= 0 {
		return h.total, true
	}
	return 0, false
}

func (h *sumHandler) HandleError(err error) (int, bool) { return 0, false }

func (h *sumHandler) HandleEnd() int { return h.total }

func TestParseDrainsAndReleasesSourceOnce(t *testing.T) {
	src := &sliceSource[int]{items: []int{1, 2, 3, 4, 5}}
	h := &sumHandler{remaining: 100}
	out, err := weave.Parse[int, int](src, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 15 {
		t.Fatalf("expected sum 15, got %d", out)
	}
	if src.closes != 1 {
		t.Fatalf("expected exactly one Close, got %d", src.closes)
	}
}

func TestParseShortCircuitsAndStillCloses(t *testing.T) {
	src := &sliceSource[int]{items: []int{1, 2, 3, 4, 5}}
	h := &sumHandler{remaining: 2}
	out, err := weave.Parse[int, int](src, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 3 {
		t.Fatalf("expected short-circuit sum 3, got %d", out)
	}
	if src.pos != 2 {
		t.Fatalf("expected only 2 events pulled, got %d", src.pos)
	}
	if src.closes != 1 {
		t.Fatalf("expected exactly one Close, got %d", src.closes)
	}
}

type erroringSource struct {
	err    error
	closes int
}

func (s *erroringSource) Next() (int, error) { return 0, s.err }
func (s *erroringSource) Close() error       { s.closes++; return nil }

type finishOnErrorHandler struct {
	err error
}

func (h *finishOnErrorHandler) IsFinished() bool             { return false }
func (h *finishOnErrorHandler) HandleInput(int) (int, bool)  { return 0, false }
func (h *finishOnErrorHandler) HandleEnd() int                { return -1 }
func (h *finishOnErrorHandler) HandleError(err error) (int, bool) {
	h.err = err
	return 42, true
}

func TestParseRoutesNonEOFErrorsToHandleError(t *testing.T) {
	src := &erroringSource{err: errors.New("boom")}
	h := &finishOnErrorHandler{}
	out, err := weave.Parse[int, int](src, h)
	if err != nil {
		t.Fatalf("unexpected top-level error: %v", err)
	}
	if out != 42 {
		t.Fatalf("expected handler to resolve the fault into 42, got %d", out)
	}
	if h.err == nil || h.err.Error() != "boom" {
		t.Fatalf("expected handler to see the source error, got %v", h.err)
	}
	if src.closes != 1 {
		t.Fatalf("expected exactly one Close, got %d", src.closes)
	}
}

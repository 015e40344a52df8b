package weave_test

import (
	"errors"
	"testing"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/result"
)

// echoHandler finishes as soon as it sees exactly one input, echoing it.
type echoHandler struct {
	done bool
}

func (h *echoHandler) IsFinished() bool { return h.done }

func (h *echoHandler) HandleInput(e tagEvent) (result.Result[int], bool) {
	h.done = true
	return result.Success(e.value), true
}

func (h *echoHandler) HandleError(err error) (result.Result[int], bool) {
	h.done = true
	return result.Error[int](err), true
}

func (h *echoHandler) HandleEnd() result.Result[int] {
	h.done = true
	return result.Empty[int]()
}

func echoParser() weave.ParserFunc[struct{}, tagEvent, any] {
	return func(struct{}) weave.Handler[tagEvent, result.Result[any]] {
		return weave.Box[tagEvent, int](&echoHandler{})
	}
}

func TestCombineWaitsForAllChildren(t *testing.T) {
	b := weave.Combine[struct{}, tagEvent](echoParser(), weave.AnyParser[struct{}, tagEvent, int](sumOne()))
	p := weave.As(b, func(vs []any) int { return vs[0].(int) + vs[1].(int) })
	h := p.MakeHandler(struct{}{})

	if _, done := h.HandleInput(value(3)); done {
		t.Fatalf("should not finish while the summing child is still open")
	}
	if _, done := h.HandleInput(value(4)); done {
		t.Fatalf("should not finish while the summing child is still open")
	}
	out := h.HandleEnd()
	v, ok := out.Value()
	if !ok || v != 10 {
		t.Fatalf("expected echo 3 plus sum 7 = 10, got %v (ok=%v)", v, ok)
	}
}

type erroringChildHandler struct{ done bool }

func (h *erroringChildHandler) IsFinished() bool { return h.done }
func (h *erroringChildHandler) HandleInput(tagEvent) (result.Result[int], bool) {
	h.done = true
	return result.Error[int](errors.New("child failed")), true
}
func (h *erroringChildHandler) HandleError(err error) (result.Result[int], bool) {
	h.done = true
	return result.Error[int](err), true
}
func (h *erroringChildHandler) HandleEnd() result.Result[int] { return result.Empty[int]() }

func TestCombinePropagatesFirstErrorByIndex(t *testing.T) {
	failFirst := weave.ParserFunc[struct{}, tagEvent, any](func(struct{}) weave.Handler[tagEvent, result.Result[any]] {
		return weave.Box[tagEvent, int](&erroringChildHandler{})
	})
	b := weave.Combine[struct{}, tagEvent](failFirst, echoParser())
	p := weave.As(b, func(vs []any) int { return 0 })
	h := p.MakeHandler(struct{}{})

	out, done := h.HandleInput(value(1))
	if !done {
		t.Fatalf("expected the compound to finish once the failing child errors and the other completes")
	}
	if !out.IsError() || out.Err().Error() != "child failed" {
		t.Fatalf("expected propagated error, got %v", out)
	}
}

func TestOneOfPicksLowestIndexOnTie(t *testing.T) {
	a := weave.ParserFunc[struct{}, tagEvent, int](func(struct{}) weave.Handler[tagEvent, result.Result[int]] {
		return &echoHandler{}
	})
	bp := weave.ParserFunc[struct{}, tagEvent, int](func(struct{}) weave.Handler[tagEvent, result.Result[int]] {
		return &echoHandler{}
	})
	p := weave.OneOf[struct{}, tagEvent, int](a, weave.MapParser[struct{}, tagEvent, int, int](bp, func(v int) int { return v * 10 }))
	h := p.MakeHandler(struct{}{})

	out, done := h.HandleInput(value(9))
	if !done {
		t.Fatalf("expected OneOf to resolve once both children succeed on the same event")
	}
	v, _ := out.Value()
	if v != 9 {
		t.Fatalf("expected lowest-index winner value 9, got %d", v)
	}
}

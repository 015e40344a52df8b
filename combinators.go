package weave

import "github.com/dhamidi/weave/result"

// mapHandler wraps an inner Handler, transforming its terminal Result
// through f once the inner handler finishes.
type mapHandler[E, R, S any] struct {
	inner Handler[E, result.Result[R]]
	f     func(R) S
}

func (m *mapHandler[E, R, S]) IsFinished() bool { return m.inner.IsFinished() }

func (m *mapHandler[E, R, S]) HandleInput(e E) (result.Result[S], bool) {
	out, done := m.inner.HandleInput(e)
	if !done {
		return result.Empty[S](), false
	}
	return result.Map(out, m.f), true
}

func (m *mapHandler[E, R, S]) HandleError(err error) (result.Result[S], bool) {
	out, done := m.inner.HandleError(err)
	if !done {
		return result.Empty[S](), false
	}
	return result.Map(out, m.f), true
}

func (m *mapHandler[E, R, S]) HandleEnd() result.Result[S] {
	return result.Map(m.inner.HandleEnd(), m.f)
}

// MapParser wraps p so that its emitted result is transformed by f.
// A panic inside f is caught by result.Map and turned into Error.
func MapParser[Ctx, E, R, S any](p Parser[Ctx, E, R], f func(R) S) Parser[Ctx, E, S] {
	return ParserFunc[Ctx, E, S](func(ctx Ctx) Handler[E, result.Result[S]] {
		return &mapHandler[E, R, S]{inner: p.MakeHandler(ctx), f: f}
	})
}

// firstHandler drives a Splitter until it emits once, then cancels it,
// giving it the short-circuit semantics First needs.
type firstHandler[Ctx, E, R any] struct {
	splitter *Splitter[Ctx, E, R]
}

func (h *firstHandler[Ctx, E, R]) IsFinished() bool { return h.splitter.IsFinished() }

func (h *firstHandler[Ctx, E, R]) HandleInput(e E) (result.Result[R], bool) {
	out, emitted := h.splitter.HandleInput(e)
	if emitted {
		h.splitter.Cancel()
		return out, true
	}
	return result.Empty[R](), false
}

func (h *firstHandler[Ctx, E, R]) HandleError(err error) (result.Result[R], bool) {
	out, emitted := h.splitter.HandleError(err)
	if emitted {
		h.splitter.Cancel()
		return out, true
	}
	return result.Empty[R](), false
}

func (h *firstHandler[Ctx, E, R]) HandleEnd() result.Result[R] {
	out, _ := h.splitter.HandleEnd()
	return out
}

// First runs the inner parser on only the first sub-stream matched by
// s, then stops consuming input: the driver may release the source
// promptly once that sub-stream closes.
func First[Ctx, E, R any](s Split[Ctx, E, R]) Consumer[E, R] {
	return ConsumerFunc[E, R](func() Handler[E, result.Result[R]] {
		return &firstHandler[Ctx, E, R]{splitter: s.MakeHandler()}
	})
}

// listHandler accumulates every emission of a Splitter until end of
// input, then folds them with result.List.
type listHandler[Ctx, E, R any] struct {
	splitter *Splitter[Ctx, E, R]
	items    []result.Result[R]
}

func (h *listHandler[Ctx, E, R]) IsFinished() bool { return h.splitter.IsFinished() }

func (h *listHandler[Ctx, E, R]) HandleInput(e E) (result.Result[[]R], bool) {
	if out, emitted := h.splitter.HandleInput(e); emitted {
		h.items = append(h.items, out)
	}
	return result.Empty[[]R](), false
}

func (h *listHandler[Ctx, E, R]) HandleError(err error) (result.Result[[]R], bool) {
	if out, emitted := h.splitter.HandleError(err); emitted {
		h.items = append(h.items, out)
	}
	return result.Empty[[]R](), false
}

func (h *listHandler[Ctx, E, R]) HandleEnd() result.Result[[]R] {
	if out, emitted := h.splitter.HandleEnd(); emitted {
		h.items = append(h.items, out)
	}
	return result.List(h.items)
}

// AsListOf collects the inner parser's result across every sub-stream s
// matches, in first-seen order, running to end of input.
func AsListOf[Ctx, E, R any](s Split[Ctx, E, R]) Consumer[E, []R] {
	return ConsumerFunc[E, []R](func() Handler[E, result.Result[[]R]] {
		return &listHandler[Ctx, E, R]{splitter: s.MakeHandler()}
	})
}

// oneOfHandler runs several parsers on the same sub-stream in parallel,
// exactly like CompoundHandler, but resolves as soon as any child
// succeeds instead of waiting for every child to finish.
type oneOfHandler[E, R any] struct {
	children []Handler[E, result.Result[R]]
	slots    []result.Result[R]
	filled   []bool
	done     bool
}

func (o *oneOfHandler[E, R]) IsFinished() bool { return o.done }

func (o *oneOfHandler[E, R]) fallback() result.Result[R] {
	for _, s := range o.slots {
		if s.IsError() {
			return s
		}
	}
	return result.Empty[R]()
}

func (o *oneOfHandler[E, R]) step(deliver func(Handler[E, result.Result[R]]) (result.Result[R], bool)) (result.Result[R], bool) {
	for i, ch := range o.children {
		if o.filled[i] || ch.IsFinished() {
			continue
		}
		out, done := deliver(ch)
		if done {
			o.slots[i] = out
			o.filled[i] = true
		}
	}

	allFilled := true
	for i, filled := range o.filled {
		if !filled {
			allFilled = false
			continue
		}
		if o.slots[i].IsSuccess() {
			o.done = true
			return o.slots[i], true
		}
	}
	if allFilled {
		o.done = true
		return o.fallback(), true
	}
	return result.Empty[R](), false
}

func (o *oneOfHandler[E, R]) HandleInput(e E) (result.Result[R], bool) {
	return o.step(func(h Handler[E, result.Result[R]]) (result.Result[R], bool) { return h.HandleInput(e) })
}

func (o *oneOfHandler[E, R]) HandleError(err error) (result.Result[R], bool) {
	return o.step(func(h Handler[E, result.Result[R]]) (result.Result[R], bool) { return h.HandleError(err) })
}

func (o *oneOfHandler[E, R]) HandleEnd() result.Result[R] {
	for i, ch := range o.children {
		if !o.filled[i] {
			o.slots[i] = ch.HandleEnd()
			o.filled[i] = true
		}
	}
	o.done = true
	for _, s := range o.slots {
		if s.IsSuccess() {
			return s
		}
	}
	return o.fallback()
}

// OneOf runs parsers in parallel on the same sub-stream. The first to
// emit Success wins; ties on the same event are broken by the lowest
// index. If every parser yields Empty, the result is Empty; if none
// succeeds but at least one errors, the first Error by index wins.
func OneOf[Ctx, E, R any](parsers ...Parser[Ctx, E, R]) Parser[Ctx, E, R] {
	return ParserFunc[Ctx, E, R](func(ctx Ctx) Handler[E, result.Result[R]] {
		children := make([]Handler[E, result.Result[R]], len(parsers))
		for i, p := range parsers {
			children[i] = p.MakeHandler(ctx)
		}
		return &oneOfHandler[E, R]{
			children: children,
			slots:    make([]result.Result[R], len(children)),
			filled:   make([]bool, len(children)),
		}
	})
}

// RawHandler mirrors Handler but its terminal value is a plain R rather
// than a Result[R]; a panic inside it is not caught. It exists purely
// for interop at the framework's edge, via WrapSafe / UnwrapSafe.
type RawHandler[In, R any] interface {
	IsFinished() bool
	HandleInput(in In) (out R, done bool)
	HandleError(err error) (out R, done bool)
	HandleEnd() R
}

// RawParser is the RawHandler counterpart to Parser.
type RawParser[Ctx, E, R any] interface {
	MakeHandler(ctx Ctx) RawHandler[E, R]
}

// RawParserFunc adapts a plain function to the RawParser interface.
type RawParserFunc[Ctx, E, R any] func(ctx Ctx) RawHandler[E, R]

func (f RawParserFunc[Ctx, E, R]) MakeHandler(ctx Ctx) RawHandler[E, R] { return f(ctx) }

type unwrapSafeHandler[E, R any] struct {
	inner RawHandler[E, R]
}

func (h *unwrapSafeHandler[E, R]) IsFinished() bool { return h.inner.IsFinished() }

func (h *unwrapSafeHandler[E, R]) HandleInput(e E) (out result.Result[R], done bool) {
	defer func() {
		if rec := recover(); rec != nil {
			out, done = result.Error[R](panicToError(rec)), true
		}
	}()
	v, fin := h.inner.HandleInput(e)
	if !fin {
		return result.Empty[R](), false
	}
	return result.Success(v), true
}

func (h *unwrapSafeHandler[E, R]) HandleError(err error) (out result.Result[R], done bool) {
	defer func() {
		if rec := recover(); rec != nil {
			out, done = result.Error[R](panicToError(rec)), true
		}
	}()
	v, fin := h.inner.HandleError(err)
	if !fin {
		return result.Empty[R](), false
	}
	return result.Success(v), true
}

func (h *unwrapSafeHandler[E, R]) HandleEnd() (out result.Result[R]) {
	defer func() {
		if rec := recover(); rec != nil {
			out = result.Error[R](panicToError(rec))
		}
	}()
	return result.Success(h.inner.HandleEnd())
}

// UnwrapSafe adapts a RawParser, whose handler may panic, into an
// ordinary Parser whose handler catches that panic and turns it into
// Result.Error.
func UnwrapSafe[Ctx, E, R any](p RawParser[Ctx, E, R]) Parser[Ctx, E, R] {
	return ParserFunc[Ctx, E, R](func(ctx Ctx) Handler[E, result.Result[R]] {
		return &unwrapSafeHandler[E, R]{inner: p.MakeHandler(ctx)}
	})
}

type wrapSafeHandler[E, R any] struct {
	inner Handler[E, result.Result[R]]
}

func (h *wrapSafeHandler[E, R]) IsFinished() bool { return h.inner.IsFinished() }

func mustUnwrap[R any](r result.Result[R]) R {
	if v, ok := r.Value(); ok {
		return v
	}
	if r.IsError() {
		panic(r.Err())
	}
	panic("weave: WrapSafe parser produced no result")
}

func (h *wrapSafeHandler[E, R]) HandleInput(e E) (R, bool) {
	out, done := h.inner.HandleInput(e)
	if !done {
		var zero R
		return zero, false
	}
	return mustUnwrap(out), true
}

func (h *wrapSafeHandler[E, R]) HandleError(err error) (R, bool) {
	out, done := h.inner.HandleError(err)
	if !done {
		var zero R
		return zero, false
	}
	return mustUnwrap(out), true
}

func (h *wrapSafeHandler[E, R]) HandleEnd() R {
	return mustUnwrap(h.inner.HandleEnd())
}

// WrapSafe adapts a Result-valued Parser into a RawParser for callers
// that only want the happy path and are prepared to have Result.Error
// (or Result.Empty) surface as a panic instead.
func WrapSafe[Ctx, E, R any](p Parser[Ctx, E, R]) RawParser[Ctx, E, R] {
	return RawParserFunc[Ctx, E, R](func(ctx Ctx) RawHandler[E, R] {
		return &wrapSafeHandler[E, R]{inner: p.MakeHandler(ctx)}
	})
}

// ParseWith drives a Parser to completion against source and unwraps
// its Result: this is the single top-level entry point external callers
// use (see the design notes' exit-behavior contract). An Error becomes
// a returned error; Empty becomes ErrNoResult.
func ParseWith[Ctx, E, R any](source EventSource[E], p Parser[Ctx, E, R], ctx Ctx) (R, error) {
	out, err := Parse[E, result.Result[R]](source, p.MakeHandler(ctx))
	if err != nil {
		var zero R
		return zero, err
	}
	if out.IsError() {
		var zero R
		return zero, out.Err()
	}
	if v, ok := out.Value(); ok {
		return v, nil
	}
	var zero R
	return zero, ErrNoResult
}

package weave

import "github.com/dhamidi/weave/result"

// boxedHandler erases a Handler[E, Result[T]]'s concrete result type to
// `any`, which is what lets CompoundHandler hold children of different
// result types in one slice. This stands in for the fixed-arity
// Combined1..22 tuple family a statically-typed host language would
// need; see the design notes in SPEC_FULL.md for the rationale.
type boxedHandler[E, T any] struct {
	inner Handler[E, result.Result[T]]
}

// Box adapts a typed child Handler for use inside a CompoundHandler.
func Box[E, T any](h Handler[E, result.Result[T]]) Handler[E, result.Result[any]] {
	return &boxedHandler[E, T]{inner: h}
}

func boxResult[T any](r result.Result[T]) result.Result[any] {
	if v, ok := r.Value(); ok {
		return result.Success[any](v)
	}
	if r.IsError() {
		return result.Error[any](r.Err())
	}
	return result.Empty[any]()
}

func (b *boxedHandler[E, T]) IsFinished() bool { return b.inner.IsFinished() }

func (b *boxedHandler[E, T]) HandleInput(e E) (result.Result[any], bool) {
	out, done := b.inner.HandleInput(e)
	return boxResult(out), done
}

func (b *boxedHandler[E, T]) HandleError(err error) (result.Result[any], bool) {
	out, done := b.inner.HandleError(err)
	return boxResult(out), done
}

func (b *boxedHandler[E, T]) HandleEnd() result.Result[any] {
	return boxResult(b.inner.HandleEnd())
}

// AnyParser adapts a typed Parser for use as one of Combine's children.
func AnyParser[Ctx, E, T any](p Parser[Ctx, E, T]) Parser[Ctx, E, any] {
	return ParserFunc[Ctx, E, any](func(ctx Ctx) Handler[E, result.Result[any]] {
		return Box[E, T](p.MakeHandler(ctx))
	})
}

// CompoundHandler runs a fixed vector of child handlers in lock-step on
// one event stream. Every child sees every event, in index order,
// before the next event is accepted. Once every child has produced a
// result, the combiner runs once and the compound handler finishes.
type CompoundHandler[E, R any] struct {
	children []Handler[E, result.Result[any]]
	slots    []result.Result[any]
	filled   []bool
	combine  func([]result.Result[any]) result.Result[R]
	done     bool
}

// NewCompoundHandler builds a CompoundHandler from its children and a
// combiner applied once every slot is filled.
func NewCompoundHandler[E, R any](children []Handler[E, result.Result[any]], combine func([]result.Result[any]) result.Result[R]) *CompoundHandler[E, R] {
	return &CompoundHandler[E, R]{
		children: children,
		slots:    make([]result.Result[any], len(children)),
		filled:   make([]bool, len(children)),
		combine:  combine,
	}
}

func (c *CompoundHandler[E, R]) IsFinished() bool { return c.done }

func (c *CompoundHandler[E, R]) deliver(step func(Handler[E, result.Result[any]]) (result.Result[any], bool)) (result.Result[R], bool) {
	for i, ch := range c.children {
		if c.filled[i] || ch.IsFinished() {
			continue
		}
		out, done := step(ch)
		if done {
			c.slots[i] = out
			c.filled[i] = true
		}
	}
	for _, f := range c.filled {
		if !f {
			return result.Empty[R](), false
		}
	}
	c.done = true
	return c.combine(c.slots), true
}

func (c *CompoundHandler[E, R]) HandleInput(e E) (result.Result[R], bool) {
	return c.deliver(func(h Handler[E, result.Result[any]]) (result.Result[any], bool) { return h.HandleInput(e) })
}

func (c *CompoundHandler[E, R]) HandleError(err error) (result.Result[R], bool) {
	return c.deliver(func(h Handler[E, result.Result[any]]) (result.Result[any], bool) { return h.HandleError(err) })
}

func (c *CompoundHandler[E, R]) HandleEnd() result.Result[R] {
	for i, ch := range c.children {
		if !c.filled[i] {
			c.slots[i] = ch.HandleEnd()
			c.filled[i] = true
		}
	}
	c.done = true
	return c.combine(c.slots)
}

// firstErrorOf returns the first Error found among slots, in index
// order, matching the "one Error poisons the compound" propagation
// policy.
func firstErrorOf(slots []result.Result[any]) error {
	for _, s := range slots {
		if s.IsError() {
			return s.Err()
		}
	}
	return nil
}

// CombinerBuilder collects a set of same-input, same-context parsers
// (the `and` / `~` combinator) whose results are dynamically typed until
// As gives them a concrete shape.
type CombinerBuilder[Ctx, E any] struct {
	parsers []Parser[Ctx, E, any]
}

// Combine starts an `and` chain over the given parsers, each already
// boxed to Parser[Ctx, E, any] via AnyParser.
func Combine[Ctx, E any](parsers ...Parser[Ctx, E, any]) *CombinerBuilder[Ctx, E] {
	return &CombinerBuilder[Ctx, E]{parsers: parsers}
}

// AsTuple finalizes the chain into a parser of the raw, positionally
// ordered slice of results.
func (b *CombinerBuilder[Ctx, E]) AsTuple() Parser[Ctx, E, []any] {
	return As(b, func(vs []any) []any { return vs })
}

// As finalizes an `and` chain by applying f to the positional slice of
// child results. A single child Error poisons the whole combination
// with that error, by index, before f ever runs; a panic inside f
// itself is likewise caught and turned into Error.
func As[Ctx, E, R any](b *CombinerBuilder[Ctx, E], f func([]any) R) Parser[Ctx, E, R] {
	return ParserFunc[Ctx, E, R](func(ctx Ctx) Handler[E, result.Result[R]] {
		children := make([]Handler[E, result.Result[any]], len(b.parsers))
		for i, p := range b.parsers {
			children[i] = Box[E, any](p.MakeHandler(ctx))
		}
		return NewCompoundHandler[E, R](children, func(slots []result.Result[any]) (out result.Result[R]) {
			if cause := firstErrorOf(slots); cause != nil {
				return result.Error[R](cause)
			}
			values := make([]any, len(slots))
			for i, s := range slots {
				v, _ := s.Value()
				values[i] = v
			}
			defer func() {
				if rec := recover(); rec != nil {
					out = result.Error[R](panicToError(rec))
				}
			}()
			return result.Success(f(values))
		})
	})
}

package weave

import "github.com/dhamidi/weave/result"

// Parser is an immutable handler factory: each call to MakeHandler
// yields a fresh Handler over the event stream, seeded with the context
// value extracted when a matching sub-stream began.
type Parser[Ctx, E, R any] interface {
	MakeHandler(ctx Ctx) Handler[E, result.Result[R]]
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc[Ctx, E, R any] func(ctx Ctx) Handler[E, result.Result[R]]

func (f ParserFunc[Ctx, E, R]) MakeHandler(ctx Ctx) Handler[E, result.Result[R]] {
	return f(ctx)
}

// Consumer is a Parser that needs no context, i.e. one driven directly
// off the root of the stream or off a Split whose matcher carries no
// useful value.
type Consumer[E, R any] = Parser[struct{}, E, R]

// ConsumerFunc adapts a plain function to the Consumer interface.
type ConsumerFunc[E, R any] func() Handler[E, result.Result[R]]

func (f ConsumerFunc[E, R]) MakeHandler(struct{}) Handler[E, result.Result[R]] {
	return f()
}

// IgnoreContext lifts a context-free Consumer into a Parser expecting
// (and discarding) some Ctx, so it can sit alongside context-carrying
// parsers inside a combinator like OneOf or Combine that requires a
// uniform Ctx across its children.
func IgnoreContext[Ctx, E, R any](c Consumer[E, R]) Parser[Ctx, E, R] {
	return ParserFunc[Ctx, E, R](func(Ctx) Handler[E, result.Result[R]] {
		return c.MakeHandler(struct{}{})
	})
}

// TransformerHandler is a push-driven state machine that may emit zero
// or more derived values over its lifetime, in addition to eventually
// finishing. It is the streaming counterpart to Handler, used by
// Splitter, ContextMiddlemanHandler and FunnelledTransformerHandler,
// none of which compute a single terminal result on their own.
type TransformerHandler[In, A any] interface {
	IsFinished() bool
	HandleInput(in In) (out A, emitted bool)
	HandleError(err error) (out A, emitted bool)
	HandleEnd() (out A, emitted bool)
}

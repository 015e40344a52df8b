package weave

import "github.com/dhamidi/weave/result"

// ContextMiddlemanHandler installs a fresh inner handler each time a
// matching sub-stream begins, forwards events into it while the
// sub-stream stays open, and relays its terminal result once the
// sub-stream ends or the inner handler finishes early.
//
// It never decides on its own when a sub-stream starts or ends; that is
// the Splitter's job. ContextMiddlemanHandler only reacts to the three
// triggers the Splitter feeds it: ContextStart, ordinary events, and
// ContextEnd.
type ContextMiddlemanHandler[Ctx, E, R any] struct {
	factory   Parser[Ctx, E, R]
	inner     Handler[E, result.Result[R]]
	cancelled bool
}

// NewContextMiddlemanHandler builds a middleman around a parser factory.
func NewContextMiddlemanHandler[Ctx, E, R any](factory Parser[Ctx, E, R]) *ContextMiddlemanHandler[Ctx, E, R] {
	return &ContextMiddlemanHandler[Ctx, E, R]{factory: factory}
}

// IsFinished is true once Cancel has been called; a middleman otherwise
// stays available to open successive sub-streams for as long as the
// underlying stream keeps producing matches.
func (m *ContextMiddlemanHandler[Ctx, E, R]) IsFinished() bool { return m.cancelled }

// Cancel force-finishes the middleman, discarding any active inner
// handler. Used by combinators such as First that only want the
// leading match.
func (m *ContextMiddlemanHandler[Ctx, E, R]) Cancel() {
	m.cancelled = true
	m.inner = nil
}

// ContextStart begins a new sub-stream. matchErr, when non-nil, means
// the ContextMatcher itself failed; that failure is surfaced immediately
// as an Error result rather than starting an inner handler.
func (m *ContextMiddlemanHandler[Ctx, E, R]) ContextStart(ctx Ctx, matchErr error) (result.Result[R], bool) {
	if matchErr != nil {
		m.inner = nil
		return result.Error[R](matchErr), true
	}
	m.inner = m.factory.MakeHandler(ctx)
	return result.Empty[R](), false
}

// HandleInput forwards e to the active inner handler, if any. Events
// outside any matched sub-stream are dropped silently.
func (m *ContextMiddlemanHandler[Ctx, E, R]) HandleInput(e E) (result.Result[R], bool) {
	if m.inner == nil {
		return result.Empty[R](), false
	}
	out, done := m.inner.HandleInput(e)
	if done {
		m.inner = nil
		return out, true
	}
	return result.Empty[R](), false
}

// HandleError forwards a source-level fault to the active inner
// handler, following the same rules as HandleInput.
func (m *ContextMiddlemanHandler[Ctx, E, R]) HandleError(err error) (result.Result[R], bool) {
	if m.inner == nil {
		return result.Empty[R](), false
	}
	out, done := m.inner.HandleError(err)
	if done {
		m.inner = nil
		return out, true
	}
	return result.Empty[R](), false
}

// ContextEnd closes the currently active sub-stream, if any, sending it
// end-of-input and relaying whatever it produces.
func (m *ContextMiddlemanHandler[Ctx, E, R]) ContextEnd() (result.Result[R], bool) {
	if m.inner == nil {
		return result.Empty[R](), false
	}
	out := m.inner.HandleEnd()
	m.inner = nil
	return out, true
}

// HandleEnd sends end-of-input to an active inner handler, if any.
func (m *ContextMiddlemanHandler[Ctx, E, R]) HandleEnd() (result.Result[R], bool) {
	if m.inner == nil {
		return result.Empty[R](), false
	}
	out := m.inner.HandleEnd()
	m.inner = nil
	return out, true
}

// Splitter slices an event stream into sub-streams keyed by a
// ContextMatcher, translating stack transitions into the ContextStart /
// input / ContextEnd triggers its ContextMiddlemanHandler expects. Close
// is purely structural: once a sub-stream opens at depth d, it closes
// the moment the stack depth drops back below d, without re-running the
// matcher.
type Splitter[Ctx, E, R any] struct {
	matcher   Matcher[Ctx]
	project   ContextProjector[E]
	middleman *ContextMiddlemanHandler[Ctx, E, R]
	stack     Stack
	openDepth int // -1 when no sub-stream is currently open
}

// NewSplitter builds a Splitter directly. Most callers go through Split
// instead, which also owns the inner parser factory.
func NewSplitter[Ctx, E, R any](matcher Matcher[Ctx], project ContextProjector[E], factory Parser[Ctx, E, R]) *Splitter[Ctx, E, R] {
	return &Splitter[Ctx, E, R]{
		matcher:   matcher,
		project:   project,
		middleman: NewContextMiddlemanHandler[Ctx, E, R](factory),
		openDepth: -1,
	}
}

func (s *Splitter[Ctx, E, R]) IsFinished() bool { return s.middleman.IsFinished() }

// Cancel stops the splitter from opening any further sub-streams; used
// by First once it has its answer.
func (s *Splitter[Ctx, E, R]) Cancel() { s.middleman.Cancel() }

func (s *Splitter[Ctx, E, R]) advance(project func() ContextChange, deliver func() (result.Result[R], bool)) (result.Result[R], bool) {
	change := project()

	switch change.Kind {
	case Push, PushPop:
		s.stack = append(s.stack, change.Frame)
	case Pop:
		if len(s.stack) > 0 {
			s.stack = s.stack[:len(s.stack)-1]
		}
	}

	var openOut result.Result[R]
	var openEmitted bool
	if s.openDepth < 0 {
		ctx, matched, err := safeMatch(s.matcher, s.stack)
		switch {
		case err != nil:
			s.openDepth = len(s.stack)
			openOut, openEmitted = s.middleman.ContextStart(ctx, err)
		case matched:
			s.openDepth = len(s.stack)
			openOut, openEmitted = s.middleman.ContextStart(ctx, nil)
		}
	}

	inOut, inEmitted := deliver()

	if change.Kind == PushPop && len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}

	var closeOut result.Result[R]
	var closeEmitted bool
	if s.openDepth >= 0 && len(s.stack) < s.openDepth {
		closeOut, closeEmitted = s.middleman.ContextEnd()
		s.openDepth = -1
	}

	// The non-nesting invariant guarantees at most one of these three
	// fires for any single event.
	switch {
	case openEmitted:
		return openOut, true
	case inEmitted:
		return inOut, true
	case closeEmitted:
		return closeOut, true
	default:
		return result.Empty[R](), false
	}
}

func (s *Splitter[Ctx, E, R]) HandleInput(e E) (result.Result[R], bool) {
	return s.advance(func() ContextChange { return s.project(e) }, func() (result.Result[R], bool) {
		return s.middleman.HandleInput(e)
	})
}

func (s *Splitter[Ctx, E, R]) HandleError(err error) (result.Result[R], bool) {
	// A source fault carries no event to project onto the context
	// stack; only the active inner handler (if any) sees it.
	return s.middleman.HandleError(err)
}

func (s *Splitter[Ctx, E, R]) HandleEnd() (result.Result[R], bool) {
	return s.middleman.HandleEnd()
}

// Split is an immutable Transformer factory: a ContextMatcher, its event
// projection, and the inner Parser to run on each matched sub-stream.
type Split[Ctx, E, R any] struct {
	matcher Matcher[Ctx]
	project ContextProjector[E]
	inner   Parser[Ctx, E, R]
}

// NewSplit builds a Split from a matcher, an event family's projection,
// and the parser to run per matched sub-stream.
func NewSplit[Ctx, E, R any](matcher Matcher[Ctx], project ContextProjector[E], inner Parser[Ctx, E, R]) Split[Ctx, E, R] {
	return Split[Ctx, E, R]{matcher: matcher, project: project, inner: inner}
}

// MakeHandler yields a fresh Splitter, as any Transformer factory would.
func (s Split[Ctx, E, R]) MakeHandler() *Splitter[Ctx, E, R] {
	return NewSplitter[Ctx, E, R](s.matcher, s.project, s.inner)
}

package weave

import "fmt"

// Matcher is a predicate over the context stack that either rejects it
// outright or extracts a context value of type C. A Matcher only ever
// looks at exactly Depth() frames, so it is safe to compose with Path.
type Matcher[C any] struct {
	depth int
	match func(frames Stack) (C, bool)
}

// NewMatcher builds a Matcher that only fires against a stack slice of
// exactly the given depth.
func NewMatcher[C any](depth int, match func(Stack) (C, bool)) Matcher[C] {
	return Matcher[C]{depth: depth, match: match}
}

// Depth reports how many stack frames this matcher consumes.
func (m Matcher[C]) Depth() int { return m.depth }

// TryMatch attempts the match against stack, which must represent the
// frames from the root down to the current depth. It only ever succeeds
// when len(stack) == m.Depth().
func (m Matcher[C]) TryMatch(stack Stack) (C, bool) {
	if len(stack) != m.depth {
		var zero C
		return zero, false
	}
	return m.match(stack)
}

// safeMatch runs m against stack, converting a panic inside the matcher
// into an error instead of letting it escape (see design notes: matcher
// evaluation is a combinator edge, like map or as(f)).
func safeMatch[C any](m Matcher[C], stack Stack) (ctx C, matched bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero C
			if e, ok := rec.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("context matcher: %v", rec)
			}
			ctx, matched = zero, false
		}
	}()
	c, ok := m.TryMatch(stack)
	return c, ok, nil
}

// SafeMatch runs m against stack exactly like TryMatch, except a panic
// inside the matcher (for instance a mandatory-attribute check) is
// converted into a returned error instead of propagating. It is exposed
// primarily for event-family packages that build matchers capable of
// panicking, such as xmlevents.RequireAttr.
func SafeMatch[C any](m Matcher[C], stack Stack) (ctx C, matched bool, err error) {
	return safeMatch(m, stack)
}

// Path composes two matchers along a structural path (the `\` operator
// from the design notes): a must match the prefix of the stack, and b
// the frames immediately following it. The resulting context value is
// b's, matching the tutorial convention that the last, innermost
// segment of a path carries the extracted value.
func Path[A, B any](a Matcher[A], b Matcher[B]) Matcher[B] {
	return NewMatcher(a.depth+b.depth, func(stack Stack) (B, bool) {
		if _, ok := a.match(stack[:a.depth]); !ok {
			var zero B
			return zero, false
		}
		return b.match(stack[a.depth:])
	})
}

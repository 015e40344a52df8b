package weave

// Frame is one structural level of a nested event stream, e.g. an XML
// element name plus its attributes, or a JSON object field / array
// index. Its concrete shape is defined by the event family adapter; the
// core only ever compares frames through a Matcher.
type Frame any

// ChangeKind classifies how a single event affects the context stack.
type ChangeKind int

const (
	// NoChange means the event carries content but does not alter the
	// structural nesting (e.g. XML character data, or the outermost
	// value of a JSON document).
	NoChange ChangeKind = iota
	// Push opens one new frame that stays on the stack until a matching
	// Pop is seen.
	Push
	// Pop closes the innermost open frame.
	Pop
	// PushPop opens and immediately closes a frame around a single
	// event. This is not part of the original three-state projection;
	// it exists so leaf scalar values (a JSON number, a JSON string)
	// can participate in path matching the same way a nested object or
	// array would, without requiring two separate events. See
	// DESIGN.md for the rationale.
	PushPop
)

// ContextChange is the projection of one event onto the context stack,
// as reported by an event family's ContextProjector.
type ContextChange struct {
	Kind  ChangeKind
	Frame Frame
}

// ContextProjector is a pure function from one event to its effect on
// the context stack. Every event family (XML, JSON, ...) supplies one.
type ContextProjector[E any] func(e E) ContextChange

// Stack is the ordered sequence of currently open frames, root first.
type Stack []Frame

// Depth reports how many frames are currently open.
func (s Stack) Depth() int { return len(s) }

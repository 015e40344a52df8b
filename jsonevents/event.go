// Package jsonevents adapts JSON documents into the weave event model.
//
// Unlike XML, a JSON scalar has no separate open/close token: a bare
// number, string, bool, or null is both the start and the end of its
// own frame. weave.PushPop exists precisely to let a Splitter treat
// such a value as a matchable, closable sub-stream within a single
// event; see Project below.
package jsonevents

import "github.com/dhamidi/weave"

// Kind distinguishes the JSON tokens weave's driver sees.
type Kind int

const (
	ObjectStart Kind = iota
	ObjectEnd
	ArrayStart
	ArrayEnd
	Scalar
)

func (k Kind) String() string {
	switch k {
	case ObjectStart:
		return "object-start"
	case ObjectEnd:
		return "object-end"
	case ArrayStart:
		return "array-start"
	case ArrayEnd:
		return "array-end"
	case Scalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Event is one flattened JSON token. HasField reports whether this
// token occurs as an object member's value, in which case Field names
// it; otherwise it occurs as an array element at Index. Root marks the
// document's own outermost value (and its matching close, for a
// container): it sits at no position inside any parent, so Project
// reports no context change for it. Value holds a scalar's decoded Go
// value (string, float64, bool, or nil) when Kind is Scalar.
type Event struct {
	Kind     Kind
	Root     bool
	HasField bool
	Field    string
	Index    int
	Value    any
}

// FrameKind distinguishes what a Frame is addressing: a named object
// field or a positional array element.
type FrameKind int

const (
	InField FrameKind = iota
	InIndex
)

// Frame is the per-container stack frame jsonevents pushes: either the
// field name under which this value sits (inside an object) or its
// positional index (inside an array).
type Frame struct {
	Kind  FrameKind
	Field string
	Index int
}

// Project turns an Event into the ContextChange weave's Splitter uses.
// ObjectStart/ArrayStart push a frame naming this value's position in
// its parent; ObjectEnd/ArrayEnd pop it back off. A Scalar carries its
// own frame but has no separate close token, so it reports PushPop:
// the frame exists for exactly the duration of that one event.
func Project(e Event) weave.ContextChange {
	if e.Root {
		return weave.ContextChange{Kind: weave.NoChange}
	}
	frame := Frame{Kind: InIndex, Field: e.Field, Index: e.Index}
	if e.HasField {
		frame.Kind = InField
	}
	switch e.Kind {
	case ObjectStart, ArrayStart:
		return weave.ContextChange{Kind: weave.Push, Frame: frame}
	case ObjectEnd, ArrayEnd:
		return weave.ContextChange{Kind: weave.Pop}
	case Scalar:
		return weave.ContextChange{Kind: weave.PushPop, Frame: frame}
	default:
		return weave.ContextChange{Kind: weave.NoChange}
	}
}

// Package xmlevents adapts XML documents into the weave event model: a
// flat stream of start/end/text events plus a ContextProjector that
// turns them into a stack of element frames.
//
// It is built on github.com/midbel/sax, a low-allocation SAX-style
// scanner: weave never buffers the document, matching the streaming
// contract the rest of the package assumes.
package xmlevents

import "github.com/dhamidi/weave"

// Kind distinguishes the three event shapes weave sees from an XML
// document; comments, processing instructions and any other
// non-element nodes arrive as Text events (see Source).
type Kind int

const (
	Start Kind = iota
	End
	Text
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Attr is a single XML attribute, name and value already unescaped.
type Attr struct {
	Name  string
	Value string
}

// Event is one flat XML token: a start tag with its attributes, an end
// tag, or a run of character data.
type Event struct {
	Kind  Kind
	Name  string
	Attrs []Attr
	Text  string
}

// AttrValue returns the named attribute's value on a Start event.
func (e Event) AttrValue(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Frame is the per-element stack frame weave.Stack accumulates: the
// element name and its attributes, captured at Start time so a matcher
// can inspect attributes without waiting for children.
type Frame struct {
	Name  string
	Attrs []Attr
}

// Project turns an Event into the ContextChange weave's Splitter needs:
// Start pushes a Frame, End pops it, Text changes nothing.
func Project(e Event) weave.ContextChange {
	switch e.Kind {
	case Start:
		return weave.ContextChange{Kind: weave.Push, Frame: Frame{Name: e.Name, Attrs: e.Attrs}}
	case End:
		return weave.ContextChange{Kind: weave.Pop}
	default:
		return weave.ContextChange{Kind: weave.NoChange}
	}
}

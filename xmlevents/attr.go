package xmlevents

import (
	"strings"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/result"
)

// textHandler accumulates every Text event it sees until the element it
// was opened for closes, then yields the concatenated character data.
type textHandler struct {
	sb strings.Builder
}

func (h *textHandler) IsFinished() bool { return false }

func (h *textHandler) HandleInput(e Event) (result.Result[string], bool) {
	if e.Kind == Text {
		h.sb.WriteString(e.Text)
	}
	return result.Empty[string](), false
}

func (h *textHandler) HandleError(err error) (result.Result[string], bool) {
	return result.Error[string](err), true
}

func (h *textHandler) HandleEnd() result.Result[string] {
	return result.Success(h.sb.String())
}

// TextContent is a Consumer that collects the character data inside
// whatever sub-stream it is run against, ignoring nested markup other
// than its own text runs.
func TextContent() weave.Consumer[Event, string] {
	return weave.ConsumerFunc[Event, string](func() weave.Handler[Event, result.Result[string]] {
		return &textHandler{}
	})
}

// Attr yields the value of a named attribute captured on the element
// frame a Split opened for, ignoring the rest of that element's body.
// Use it as the inner parser of a Split built with RequireAttr(matcher,
// name) when the attribute is mandatory: absence is then reported as a
// MissingAttributeError before Attr's handler is ever created.
func Attr(name string) weave.Parser[Frame, Event, string] {
	return weave.ParserFunc[Frame, Event, string](func(ctx Frame) weave.Handler[Event, result.Result[string]] {
		v, ok := AttrValue(ctx, name)
		if !ok {
			return &constHandler{out: result.Empty[string]()}
		}
		return &constHandler{out: result.Success(v), drain: true}
	})
}

// constHandler ignores its input entirely, never finishing before the
// end of its sub-stream, and then yields the same precomputed result.
// The drain flag does not change this behaviour.
type constHandler struct {
	out   result.Result[string]
	drain bool
}

func (h *constHandler) IsFinished() bool { return false }

func (h *constHandler) HandleInput(Event) (result.Result[string], bool) {
	return result.Empty[string](), false
}

func (h *constHandler) HandleError(err error) (result.Result[string], bool) {
	return result.Error[string](err), true
}

func (h *constHandler) HandleEnd() result.Result[string] { return h.out }

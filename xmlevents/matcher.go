package xmlevents

import "github.com/dhamidi/weave"

// Literal matches a single element frame by exact name, at whatever
// depth it is composed to. It is the basic building block combined
// with weave.Path (the `\` operator) into multi-segment paths.
func Literal(name string) weave.Matcher[Frame] {
	return weave.NewMatcher(1, func(stack weave.Stack) (Frame, bool) {
		f, ok := stack[len(stack)-1].(Frame)
		if !ok || f.Name != name {
			return Frame{}, false
		}
		return f, true
	})
}

// Wildcard matches any single element frame regardless of name.
func Wildcard() weave.Matcher[Frame] {
	return weave.NewMatcher(1, func(stack weave.Stack) (Frame, bool) {
		f, ok := stack[len(stack)-1].(Frame)
		if !ok {
			return Frame{}, false
		}
		return f, true
	})
}

// missingAttributeError is raised by RequireAttr's context matcher when
// the element it matched lacks the requested attribute, poisoning that
// sub-stream's result exactly as spec'd for mandatory-attribute checks.
type missingAttributeError struct {
	element string
	attr    string
}

func (e *missingAttributeError) Error() string {
	return "missing-attribute:" + e.attr
}

// MissingAttributeError reports which attribute was required and on
// which element it was absent.
type MissingAttributeError interface {
	error
	Attribute() string
	Element() string
}

func (e *missingAttributeError) Attribute() string { return e.attr }
func (e *missingAttributeError) Element() string   { return e.element }

// RequireAttr wraps an element matcher so that a match additionally
// requires the named attribute to be present; its absence surfaces as a
// MissingAttributeError through the matcher's error channel rather than
// a silent non-match.
func RequireAttr(elem weave.Matcher[Frame], attr string) weave.Matcher[Frame] {
	return weave.NewMatcher(elem.Depth(), func(stack weave.Stack) (Frame, bool) {
		f, ok := elem.TryMatch(stack)
		if !ok {
			return Frame{}, false
		}
		if _, present := AttrValue(f, attr); !present {
			panic(&missingAttributeError{element: f.Name, attr: attr})
		}
		return f, true
	})
}

// AttrValue looks up an attribute on a captured Frame.
func AttrValue(f Frame, name string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

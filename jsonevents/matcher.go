package jsonevents

import "github.com/dhamidi/weave"

// Field matches a single object-member frame by exact field name.
func Field(name string) weave.Matcher[Frame] {
	return weave.NewMatcher(1, func(stack weave.Stack) (Frame, bool) {
		f, ok := stack[len(stack)-1].(Frame)
		if !ok || f.Kind != InField || f.Field != name {
			return Frame{}, false
		}
		return f, true
	})
}

// AnyIndex matches any array-element frame, regardless of position.
func AnyIndex() weave.Matcher[Frame] {
	return weave.NewMatcher(1, func(stack weave.Stack) (Frame, bool) {
		f, ok := stack[len(stack)-1].(Frame)
		if !ok || f.Kind != InIndex {
			return Frame{}, false
		}
		return f, true
	})
}

// Wildcard matches any single frame, field or index alike.
func Wildcard() weave.Matcher[Frame] {
	return weave.NewMatcher(1, func(stack weave.Stack) (Frame, bool) {
		f, ok := stack[len(stack)-1].(Frame)
		if !ok {
			return Frame{}, false
		}
		return f, true
	})
}

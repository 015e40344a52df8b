package pathexpr

import (
	"fmt"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/jsonevents"
	"github.com/dhamidi/weave/xmlevents"
)

// CompileXML turns a parsed path expression into an XML context
// matcher. Every segment but the last must name an element; the last
// segment may additionally carry an attribute selector, in which case
// the matcher requires that attribute to be present.
func CompileXML(e Expr) (weave.Matcher[xmlevents.Frame], error) {
	if len(e.Segments) == 0 {
		return weave.Matcher[xmlevents.Frame]{}, fmt.Errorf("pathexpr: empty path")
	}
	segmentMatcher := func(seg Segment) weave.Matcher[xmlevents.Frame] {
		m := weave.NewMatcher(1, func(stack weave.Stack) (xmlevents.Frame, bool) {
			f, ok := stack[len(stack)-1].(xmlevents.Frame)
			if !ok || !seg.MatchesName(f.Name) {
				return xmlevents.Frame{}, false
			}
			return f, true
		})
		if seg.Attr != "" {
			m = xmlevents.RequireAttr(m, seg.Attr)
		}
		return m
	}
	m := segmentMatcher(e.Segments[0])
	for _, seg := range e.Segments[1:] {
		m = weave.Path(m, segmentMatcher(seg))
	}
	return m, nil
}

// CompileJSON turns a parsed path expression into a JSON context
// matcher. A segment named "*" matches any array element (jsonevents'
// anyIndex); any other segment matches an object field of that name,
// compared through Segment.MatchesName like CompileXML's element names.
// JSON values carry no attributes, so a path expression with an
// attribute selector is rejected.
func CompileJSON(e Expr) (weave.Matcher[jsonevents.Frame], error) {
	if len(e.Segments) == 0 {
		return weave.Matcher[jsonevents.Frame]{}, fmt.Errorf("pathexpr: empty path")
	}
	if _, has := e.AttrOf(); has {
		return weave.Matcher[jsonevents.Frame]{}, fmt.Errorf("pathexpr: JSON paths do not support attribute selectors")
	}
	segmentMatcher := func(seg Segment) weave.Matcher[jsonevents.Frame] {
		if seg.Name == "*" {
			return jsonevents.AnyIndex()
		}
		return weave.NewMatcher(1, func(stack weave.Stack) (jsonevents.Frame, bool) {
			f, ok := stack[len(stack)-1].(jsonevents.Frame)
			if !ok || f.Kind != jsonevents.InField || !seg.MatchesName(f.Field) {
				return jsonevents.Frame{}, false
			}
			return f, true
		})
	}
	m := segmentMatcher(e.Segments[0])
	for _, seg := range e.Segments[1:] {
		m = weave.Path(m, segmentMatcher(seg))
	}
	return m, nil
}

// AttrOf reports the attribute selector on the path's last segment, if
// any.
func (e Expr) AttrOf() (string, bool) {
	if len(e.Segments) == 0 {
		return "", false
	}
	last := e.Segments[len(e.Segments)-1]
	return last.Attr, last.Attr != ""
}

// Package pathexpr parses the small path-expression language weave's
// CLI and language server accept from users, e.g. "items\item" or
// "root\person.name", and compiles it into the matcher chain the core
// package's Path operator expects.
//
// Segment names are normalized with github.com/iancoleman/strcase so
// that "person-name", "person_name" and "PersonName" all address the
// same element or field, matching how the rest of the CLI treats
// user-supplied identifiers loosely.
package pathexpr

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Segment is one `\`-separated component of a path expression, plus
// any trailing attribute selector introduced by `.`.
type Segment struct {
	Name string
	Attr string // empty if this segment selects an element/field, not an attribute
}

// Expr is a parsed path expression: an ordered list of segments, read
// left to right from the document root inward.
type Expr struct {
	Segments []Segment
}

// String renders e back into its canonical textual form.
func (e Expr) String() string {
	parts := make([]string, len(e.Segments))
	for i, s := range e.Segments {
		if s.Attr != "" {
			parts[i] = s.Name + "." + s.Attr
		} else {
			parts[i] = s.Name
		}
	}
	return strings.Join(parts, `\`)
}

// Parse compiles a path expression such as `items\item.id` into an
// Expr. Segment names are normalized to snake_case internally but
// compared case- and separator-insensitively by MatchesName, so the raw
// input casing is not load-bearing.
func Parse(expr string) (Expr, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Expr{}, fmt.Errorf("pathexpr: empty expression")
	}
	rawSegments := strings.Split(expr, `\`)
	segments := make([]Segment, 0, len(rawSegments))
	for _, raw := range rawSegments {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Expr{}, fmt.Errorf("pathexpr: empty segment in %q", expr)
		}
		name, attr, _ := strings.Cut(raw, ".")
		if name == "" {
			return Expr{}, fmt.Errorf("pathexpr: missing element name before '.' in %q", raw)
		}
		segments = append(segments, Segment{Name: normalize(name), Attr: normalize(attr)})
	}
	return Expr{Segments: segments}, nil
}

func normalize(s string) string {
	if s == "" || s == "*" {
		return s
	}
	return strcase.ToSnake(s)
}

// MatchesName reports whether candidate names the same element/field as
// seg, modulo casing and separator convention.
func (seg Segment) MatchesName(candidate string) bool {
	return seg.Name == normalize(candidate)
}

package pathexpr

import (
	"strings"
	"testing"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/xmlevents"
)

func TestCompileXMLMatchesNestedPath(t *testing.T) {
	e, err := Parse(`items\item`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := CompileXML(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, err := weave.ParseWith[struct{}, xmlevents.Event, string](
		xmlevents.NewSource(strings.NewReader(`<items><item id="7"></item></items>`)),
		weave.First[xmlevents.Frame, xmlevents.Event, string](
			weave.NewSplit(m, xmlevents.Project, xmlevents.Attr("id")),
		),
		struct{}{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "7" {
		t.Fatalf("expected id=7, got %q", name)
	}
}

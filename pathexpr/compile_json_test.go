package pathexpr

import (
	"strings"
	"testing"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/jsonevents"
)

func TestCompileJSONMatchesFieldThenAnyIndex(t *testing.T) {
	e, err := Parse(`items\*`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := CompileJSON(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := weave.ParseWith[struct{}, jsonevents.Event, []string](
		jsonevents.NewSource(strings.NewReader(`{"items":["a","b","c"]}`)),
		weave.AsListOf[jsonevents.Frame, jsonevents.Event, string](
			weave.NewSplit(m, jsonevents.Project, weave.IgnoreContext[jsonevents.Frame, jsonevents.Event, string](jsonevents.String())),
		),
		struct{}{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("unexpected result: %v", names)
	}
}

func TestCompileJSONRejectsAttributeSelector(t *testing.T) {
	e, err := Parse(`items.id`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := CompileJSON(e); err == nil {
		t.Fatalf("expected an error for an attribute selector on a JSON path")
	}
}

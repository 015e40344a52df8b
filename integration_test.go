package weave_test

import (
	"strings"
	"testing"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/jsonevents"
	"github.com/dhamidi/weave/xmlevents"
)

func TestXMLFlatAttribute(t *testing.T) {
	doc := `<person name="ada"></person>`
	split := weave.NewSplit(xmlevents.Literal("person"), xmlevents.Project, xmlevents.Attr("name"))
	name, err := weave.ParseWith[struct{}, xmlevents.Event, string](
		xmlevents.NewSource(strings.NewReader(doc)),
		weave.First[xmlevents.Frame, xmlevents.Event, string](split),
		struct{}{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "ada" {
		t.Fatalf("expected name=ada, got %q", name)
	}
}

func TestXMLMissingMandatoryAttribute(t *testing.T) {
	doc := `<person></person>`
	matcher := xmlevents.RequireAttr(xmlevents.Literal("person"), "name")
	split := weave.NewSplit(matcher, xmlevents.Project, xmlevents.Attr("name"))
	_, err := weave.ParseWith[struct{}, xmlevents.Event, string](
		xmlevents.NewSource(strings.NewReader(doc)),
		weave.First[xmlevents.Frame, xmlevents.Event, string](split),
		struct{}{},
	)
	if err == nil {
		t.Fatalf("expected an error for missing mandatory attribute")
	}
	if err.Error() != "missing-attribute:name" {
		t.Fatalf("expected missing-attribute:name, got %q", err.Error())
	}
}

func TestXMLAsListOfNestedItems(t *testing.T) {
	doc := `<items><item id="1"></item><item id="2"></item><item id="3"></item></items>`
	split := weave.NewSplit(
		weave.Path(xmlevents.Literal("items"), xmlevents.Literal("item")),
		xmlevents.Project,
		xmlevents.Attr("id"),
	)
	ids, err := weave.ParseWith[struct{}, xmlevents.Event, []string](
		xmlevents.NewSource(strings.NewReader(doc)),
		weave.AsListOf[xmlevents.Frame, xmlevents.Event, string](split),
		struct{}{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "1" || ids[1] != "2" || ids[2] != "3" {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}
}

func TestJSONOneOfHeterogeneousItemTypes(t *testing.T) {
	doc := `["hi", 42, true, {"k":"v"}, [1,2]]`

	item := weave.OneOf[jsonevents.Frame, jsonevents.Event, string](
		weave.MapParser[jsonevents.Frame, jsonevents.Event, string, string](
			weave.IgnoreContext[jsonevents.Frame, jsonevents.Event, string](jsonevents.String()),
			func(s string) string { return "string:" + s },
		),
		weave.MapParser[jsonevents.Frame, jsonevents.Event, float64, string](
			weave.IgnoreContext[jsonevents.Frame, jsonevents.Event, float64](jsonevents.Number()),
			func(n float64) string { return "number" },
		),
		weave.MapParser[jsonevents.Frame, jsonevents.Event, bool, string](
			weave.IgnoreContext[jsonevents.Frame, jsonevents.Event, bool](jsonevents.Bool()),
			func(b bool) string { return "bool" },
		),
	)

	split := weave.NewSplit(jsonevents.AnyIndex(), jsonevents.Project, item)
	kinds, err := weave.ParseWith[struct{}, jsonevents.Event, []string](
		jsonevents.NewSource(strings.NewReader(doc)),
		weave.AsListOf[jsonevents.Frame, jsonevents.Event, string](split),
		struct{}{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kinds) < 3 {
		t.Fatalf("expected at least the three matched scalar kinds, got %v", kinds)
	}
	if kinds[0] != "string:hi" || kinds[1] != "number" || kinds[2] != "bool" {
		t.Fatalf("unexpected classification order: %v", kinds)
	}
}

package pathexpr

import "testing"

func TestParseSegmentsAndAttr(t *testing.T) {
	e, err := Parse(`Items\Item.id`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(e.Segments))
	}
	if e.Segments[0].Name != "items" || e.Segments[1].Name != "item" {
		t.Fatalf("unexpected normalized names: %+v", e.Segments)
	}
	attr, ok := e.AttrOf()
	if !ok || attr != "id" {
		t.Fatalf("expected attribute id, got %q (ok=%v)", attr, ok)
	}
}

func TestParseRejectsEmptyExpression(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestSegmentMatchesNameIgnoresCasingAndSeparators(t *testing.T) {
	e, err := Parse("person-name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seg := e.Segments[0]
	for _, candidate := range []string{"PersonName", "person_name", "person-name"} {
		if !seg.MatchesName(candidate) {
			t.Errorf("expected %q to match segment %q", candidate, seg.Name)
		}
	}
}

package jsonevents

import (
	"strings"
	"testing"
)

func drain(t *testing.T, doc string) []Event {
	t.Helper()
	s := NewSource(strings.NewReader(doc))
	var events []Event
	for {
		e, err := s.Next()
		if err != nil {
			break
		}
		events = append(events, e)
	}
	return events
}

func TestSourceFlatObject(t *testing.T) {
	events := drain(t, `{"name":"ok","count":3}`)
	want := []Kind{ObjectStart, Scalar, Scalar, ObjectEnd}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("event %d: got kind %v, want %v", i, events[i].Kind, k)
		}
	}
	if events[1].Field != "name" || events[1].Value != "ok" {
		t.Errorf("event 1: got %+v", events[1])
	}
	if events[2].Field != "count" || events[2].Value != float64(3) {
		t.Errorf("event 2: got %+v", events[2])
	}
}

func TestSourceArrayOfScalars(t *testing.T) {
	events := drain(t, `[1,2,3]`)
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5: %+v", len(events), events)
	}
	for i, want := range []float64{1, 2, 3} {
		e := events[1+i]
		if e.Kind != Scalar || e.Index != i || e.Value != want {
			t.Errorf("element %d: got %+v", i, e)
		}
	}
}

func TestSourceNestedObjectInArray(t *testing.T) {
	events := drain(t, `[{"id":1},{"id":2}]`)
	// ArrayStart, ObjectStart, Scalar(id=1), ObjectEnd, ObjectStart, Scalar(id=2), ObjectEnd, ArrayEnd
	if len(events) != 8 {
		t.Fatalf("got %d events, want 8: %+v", len(events), events)
	}
	if events[1].Kind != ObjectStart || events[1].Index != 0 {
		t.Errorf("expected first element object at index 0, got %+v", events[1])
	}
	if events[4].Kind != ObjectStart || events[4].Index != 1 {
		t.Errorf("expected second element object at index 1, got %+v", events[4])
	}
}

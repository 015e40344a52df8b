package weave_test

import (
	"testing"

	"github.com/dhamidi/weave"
)

// collectHandler is a terminal Handler[int, []int] that never finishes
// on its own; it just records everything it is fed, so tests can
// observe funnel order without racing HandleEnd against HandleInput.
type collectHandler struct {
	seen []int
}

func (h *collectHandler) IsFinished() bool { return false }

func (h *collectHandler) HandleInput(v int) ([]int, bool) {
	h.seen = append(h.seen, v)
	return nil, false
}

func (h *collectHandler) HandleError(err error) ([]int, bool) { return nil, false }

func (h *collectHandler) HandleEnd() []int { return h.seen }

// passThroughFunnel is a TransformerHandler[tagEvent, int] that emits
// every value(n) event's value directly, and finishes once it sees a
// close_ event.
type passThroughFunnel struct {
	finished bool
}

func (f *passThroughFunnel) IsFinished() bool { return f.finished }

func (f *passThroughFunnel) HandleInput(e tagEvent) (int, bool) {
	if !e.open && e.name != "" {
		f.finished = true
		return 0, false
	}
	if e.value != 0 {
		return e.value, true
	}
	return 0, false
}

func (f *passThroughFunnel) HandleError(err error) (int, bool) { return 0, false }

func (f *passThroughFunnel) HandleEnd() (int, bool) {
	f.finished = true
	return 0, false
}

func TestFunnelMergesTwoTransformersIntoOneDownstream(t *testing.T) {
	downstream := &collectHandler{}
	f1 := &passThroughFunnel{}
	f2 := &passThroughFunnel{}
	funnel := weave.NewFunnelledTransformerHandler[tagEvent, int, []int](downstream, f1, f2)

	events := []tagEvent{value(1), value(2), close_("a")}
	var out []int
	for i, e := range events {
		result, done := funnel.HandleInput(e)
		if done {
			if i != len(events)-1 {
				t.Fatalf("did not expect downstream to finish before every funnel closed")
			}
			out = result
		}
	}
	if out == nil {
		out = funnel.HandleEnd()
	}
	if len(out) != 4 {
		t.Fatalf("expected each funnel to relay both values, got %v", out)
	}
}

func TestFunnelDoesNotEndDownstreamUntilAllFunnelsFinish(t *testing.T) {
	downstream := &collectHandler{}
	f1 := &passThroughFunnel{}
	f2 := &passThroughFunnel{finished: true}
	funnel := weave.NewFunnelledTransformerHandler[tagEvent, int, []int](downstream, f1, f2)

	if funnel.IsFinished() {
		t.Fatalf("funnel should not be finished while f1 is still open")
	}
	funnel.HandleInput(close_("a"))
	if !funnel.IsFinished() {
		t.Fatalf("expected downstream to end once every funnel has finished")
	}
}

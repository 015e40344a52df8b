package weave

// FunnelledTransformerHandler merges several TransformerHandlers that
// share an input event type and an emitted type into one downstream
// Handler. Every event is offered to every unfinished funnel, in index
// order; whatever any funnel emits is pushed into the downstream
// handler immediately, and the first funnel to end does not end the
// downstream on its own — only once every funnel has finished does the
// downstream itself receive HandleEnd.
//
// The original design describes a guarded proxy that swallows a
// funnel's own end-of-stream signal with a sentinel value. Because
// TransformerHandler already separates "is this funnel finished" from
// "did it just emit a value" (unlike a plain Handler, whose only way to
// report anything is to finish), no such proxy or sentinel is needed
// here: a finished funnel is simply skipped on subsequent events.
type FunnelledTransformerHandler[E, A, Out any] struct {
	funnels    []TransformerHandler[E, A]
	downstream Handler[A, Out]
	dsDone     bool
	dsResult   Out
}

// NewFunnelledTransformerHandler wires funnels into a single downstream
// handler.
func NewFunnelledTransformerHandler[E, A, Out any](downstream Handler[A, Out], funnels ...TransformerHandler[E, A]) *FunnelledTransformerHandler[E, A, Out] {
	return &FunnelledTransformerHandler[E, A, Out]{funnels: funnels, downstream: downstream}
}

func (f *FunnelledTransformerHandler[E, A, Out]) IsFinished() bool { return f.dsDone }

func (f *FunnelledTransformerHandler[E, A, Out]) allFunnelsFinished() bool {
	for _, fn := range f.funnels {
		if !fn.IsFinished() {
			return false
		}
	}
	return true
}

// pushDownstream forwards one derived value; if the downstream finishes
// as a result, that becomes the funnel's own terminal result.
func (f *FunnelledTransformerHandler[E, A, Out]) pushDownstream(a A) (Out, bool) {
	if f.dsDone {
		var zero Out
		return zero, false
	}
	out, done := f.downstream.HandleInput(a)
	if done {
		f.dsDone = true
		f.dsResult = out
		return out, true
	}
	var zero Out
	return zero, false
}

func (f *FunnelledTransformerHandler[E, A, Out]) endDownstreamIfDry() (Out, bool) {
	if !f.dsDone && f.allFunnelsFinished() {
		f.dsResult = f.downstream.HandleEnd()
		f.dsDone = true
		return f.dsResult, true
	}
	var zero Out
	return zero, false
}

func (f *FunnelledTransformerHandler[E, A, Out]) step(deliver func(TransformerHandler[E, A]) (A, bool)) (Out, bool) {
	for _, fn := range f.funnels {
		if fn.IsFinished() {
			continue
		}
		a, emitted := deliver(fn)
		if !emitted {
			continue
		}
		if out, done := f.pushDownstream(a); done {
			return out, true
		}
	}
	return f.endDownstreamIfDry()
}

func (f *FunnelledTransformerHandler[E, A, Out]) HandleInput(e E) (Out, bool) {
	return f.step(func(fn TransformerHandler[E, A]) (A, bool) { return fn.HandleInput(e) })
}

func (f *FunnelledTransformerHandler[E, A, Out]) HandleError(err error) (Out, bool) {
	return f.step(func(fn TransformerHandler[E, A]) (A, bool) { return fn.HandleError(err) })
}

func (f *FunnelledTransformerHandler[E, A, Out]) HandleEnd() Out {
	for _, fn := range f.funnels {
		if f.dsDone {
			break
		}
		if fn.IsFinished() {
			continue
		}
		if a, emitted := fn.HandleEnd(); emitted {
			f.pushDownstream(a)
		}
	}
	if !f.dsDone {
		f.dsResult = f.downstream.HandleEnd()
		f.dsDone = true
	}
	return f.dsResult
}

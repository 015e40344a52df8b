// Package weave is a streaming, composable parser framework for
// hierarchical event streams such as XML and JSON.
//
// Consumers describe what to extract from a document by combining small
// Parser and Transformer values along structural paths, instead of
// hand-writing the loop that walks the event stream. A single forward
// pass over the events drives a tree of Handler values, which emit
// results as soon as enough input has been seen.
//
// The event vocabulary itself (what an XML start tag or a JSON field
// name looks like) is supplied by an event family adapter, such as the
// sibling xmlevents and jsonevents packages; this package only knows
// about the abstract shape of a context stack: pushes, pops, and the
// matchers built against them.
package weave

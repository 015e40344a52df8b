package jsonevents

import (
	"encoding/json"
	"io"
	"sync"
)

type containerKind int

const (
	inArray containerKind = iota
	inObject
)

type frameState struct {
	kind         containerKind
	awaitingKey  bool
	pendingField string
	nextIndex    int
}

// Source adapts encoding/json's low-level tokenizer into weave's flat
// Event model. It never builds an in-memory document tree; each call
// to Next reads exactly the tokens needed to produce one Event, using
// a small stack of container frames to know whether the next token is
// an object key, an object value, or an array element.
//
// A dependency such as github.com/arnodel/jsonstream was considered
// for this role; only its package documentation was available to
// ground an implementation against, not its concrete types, so this
// adapter is built directly on encoding/json.Decoder instead. See
// DESIGN.md.
type Source struct {
	dec    *json.Decoder
	closer io.Closer
	stack  []frameState
	once   sync.Once
}

// NewSource wraps r, reading a single JSON document from it.
func NewSource(r io.Reader) *Source {
	closer, _ := r.(io.Closer)
	return &Source{dec: json.NewDecoder(r), closer: closer}
}

func (s *Source) reopenParentKey() {
	if len(s.stack) == 0 {
		return
	}
	top := &s.stack[len(s.stack)-1]
	if top.kind == inObject {
		top.awaitingKey = true
	}
}

// Next reads the next token and returns it as an Event, recursing
// exactly once when the token consumed was an object key rather than a
// value (its value is what Next actually reports).
func (s *Source) Next() (Event, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Event{}, err
	}

	var hasField bool
	var field string
	var index int
	root := len(s.stack) == 0

	if len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		switch top.kind {
		case inObject:
			if top.awaitingKey {
				if delim, ok := tok.(json.Delim); ok && delim == '}' {
					root := len(s.stack) == 1
					s.stack = s.stack[:len(s.stack)-1]
					s.reopenParentKey()
					return Event{Kind: ObjectEnd, Root: root}, nil
				}
				top.pendingField = tok.(string)
				top.awaitingKey = false
				return s.Next()
			}
			hasField, field = true, top.pendingField
		case inArray:
			if delim, ok := tok.(json.Delim); ok && delim == ']' {
				root := len(s.stack) == 1
				s.stack = s.stack[:len(s.stack)-1]
				s.reopenParentKey()
				return Event{Kind: ArrayEnd, Root: root}, nil
			}
			index = top.nextIndex
			top.nextIndex++
		}
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			s.stack = append(s.stack, frameState{kind: inObject, awaitingKey: true})
			return Event{Kind: ObjectStart, Root: root, HasField: hasField, Field: field, Index: index}, nil
		case '[':
			s.stack = append(s.stack, frameState{kind: inArray})
			return Event{Kind: ArrayStart, Root: root, HasField: hasField, Field: field, Index: index}, nil
		}
	}

	s.reopenParentKey()
	return Event{Kind: Scalar, Root: root, HasField: hasField, Field: field, Index: index, Value: tok}, nil
}

// Close releases the underlying reader, if it implements io.Closer.
// Safe to call multiple times or concurrently.
func (s *Source) Close() error {
	var err error
	s.once.Do(func() {
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

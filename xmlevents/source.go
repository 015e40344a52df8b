package xmlevents

import (
	"fmt"
	"io"
	"sync"

	"github.com/midbel/sax"
)

// Source adapts a github.com/midbel/sax reader into a weave.EventSource
// of Event, flattening start tags, end tags, and character data into
// the three-kind Event model and translating comments, processing
// instructions, and CDATA sections into Text events carrying their
// literal content.
type Source struct {
	reader *sax.Reader
	closer io.Closer
	once   sync.Once
}

// NewSource wraps r, reading XML from it. r is closed exactly once, on
// the first call to Close, whether or not the underlying stream was
// read to completion.
func NewSource(r io.Reader) *Source {
	reader := sax.New(r, func(sax.NodeType, sax.Name) bool { return true })
	closer, _ := r.(io.Closer)
	return &Source{reader: reader, closer: closer}
}

func attrsOf(n sax.Node) []Attr {
	if len(n.Attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(n.Attrs))
	for i, a := range n.Attrs {
		out[i] = Attr{Name: fmt.Sprintf("%s", a.Name), Value: a.Value}
	}
	return out
}

// Next reads the next node from the underlying sax.Reader and maps it
// onto weave's flat Event model. It returns io.EOF, unwrapped, once the
// document is exhausted.
func (s *Source) Next() (Event, error) {
	n, err := s.reader.Read()
	if err != nil {
		return Event{}, err
	}
	switch n.Type {
	case sax.BeginElement:
		return Event{Kind: Start, Name: fmt.Sprintf("%s", n.Name), Attrs: attrsOf(n)}, nil
	case sax.EndElement:
		return Event{Kind: End, Name: fmt.Sprintf("%s", n.Name)}, nil
	default:
		return Event{Kind: Text, Text: n.Content}, nil
	}
}

// Close releases the underlying reader, if it implements io.Closer.
// Safe to call multiple times or concurrently; only the first call has
// an effect.
func (s *Source) Close() error {
	var err error
	s.once.Do(func() {
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

package titlekit

import "io"

// NamedReadCloser is a reader that knows its own name, used to report the
// origin of malformed lines.
type NamedReadCloser interface {
	io.ReadCloser
	Name() string
}

// RawSource hands out readers over raw dataset bytes one at a time,
// returning io.EOF when exhausted. Implementations should be safe for
// concurrent use.
type RawSource interface {
	NextReader() (NamedReadCloser, error)
}

// Sink consumes merged records. Write reports an error when a record does
// not fit the sink's schema; whether one bad record aborts the whole run is
// the caller's decision, not the sink's.
type Sink interface {
	Write(m MovieRating) error
	Close() error
}

// Sinks fans Write out to several sinks in order.
type Sinks []Sink

// Write implements Sink.
func (ss Sinks) Write(m MovieRating) error {
	for _, s := range ss {
		if err := s.Write(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error.
func (ss Sinks) Close() error {
	var first error
	for _, s := range ss {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

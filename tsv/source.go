// Package tsv reads raw tab-separated lines from a titlekit.RawSource. The
// IMDb dumps carry one header line per file, which is skipped; the column
// order is taken from the configured schema instead.
package tsv

import (
	"bufio"
	"strings"

	"github.com/titlekit/titlekit"
)

// Line is one data line plus its origin, for error reporting.
type Line struct {
	Text   string
	File   string
	Number int // 1-based, counting the skipped header
}

// Source yields data lines from every reader of a RawSource in turn,
// skipping the header line and blank lines. Not safe for concurrent use;
// use one Source per goroutine.
type Source struct {
	rs titlekit.RawSource

	cur  titlekit.NamedReadCloser
	scan *bufio.Scanner
	line int
}

// NewSource returns a Source over rs.
func NewSource(rs titlekit.RawSource) *Source {
	return &Source{rs: rs}
}

// Line returns the next data line. It returns io.EOF once the RawSource and
// every reader it produced are exhausted.
func (s *Source) Line() (Line, error) {
	for {
		if s.cur == nil {
			cur, err := s.rs.NextReader()
			if err != nil {
				return Line{}, err
			}
			s.cur = cur
			s.scan = bufio.NewScanner(cur)
			s.scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			s.line = 0
			if s.scan.Scan() {
				s.line++ // header
			}
		}
		for s.scan.Scan() {
			s.line++
			txt := s.scan.Text()
			if strings.TrimSpace(txt) == "" {
				continue
			}
			return Line{Text: txt, File: s.cur.Name(), Number: s.line}, nil
		}
		err := s.scan.Err()
		cerr := s.cur.Close()
		s.cur, s.scan = nil, nil
		if err != nil {
			return Line{}, err
		}
		if cerr != nil {
			return Line{}, cerr
		}
	}
}

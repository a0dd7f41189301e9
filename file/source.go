// Package file provides a titlekit.RawSource over local files.
package file

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/titlekit/titlekit"
)

// RawSource hands out a reader for a single file, or for each file in a
// directory in turn. It is safe for concurrent use.
type RawSource struct {
	files   []string
	fileIdx *uint64
}

// NewRawSource returns a RawSource over the file at pathname, or over every
// file in it if pathname is a directory.
func NewRawSource(pathname string) (*RawSource, error) {
	fileIdx := uint64(0)
	s := &RawSource{
		fileIdx: &fileIdx,
	}
	info, err := os.Stat(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "statting path")
	}
	if info.IsDir() {
		entries, err := os.ReadDir(pathname)
		if err != nil {
			return nil, errors.Wrap(err, "reading directory")
		}
		s.files = make([]string, 0, len(entries))
		for _, entry := range entries {
			s.files = append(s.files, path.Join(pathname, entry.Name()))
		}
	} else {
		s.files = []string{pathname}
	}
	return s, nil
}

type metaFile struct {
	*os.File
}

func (m *metaFile) Name() string {
	return filepath.Base(m.File.Name())
}

// NextReader implements titlekit.RawSource.
func (s *RawSource) NextReader() (titlekit.NamedReadCloser, error) {
	idx := atomic.AddUint64(s.fileIdx, 1) - 1
	if int(idx) >= len(s.files) {
		return nil, io.EOF
	}

	f, err := os.Open(s.files[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", s.files[idx])
	}

	return &metaFile{f}, nil
}

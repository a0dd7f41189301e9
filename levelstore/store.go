// Package levelstore is a disk-backed titlekit.GroupStore on goleveldb. It
// uses the same key layout as boltstore (id + 0x00 + sequence number) with
// one database per side.
package levelstore

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/titlekit/titlekit"
)

// Store implements titlekit.GroupStore on two leveldb databases under one
// directory.
type Store struct {
	titles  *leveldb.DB
	ratings *leveldb.DB
	seq     uint64
}

// NewStore opens (or creates) the side databases under dirname.
func NewStore(dirname string) (*Store, error) {
	s := &Store{}
	var err error
	s.titles, err = leveldb.OpenFile(filepath.Join(dirname, "titles"), &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %v", filepath.Join(dirname, "titles"))
	}
	s.ratings, err = leveldb.OpenFile(filepath.Join(dirname, "ratings"), &opt.Options{})
	if err != nil {
		s.titles.Close()
		return nil, errors.Wrapf(err, "opening leveldb at %v", filepath.Join(dirname, "ratings"))
	}
	return s, nil
}

// AddTitle implements titlekit.GroupStore.
func (s *Store) AddTitle(t titlekit.Title) error {
	return s.put(s.titles, t.ID, t)
}

// AddRating implements titlekit.GroupStore.
func (s *Store) AddRating(r titlekit.Rating) error {
	return s.put(s.ratings, r.ID, r)
}

func (s *Store) put(db *leveldb.DB, id string, rec interface{}) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "marshaling record")
	}
	key := groupKey(id, atomic.AddUint64(&s.seq, 1))
	return errors.Wrap(db.Put(key, val, nil), "putting record")
}

func groupKey(id string, seq uint64) []byte {
	key := make([]byte, len(id)+9)
	copy(key, id)
	binary.BigEndian.PutUint64(key[len(id)+1:], seq)
	return key
}

func groupID(key []byte) []byte {
	if i := bytes.IndexByte(key, 0x00); i >= 0 {
		return key[:i]
	}
	return key
}

// Pairs implements titlekit.GroupStore.
func (s *Store) Pairs(emit func(t titlekit.Title, r titlekit.Rating) error) error {
	it := s.titles.NewIterator(nil, nil)
	defer it.Release()

	ok := it.First()
	for ok {
		id := append([]byte{}, groupID(it.Key())...)

		var titles []titlekit.Title
		for ; ok && bytes.Equal(groupID(it.Key()), id); ok = it.Next() {
			var t titlekit.Title
			if err := json.Unmarshal(it.Value(), &t); err != nil {
				return errors.Wrapf(err, "unmarshaling title %s", id)
			}
			titles = append(titles, t)
		}

		prefix := make([]byte, len(id)+1)
		copy(prefix, id)
		rit := s.ratings.NewIterator(util.BytesPrefix(prefix), nil)
		for rit.Next() {
			var r titlekit.Rating
			if err := json.Unmarshal(rit.Value(), &r); err != nil {
				rit.Release()
				return errors.Wrapf(err, "unmarshaling rating %s", id)
			}
			for _, t := range titles {
				if err := emit(t, r); err != nil {
					rit.Release()
					return err
				}
			}
		}
		if err := rit.Error(); err != nil {
			rit.Release()
			return errors.Wrap(err, "iterating ratings")
		}
		rit.Release()
	}
	return errors.Wrap(it.Error(), "iterating titles")
}

type closeErrors []error

func (errs closeErrors) Error() string {
	s := "multiple close errors:"
	for _, err := range errs {
		s += " " + err.Error()
	}
	return s
}

// Close closes both databases.
func (s *Store) Close() error {
	var errs closeErrors
	if err := s.titles.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.ratings.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

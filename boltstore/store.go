// Package boltstore is a disk-backed titlekit.GroupStore on boltdb, for
// joins too large to cogroup in memory. Records are stored JSON-encoded
// under id-prefixed keys so each id's group is a contiguous key range.
package boltstore

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"sync/atomic"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/titlekit/titlekit"
)

var (
	titleBucket  = []byte("titles")
	ratingBucket = []byte("ratings")
)

// Store implements titlekit.GroupStore on a single bolt file.
type Store struct {
	db  *bolt.DB
	seq uint64
}

// NewStore opens (or creates) the bolt file at filename and ensures the two
// side buckets exist.
func NewStore(filename string) (*Store, error) {
	db, err := bolt.Open(filename, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt db at %s", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(titleBucket); err != nil {
			return errors.Wrap(err, "creating titles bucket")
		}
		if _, err := tx.CreateBucketIfNotExists(ratingBucket); err != nil {
			return errors.Wrap(err, "creating ratings bucket")
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return &Store{db: db}, nil
}

// AddTitle implements titlekit.GroupStore.
func (s *Store) AddTitle(t titlekit.Title) error {
	return s.put(titleBucket, t.ID, t)
}

// AddRating implements titlekit.GroupStore.
func (s *Store) AddRating(r titlekit.Rating) error {
	return s.put(ratingBucket, r.ID, r)
}

func (s *Store) put(bucket []byte, id string, rec interface{}) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "marshaling record")
	}
	key := groupKey(id, atomic.AddUint64(&s.seq, 1))
	err = s.db.Batch(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, val)
	})
	return errors.Wrap(err, "putting record")
}

// groupKey is id + 0x00 + a big-endian sequence number, so duplicate ids
// sort together without clobbering each other. Title ids never contain a
// zero byte.
func groupKey(id string, seq uint64) []byte {
	key := make([]byte, len(id)+9)
	copy(key, id)
	binary.BigEndian.PutUint64(key[len(id)+1:], seq)
	return key
}

// groupID returns the id portion of a group key.
func groupID(key []byte) []byte {
	if i := bytes.IndexByte(key, 0x00); i >= 0 {
		return key[:i]
	}
	return key
}

// Pairs implements titlekit.GroupStore. It scans the title bucket one id
// group at a time and cross-joins each group against the rating bucket's
// matching key range.
func (s *Store) Pairs(emit func(t titlekit.Title, r titlekit.Rating) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		tc := tx.Bucket(titleBucket).Cursor()
		rb := tx.Bucket(ratingBucket)

		k, v := tc.First()
		for k != nil {
			id := append([]byte{}, groupID(k)...)

			var titles []titlekit.Title
			for ; k != nil && bytes.Equal(groupID(k), id); k, v = tc.Next() {
				var t titlekit.Title
				if err := json.Unmarshal(v, &t); err != nil {
					return errors.Wrapf(err, "unmarshaling title %s", id)
				}
				titles = append(titles, t)
			}

			prefix := make([]byte, len(id)+1)
			copy(prefix, id)
			rc := rb.Cursor()
			for rk, rv := rc.Seek(prefix); rk != nil && bytes.HasPrefix(rk, prefix); rk, rv = rc.Next() {
				var r titlekit.Rating
				if err := json.Unmarshal(rv, &r); err != nil {
					return errors.Wrapf(err, "unmarshaling rating %s", id)
				}
				for _, t := range titles {
					if err := emit(t, r); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// Close closes the bolt file.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "closing bolt db")
}

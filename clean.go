package titlekit

import (
	"fmt"
	"strconv"
)

// Sentinel is the literal token the IMDb dumps use for a missing value.
const Sentinel = `\N`

type numKind int

const (
	intKind numKind = iota
	floatKind
)

// Cleaner rewrites a Record's raw text values in place: the null sentinel
// becomes an absent value for every field, and the configured columns are
// coerced to bool, int64, or float64. The three field sets must be disjoint.
//
// Coercion is best effort. A numeric column holding text that does not
// parse becomes absent rather than an error; data continuity wins over
// strictness here. Cleaning is idempotent: values that are already typed
// (or already absent) pass through untouched.
type Cleaner struct {
	BoolFields  []string
	IntFields   []string
	FloatFields []string
}

// Cleaners for the two IMDb dumps, mirroring the dumps' column types.
var (
	BasicCleaner = Cleaner{
		BoolFields: []string{"isAdult"},
		IntFields:  []string{"startYear", "endYear", "runtimeMinutes"},
	}
	RatingCleaner = Cleaner{
		IntFields:   []string{"numVotes"},
		FloatFields: []string{"averageRating"},
	}
)

// Clean normalizes rec in place.
func (c Cleaner) Clean(rec Record) {
	for col, v := range rec {
		if s, ok := v.(string); ok && s == Sentinel {
			rec[col] = nil
		}
	}
	for _, col := range c.BoolFields {
		switch v := rec[col].(type) {
		case nil:
			// absent stays absent
		case bool:
			// already cleaned
		case string:
			// "0" is false, anything else is true. This is the dumps'
			// convention, not general boolean parsing.
			rec[col] = v != "0"
		default:
			rec[col] = true
		}
	}
	c.cleanNumeric(rec, intKind)
	c.cleanNumeric(rec, floatKind)
}

func (c Cleaner) cleanNumeric(rec Record, kind numKind) {
	var cols []string
	switch kind {
	case intKind:
		cols = c.IntFields
	case floatKind:
		cols = c.FloatFields
	default:
		panic(fmt.Sprintf("titlekit: invalid numeric kind %d", kind))
	}
	for _, col := range cols {
		v, ok := rec[col]
		if !ok || v == nil {
			rec[col] = nil
			continue
		}
		s, isRaw := v.(string)
		if !isRaw {
			continue // already coerced
		}
		if s == "" {
			rec[col] = nil
			continue
		}
		if kind == intKind {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				rec[col] = nil
				continue
			}
			rec[col] = n
		} else {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				rec[col] = nil
				continue
			}
			rec[col] = f
		}
	}
}

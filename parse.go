package titlekit

import (
	"fmt"
	"strings"
)

// Delimiter separates fields in the IMDb dataset dumps.
const Delimiter = "\t"

// Schema is the ordered list of column names for one dataset. The dumps
// carry a header line, but it is skipped rather than trusted; the column
// order is fixed and known ahead of time.
type Schema []string

// Column schemas for the two IMDb dumps.
var (
	BasicSchema = Schema{"tconst", "titleType", "primaryTitle", "originalTitle",
		"isAdult", "startYear", "endYear", "runtimeMinutes", "genres"}
	RatingSchema = Schema{"tconst", "averageRating", "numVotes"}
)

// Record maps column names to field values. Straight out of ParseLine every
// value is a raw string; Cleaner rewrites values to bool, int64, float64, or
// nil for absent.
type Record map[string]interface{}

// MalformedRecordError is returned by ParseLine when a line does not have
// exactly one field per schema column. It is recoverable; whether to skip
// the line or abort the run is the caller's decision.
type MalformedRecordError struct {
	Line string
	Want int
	Got  int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %d fields, want %d: %q", e.Got, e.Want, e.Line)
}

// ParseLine splits a tab-delimited line into a Record keyed by the schema's
// column names. Every value is left as raw text.
func ParseLine(line string, schema Schema) (Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != len(schema) {
		return nil, &MalformedRecordError{Line: line, Want: len(schema), Got: len(fields)}
	}
	rec := make(Record, len(schema))
	for i, col := range schema {
		rec[col] = fields[i]
	}
	return rec, nil
}

// JoinFields is the inverse of ParseLine for still-raw records: it rejoins
// the record's fields in schema order with the delimiter.
func JoinFields(rec Record, schema Schema) string {
	fields := make([]string, len(schema))
	for i, col := range schema {
		if s, ok := rec[col].(string); ok {
			fields[i] = s
		}
	}
	return strings.Join(fields, Delimiter)
}

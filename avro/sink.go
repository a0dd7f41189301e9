// Package avro serializes merged movie records to an Avro object container
// file. The schema is fixed; goavro rejects any record that does not match
// it, which is the sink's whole contract with the rest of the pipeline.
package avro

import (
	"os"

	goavro "github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
	"github.com/titlekit/titlekit"
)

// Schema declares the merged record's shape. Every field except the title
// id is nullable, matching the best-effort cleaning upstream.
const Schema = `{
	"type": "record",
	"name": "MovieRating",
	"namespace": "titlekit",
	"fields": [
		{"name": "tconst", "type": "string"},
		{"name": "titleType", "type": ["null", "string"], "default": null},
		{"name": "primaryTitle", "type": ["null", "string"], "default": null},
		{"name": "originalTitle", "type": ["null", "string"], "default": null},
		{"name": "isAdult", "type": ["null", "boolean"], "default": null},
		{"name": "startYear", "type": ["null", "long"], "default": null},
		{"name": "endYear", "type": ["null", "long"], "default": null},
		{"name": "runtimeMinutes", "type": ["null", "long"], "default": null},
		{"name": "genres", "type": ["null", "string"], "default": null},
		{"name": "averageRating", "type": ["null", "double"], "default": null},
		{"name": "numVotes", "type": ["null", "long"], "default": null}
	]
}`

// NewCodec returns a codec for the merged record schema.
func NewCodec() (*goavro.Codec, error) {
	return goavro.NewCodec(Schema)
}

// Sink writes merged records to an OCF file at path.
type Sink struct {
	f *os.File
	w *goavro.OCFWriter
}

// NewSink creates (or truncates) the file at path and returns a Sink over
// it.
func NewSink(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:      f,
		Schema: Schema,
	})
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "getting OCF writer")
	}
	return &Sink{f: f, w: w}, nil
}

// Write implements titlekit.Sink.
func (s *Sink) Write(m titlekit.MovieRating) error {
	err := s.w.Append([]interface{}{Native(m)})
	return errors.Wrap(err, "appending record")
}

// Close flushes and closes the underlying file.
func (s *Sink) Close() error {
	return errors.Wrap(s.f.Close(), "closing avro file")
}

// Native converts a merged record to goavro's native form for the Schema.
// Nullable fields are nil or a single-entry union map.
func Native(m titlekit.MovieRating) map[string]interface{} {
	return map[string]interface{}{
		"tconst":         m.ID,
		"titleType":      optString(m.TitleType),
		"primaryTitle":   optString(m.PrimaryTitle),
		"originalTitle":  optString(m.OriginalTitle),
		"isAdult":        optBool(m.IsAdult),
		"startYear":      optLong(m.StartYear),
		"endYear":        optLong(m.EndYear),
		"runtimeMinutes": optLong(m.RuntimeMinutes),
		"genres":         optString(m.Genres),
		"averageRating":  optDouble(m.AverageRating),
		"numVotes":       optLong(m.NumVotes),
	}
}

func optString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"string": *v}
}

func optBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"boolean": *v}
}

func optLong(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"long": *v}
}

func optDouble(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"double": *v}
}

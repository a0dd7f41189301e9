package join

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goavro "github.com/linkedin/goavro/v2"
	"github.com/titlekit/titlekit"
	"github.com/titlekit/titlekit/test"
)

const basicsData = `tconst	titleType	primaryTitle	originalTitle	isAdult	startYear	endYear	runtimeMinutes	genres
tt1	movie	Keeper	Keeper	0	1985	\N	90	Drama
tt2	movie	Too Old	Too Old	0	1960	\N	100	Drama
tt3	tvSeries	Not A Movie	Not A Movie	0	1985	\N	45	Comedy
tt4	movie	Adult	Adult	1	1990	\N	80	Drama
tt5	movie	No Year	No Year	0	\N	\N	80	Drama
tt6	movie	Unrated	Unrated	0	2000	\N	110	Action
this line is malformed
`

const ratingsData = `tconst	averageRating	numVotes
tt1	8.5	100
tt2	9.0	50
tt7	4.0	10
tt8	7.0	10
`

func writeInputs(t *testing.T) (basics, ratings string) {
	t.Helper()
	d := t.TempDir()
	basics = filepath.Join(d, "basics.tsv")
	ratings = filepath.Join(d, "ratings.tsv")
	test.ErrNil(t, os.WriteFile(basics, []byte(basicsData), 0644), "writing basics")
	test.ErrNil(t, os.WriteFile(ratings, []byte(ratingsData), 0644), "writing ratings")
	return basics, ratings
}

func readMerged(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	test.ErrNil(t, err, "opening output")
	defer f.Close()
	r, err := goavro.NewOCFReader(f)
	test.ErrNil(t, err, "getting OCF reader")
	var recs []map[string]interface{}
	for r.Scan() {
		datum, err := r.Read()
		test.ErrNil(t, err, "reading record")
		recs = append(recs, datum.(map[string]interface{}))
	}
	return recs
}

func TestRunEndToEnd(t *testing.T) {
	for _, storeType := range []string{"memory", "bolt", "leveldb"} {
		t.Run(storeType, func(t *testing.T) {
			basics, ratings := writeInputs(t)
			out := filepath.Join(t.TempDir(), "out.avro")

			m := NewMain()
			m.InputBasics = basics
			m.InputRatings = ratings
			m.Output = out
			m.JoinStore = storeType
			m.log = titlekit.NopLogger{}

			test.ErrNil(t, m.Run(), "running")

			recs := readMerged(t, out)
			test.MustBe(t, len(recs), 1, "merged record count")
			rec := recs[0]
			test.MustBe(t, rec["tconst"], "tt1", "tconst")
			test.MustBe(t, rec["titleType"], map[string]interface{}{"string": "movie"}, "titleType")
			test.MustBe(t, rec["startYear"], map[string]interface{}{"long": int64(1985)}, "startYear")
			test.MustBe(t, rec["averageRating"], map[string]interface{}{"double": 8.5}, "averageRating")
			test.MustBe(t, rec["numVotes"], map[string]interface{}{"long": int64(100)}, "numVotes")
			test.MustBe(t, rec["endYear"], nil, "endYear")
		})
	}
}

func TestRunAbortsOnMalformed(t *testing.T) {
	basics, ratings := writeInputs(t)
	out := filepath.Join(t.TempDir(), "out.avro")

	m := NewMain()
	m.InputBasics = basics
	m.InputRatings = ratings
	m.Output = out
	m.OnMalformed = "abort"
	m.log = titlekit.NopLogger{}

	err := m.Run()
	if err == nil {
		t.Fatal("expected error for malformed line under abort policy")
	}
	if !strings.Contains(err.Error(), "malformed record") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	m := NewMain()
	if err := m.Run(); err == nil {
		t.Fatal("missing inputs should fail validation")
	}

	m = NewMain()
	m.InputBasics = "a"
	m.InputRatings = "b"
	m.Output = "c"
	m.OnMalformed = "explode"
	if err := m.validate(); err == nil {
		t.Fatal("bad malformed policy should fail validation")
	}

	m = NewMain()
	m.InputBasics = "a"
	m.InputRatings = "b"
	m.Output = "c"
	m.JoinStore = "rocksdb"
	if err := m.validate(); err == nil {
		t.Fatal("bad join store should fail validation")
	}
}

func TestOpenRawSourceLocalVsS3(t *testing.T) {
	m := NewMain()
	// local paths that don't exist error out on stat
	if _, err := m.openRawSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing local path")
	}
}

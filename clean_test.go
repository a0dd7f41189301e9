package titlekit

import (
	"reflect"
	"testing"
)

func TestCleanSentinel(t *testing.T) {
	rec := Record{"a": `\N`, "b": "x", "c": ""}
	Cleaner{}.Clean(rec)
	if rec["a"] != nil {
		t.Fatalf("sentinel should become absent: %v", rec["a"])
	}
	if rec["b"] != "x" || rec["c"] != "" {
		t.Fatalf("non-sentinel strings should survive: %v", rec)
	}
}

func TestCleanBool(t *testing.T) {
	c := Cleaner{BoolFields: []string{"flag"}}
	tests := []struct {
		raw  interface{}
		want interface{}
	}{
		{"0", false},
		{"1", true},
		{"", true},
		{"foo", true},
		{`\N`, nil},
	}
	for _, test := range tests {
		rec := Record{"flag": test.raw}
		c.Clean(rec)
		if rec["flag"] != test.want {
			t.Fatalf("%v: got %v, want %v", test.raw, rec["flag"], test.want)
		}
	}
}

func TestCleanNumeric(t *testing.T) {
	c := Cleaner{IntFields: []string{"year"}, FloatFields: []string{"rating"}}
	tests := []struct {
		year   interface{}
		rating interface{}
		wantY  interface{}
		wantR  interface{}
	}{
		{"1985", "7.2", int64(1985), 7.2},
		{"N/A", "N/A", nil, nil},
		{"", "", nil, nil},
		{`\N`, `\N`, nil, nil},
		{"12x", "1.2.3", nil, nil},
		{"-5", "-0.5", int64(-5), -0.5},
	}
	for _, test := range tests {
		rec := Record{"year": test.year, "rating": test.rating}
		c.Clean(rec)
		if rec["year"] != test.wantY {
			t.Fatalf("year %v: got %v, want %v", test.year, rec["year"], test.wantY)
		}
		if rec["rating"] != test.wantR {
			t.Fatalf("rating %v: got %v, want %v", test.rating, rec["rating"], test.wantR)
		}
	}
}

func TestCleanMissingColumn(t *testing.T) {
	// a configured column not present in the record becomes explicitly absent
	c := Cleaner{IntFields: []string{"year"}}
	rec := Record{}
	c.Clean(rec)
	if v, ok := rec["year"]; !ok || v != nil {
		t.Fatalf("missing configured column: %v %v", v, ok)
	}
}

func TestCleanIdempotent(t *testing.T) {
	rec := Record{
		"tconst":         "tt0000001",
		"titleType":      "movie",
		"primaryTitle":   "A Movie",
		"originalTitle":  `\N`,
		"isAdult":        "0",
		"startYear":      "1985",
		"endYear":        `\N`,
		"runtimeMinutes": "bogus",
		"genres":         "Drama",
	}
	BasicCleaner.Clean(rec)
	once := make(Record, len(rec))
	for k, v := range rec {
		once[k] = v
	}
	BasicCleaner.Clean(rec)
	if !reflect.DeepEqual(rec, once) {
		t.Fatalf("cleaning twice changed the record:\nonce:  %v\ntwice: %v", once, rec)
	}
	if once["isAdult"] != false || once["startYear"] != int64(1985) {
		t.Fatalf("unexpected cleaned values: %v", once)
	}
	if once["runtimeMinutes"] != nil || once["endYear"] != nil {
		t.Fatalf("coercion failures should be absent: %v", once)
	}
}

func TestCleanUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid numeric kind")
		}
	}()
	Cleaner{}.cleanNumeric(Record{}, numKind(42))
}

package titlekit

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestParseLine(t *testing.T) {
	line := "tt0000001\tmovie\tA Movie\tA Movie\t0\t1985\t\\N\t90\tDrama,Comedy"
	rec, err := ParseLine(line, BasicSchema)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if got := rec["tconst"]; got != "tt0000001" {
		t.Fatalf("tconst: %v", got)
	}
	if got := rec["genres"]; got != "Drama,Comedy" {
		t.Fatalf("genres: %v", got)
	}
	if got := rec["endYear"]; got != `\N` {
		t.Fatalf("endYear should still be the raw sentinel: %v", got)
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	lines := []string{
		"tt0000001\tmovie\tA Movie\tA Movie\t0\t1985\t\\N\t90\tDrama,Comedy",
		"tt0000002\tshort\t\t\t1\t\\N\t\\N\t\\N\t\\N", // empty fields survive
		"a\tb\tc\td\te\tf\tg\th\ti",
	}
	for _, line := range lines {
		rec, err := ParseLine(line, BasicSchema)
		if err != nil {
			t.Fatalf("parsing %q: %v", line, err)
		}
		if got := JoinFields(rec, BasicSchema); got != line {
			t.Fatalf("round trip: got %q, want %q", got, line)
		}
	}
}

func TestParseLineMalformed(t *testing.T) {
	tests := []struct {
		line string
		got  int
	}{
		{"tt0000001\tmovie", 2},
		{"tt0000001\tmovie\ta\tb\tc\td\te\tf\tg\textra", 10},
		{"", 1},
	}
	for _, test := range tests {
		_, err := ParseLine(test.line, BasicSchema)
		if err == nil {
			t.Fatalf("expected error for %q", test.line)
		}
		var merr *MalformedRecordError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MalformedRecordError, got %T", err)
		}
		if merr.Got != test.got || merr.Want != len(BasicSchema) {
			t.Fatalf("counts: got %d/%d, want %d/%d", merr.Got, merr.Want, test.got, len(BasicSchema))
		}
		if !strings.Contains(merr.Error(), "malformed record") {
			t.Fatalf("error text: %v", merr)
		}
	}
}

func TestParseLineRatingSchema(t *testing.T) {
	rec, err := ParseLine("tt0000001\t7.2\t1024", RatingSchema)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if rec["averageRating"] != "7.2" || rec["numVotes"] != "1024" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

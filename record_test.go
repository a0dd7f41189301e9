package titlekit

import "testing"

func cleanBasic(t *testing.T, line string) Title {
	t.Helper()
	rec, err := ParseLine(line, BasicSchema)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	BasicCleaner.Clean(rec)
	return BindTitle(rec)
}

func cleanRating(t *testing.T, line string) Rating {
	t.Helper()
	rec, err := ParseLine(line, RatingSchema)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	RatingCleaner.Clean(rec)
	return BindRating(rec)
}

func TestBindTitle(t *testing.T) {
	title := cleanBasic(t, "tt0000001\tmovie\tA Movie\t\\N\t0\t1985\t\\N\tnope\tDrama")
	if title.ID != "tt0000001" {
		t.Fatalf("id: %v", title.ID)
	}
	if title.TitleType == nil || *title.TitleType != "movie" {
		t.Fatalf("titleType: %v", title.TitleType)
	}
	if title.OriginalTitle != nil {
		t.Fatalf("originalTitle should be absent: %v", *title.OriginalTitle)
	}
	if title.IsAdult == nil || *title.IsAdult {
		t.Fatalf("isAdult: %v", title.IsAdult)
	}
	if title.StartYear == nil || *title.StartYear != 1985 {
		t.Fatalf("startYear: %v", title.StartYear)
	}
	if title.RuntimeMinutes != nil {
		t.Fatalf("unparseable runtime should be absent: %v", *title.RuntimeMinutes)
	}
}

func TestBindRating(t *testing.T) {
	r := cleanRating(t, "tt0000001\t7.2\t\\N")
	if r.ID != "tt0000001" {
		t.Fatalf("id: %v", r.ID)
	}
	if r.AverageRating == nil || *r.AverageRating != 7.2 {
		t.Fatalf("averageRating: %v", r.AverageRating)
	}
	if r.NumVotes != nil {
		t.Fatalf("numVotes should be absent: %v", *r.NumVotes)
	}
}

func TestMerge(t *testing.T) {
	title := cleanBasic(t, "tt0000001\tmovie\tA Movie\tA Movie\t0\t1985\t\\N\t90\tDrama")
	rating := cleanRating(t, "tt0000001\t8.0\t1000")
	m := Merge(title, rating)
	if m.ID != "tt0000001" {
		t.Fatalf("id: %v", m.ID)
	}
	if m.Genres == nil || *m.Genres != "Drama" {
		t.Fatalf("genres: %v", m.Genres)
	}
	if m.AverageRating == nil || *m.AverageRating != 8.0 {
		t.Fatalf("averageRating: %v", m.AverageRating)
	}
	if m.StartYear == nil || *m.StartYear != 1985 {
		t.Fatalf("startYear: %v", m.StartYear)
	}
}

func TestMergeRatingWinsCollision(t *testing.T) {
	// The only field both sides define is the title id. Merging records
	// with different ids shows the rating side's value winning.
	title := Title{ID: "tt0000001"}
	rating := Rating{ID: "tt0000002"}
	m := Merge(title, rating)
	if m.ID != "tt0000002" {
		t.Fatalf("rating id should win the collision: %v", m.ID)
	}
}

package titlekit

import "testing"

func strp(s string) *string     { return &s }
func boolp(b bool) *bool        { return &b }
func intp(n int64) *int64       { return &n }
func floatp(f float64) *float64 { return &f }

func TestKeepTitle(t *testing.T) {
	tests := []struct {
		name  string
		title Title
		want  bool
	}{
		{"movie from 1985", Title{TitleType: strp("movie"), IsAdult: boolp(false), StartYear: intp(1985)}, true},
		{"tv series", Title{TitleType: strp("tvSeries"), IsAdult: boolp(false), StartYear: intp(1985)}, false},
		{"too old", Title{TitleType: strp("movie"), IsAdult: boolp(false), StartYear: intp(1960)}, false},
		{"boundary year", Title{TitleType: strp("movie"), IsAdult: boolp(false), StartYear: intp(1970)}, true},
		{"adult", Title{TitleType: strp("movie"), IsAdult: boolp(true), StartYear: intp(1985)}, false},
		{"absent adult flag", Title{TitleType: strp("movie"), StartYear: intp(1985)}, true},
		{"absent year", Title{TitleType: strp("movie"), IsAdult: boolp(false)}, false},
		{"absent type", Title{IsAdult: boolp(false), StartYear: intp(1985)}, false},
	}
	for _, test := range tests {
		if got := KeepTitle(test.title); got != test.want {
			t.Fatalf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestKeepRating(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"good rating", Rating{AverageRating: floatp(7.2)}, true},
		{"low rating", Rating{AverageRating: floatp(4.9)}, false},
		{"boundary rating", Rating{AverageRating: floatp(5.0)}, true},
		{"absent rating", Rating{}, false},
	}
	for _, test := range tests {
		if got := KeepRating(test.rating); got != test.want {
			t.Fatalf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// Package fake generates plausible IMDb-style dataset dumps for demos and
// tests, so the pipeline can be exercised without downloading the real
// multi-gigabyte files.
package fake

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var titleTypes = []string{"movie", "movie", "movie", "tvSeries", "short", "tvMovie", "video"}

var genrePool = []string{"Drama", "Comedy", "Action", "Documentary", "Horror",
	"Romance", "Thriller", "Crime", "Adventure", "Sci-Fi"}

var words = []string{"Night", "River", "Last", "Broken", "Silent", "Golden",
	"Iron", "Lost", "Paper", "Winter", "Crimson", "Hollow", "Glass", "Stone"}

// Generator produces matched pairs of title.basics and title.ratings data
// lines. The same seed gives the same series of lines on a given version of
// Go.
type Generator struct {
	r *rand.Rand
	n int
}

// NewGenerator gets a new Generator with the given random seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

// Next returns the next basic record line and a matching rating line.
// About one title in five gets no rating; rating is empty then.
func (g *Generator) Next() (basic, rating string) {
	g.n++
	id := fmt.Sprintf("tt%07d", g.n)

	title := g.title()
	startYear := g.maybe(fmt.Sprintf("%d", 1950+g.r.Intn(75)), 0.95)
	endYear := `\N`
	runtime := g.maybe(fmt.Sprintf("%d", 40+g.r.Intn(140)), 0.9)
	isAdult := "0"
	if g.r.Float64() < 0.03 {
		isAdult = "1"
	}

	basic = strings.Join([]string{
		id,
		titleTypes[g.r.Intn(len(titleTypes))],
		title,
		title,
		isAdult,
		startYear,
		endYear,
		runtime,
		g.genres(),
	}, "\t")

	if g.r.Float64() < 0.8 {
		rating = strings.Join([]string{
			id,
			fmt.Sprintf("%.1f", 1.0+g.r.Float64()*9.0),
			fmt.Sprintf("%d", 5+g.r.Intn(200000)),
		}, "\t")
	}
	return basic, rating
}

func (g *Generator) title() string {
	a := words[g.r.Intn(len(words))]
	b := words[g.r.Intn(len(words))]
	return fmt.Sprintf("The %s %s", a, b)
}

func (g *Generator) genres() string {
	n := 1 + g.r.Intn(3)
	picked := make([]string, 0, n)
	for len(picked) < n {
		gen := genrePool[g.r.Intn(len(genrePool))]
		dup := false
		for _, p := range picked {
			if p == gen {
				dup = true
			}
		}
		if !dup {
			picked = append(picked, gen)
		}
	}
	return strings.Join(picked, ",")
}

func (g *Generator) maybe(val string, prob float64) string {
	if g.r.Float64() < prob {
		return val
	}
	return `\N`
}

// Main holds the configuration for generating a pair of fake dumps.
type Main struct {
	Basics  string `help:"Path to write the fake title.basics TSV to."`
	Ratings string `help:"Path to write the fake title.ratings TSV to."`
	Count   int    `help:"Number of titles to generate."`
	Seed    int64  `help:"Random seed."`
}

// NewMain gets a Main with default configuration.
func NewMain() *Main {
	return &Main{
		Basics:  "title.basics.tsv",
		Ratings: "title.ratings.tsv",
		Count:   1000,
	}
}

// Run writes both dump files.
func (m *Main) Run() error {
	bf, err := os.Create(m.Basics)
	if err != nil {
		return errors.Wrap(err, "creating basics file")
	}
	defer bf.Close()
	rf, err := os.Create(m.Ratings)
	if err != nil {
		return errors.Wrap(err, "creating ratings file")
	}
	defer rf.Close()

	bw := bufio.NewWriter(bf)
	rw := bufio.NewWriter(rf)
	fmt.Fprintln(bw, "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres")
	fmt.Fprintln(rw, "tconst\taverageRating\tnumVotes")

	g := NewGenerator(m.Seed)
	for i := 0; i < m.Count; i++ {
		basic, rating := g.Next()
		fmt.Fprintln(bw, basic)
		if rating != "" {
			fmt.Fprintln(rw, rating)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing basics")
	}
	return errors.Wrap(rw.Flush(), "flushing ratings")
}

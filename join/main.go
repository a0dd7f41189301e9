// Package join runs the whole merge job: read both dumps, parse, clean,
// filter, cogroup by title id, and write the merged records to the
// configured sinks.
package join

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/titlekit/titlekit"
	"github.com/titlekit/titlekit/avro"
	"github.com/titlekit/titlekit/boltstore"
	"github.com/titlekit/titlekit/file"
	"github.com/titlekit/titlekit/kafka"
	"github.com/titlekit/titlekit/levelstore"
	"github.com/titlekit/titlekit/s3"
	"github.com/titlekit/titlekit/termstat"
	"github.com/titlekit/titlekit/tsv"
)

// Main contains the configuration for one run of the merge job.
type Main struct {
	InputBasics  string   `help:"Path, directory, or s3://bucket/prefix of the title.basics TSV dump."`
	InputRatings string   `help:"Path, directory, or s3://bucket/prefix of the title.ratings TSV dump."`
	Output       string   `help:"Path for the merged avro output file."`
	JoinStore    string   `help:"Group store for the join: memory, bolt, or leveldb."`
	StorePath    string   `help:"Directory for disk-backed join stores. A temp dir if empty."`
	OnMalformed  string   `help:"What to do with lines that have the wrong field count: skip or abort."`
	KafkaHosts   []string `help:"If non-empty, also publish merged records to these kafka brokers."`
	KafkaTopic   string   `help:"Kafka topic for merged records."`
	S3Region     string   `help:"AWS region for s3:// inputs."`
	Stats        bool     `help:"Periodically print pipeline counters to stderr."`
	Verbose      bool     `help:"Enable debug logging."`

	log   titlekit.Logger
	stats titlekit.Statter
}

// NewMain gets a Main with default configuration. The input and output
// locations have no defaults and must be set.
func NewMain() *Main {
	return &Main{
		JoinStore:   "memory",
		OnMalformed: "skip",
		KafkaTopic:  "movie-ratings",
		S3Region:    "us-east-1",
	}
}

func (m *Main) validate() error {
	if m.InputBasics == "" || m.InputRatings == "" || m.Output == "" {
		return errors.New("input-basics, input-ratings, and output are all required")
	}
	switch m.OnMalformed {
	case "skip", "abort":
	default:
		return errors.Errorf("unknown on-malformed policy %q (want skip or abort)", m.OnMalformed)
	}
	switch m.JoinStore {
	case "memory", "bolt", "leveldb":
	default:
		return errors.Errorf("unknown join store %q (want memory, bolt, or leveldb)", m.JoinStore)
	}
	return nil
}

// Run runs the job.
func (m *Main) Run() error {
	if err := m.validate(); err != nil {
		return errors.Wrap(err, "validating configuration")
	}
	if m.log == nil {
		l := log.New(os.Stderr, "", log.LstdFlags)
		if m.Verbose {
			m.log = titlekit.VerboseLogger{Logger: l}
		} else {
			m.log = titlekit.StdLogger{Logger: l}
		}
	}
	if m.stats == nil {
		if m.Stats {
			m.stats = termstat.NewCollector(os.Stderr)
		} else {
			m.stats = titlekit.NopStatter{}
		}
	}

	store, cleanup, err := m.openStore()
	if err != nil {
		return errors.Wrap(err, "opening group store")
	}
	defer cleanup()

	sink, err := m.openSink()
	if err != nil {
		store.Close()
		return errors.Wrap(err, "opening sink")
	}

	start := time.Now()
	eg := errgroup.Group{}
	eg.Go(func() error { return m.loadTitles(store) })
	eg.Go(func() error { return m.loadRatings(store) })
	if err := eg.Wait(); err != nil {
		return err
	}

	written := 0
	err = store.Pairs(func(t titlekit.Title, r titlekit.Rating) error {
		m.stats.Count("joined", 1, 1)
		if err := sink.Write(titlekit.Merge(t, r)); err != nil {
			return errors.Wrap(err, "writing merged record")
		}
		written++
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "joining")
	}
	if err := sink.Close(); err != nil {
		return errors.Wrap(err, "closing sink")
	}
	if err := store.Close(); err != nil {
		return errors.Wrap(err, "closing group store")
	}
	m.stats.Timing("run", time.Since(start), 1)
	m.log.Printf("wrote %d merged records in %v", written, time.Since(start))
	return nil
}

func (m *Main) loadTitles(store titlekit.GroupStore) error {
	return m.scan(m.InputBasics, titlekit.BasicSchema, titlekit.BasicCleaner,
		func(rec titlekit.Record) error {
			t := titlekit.BindTitle(rec)
			if !titlekit.KeepTitle(t) {
				m.stats.Count("titles-dropped", 1, 1)
				return nil
			}
			m.stats.Count("titles-kept", 1, 1)
			return errors.Wrap(store.AddTitle(t), "adding title")
		})
}

func (m *Main) loadRatings(store titlekit.GroupStore) error {
	return m.scan(m.InputRatings, titlekit.RatingSchema, titlekit.RatingCleaner,
		func(rec titlekit.Record) error {
			r := titlekit.BindRating(rec)
			if !titlekit.KeepRating(r) {
				m.stats.Count("ratings-dropped", 1, 1)
				return nil
			}
			m.stats.Count("ratings-kept", 1, 1)
			return errors.Wrap(store.AddRating(r), "adding rating")
		})
}

// scan reads every data line from input, parses it against schema, cleans
// it, and hands it to each. Malformed lines are skipped or abort the run
// per the configured policy.
func (m *Main) scan(input string, schema titlekit.Schema, cleaner titlekit.Cleaner, each func(titlekit.Record) error) error {
	rs, err := m.openRawSource(input)
	if err != nil {
		return errors.Wrapf(err, "opening source %s", input)
	}
	src := tsv.NewSource(rs)
	for {
		line, err := src.Line()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", input)
		}
		rec, err := titlekit.ParseLine(line.Text, schema)
		if err != nil {
			var merr *titlekit.MalformedRecordError
			if errors.As(err, &merr) && m.OnMalformed == "skip" {
				m.stats.Count("malformed", 1, 1)
				m.log.Debugf("skipping %s:%d: %v", line.File, line.Number, merr)
				continue
			}
			return errors.Wrapf(err, "%s:%d", line.File, line.Number)
		}
		cleaner.Clean(rec)
		if err := each(rec); err != nil {
			return err
		}
	}
}

func (m *Main) openRawSource(input string) (titlekit.RawSource, error) {
	if strings.HasPrefix(input, "s3://") {
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(input, "s3://"), "/")
		return s3.NewRawSource(m.S3Region, bucket, prefix)
	}
	return file.NewRawSource(input)
}

func (m *Main) openStore() (titlekit.GroupStore, func(), error) {
	nop := func() {}
	if m.JoinStore == "memory" {
		return titlekit.NewMemStore(), nop, nil
	}

	dir := m.StorePath
	cleanup := nop
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "titlekit-join")
		if err != nil {
			return nil, nop, errors.Wrap(err, "making store dir")
		}
		cleanup = func() { os.RemoveAll(dir) }
	}

	switch m.JoinStore {
	case "bolt":
		store, err := boltstore.NewStore(dir + "/groups.bolt")
		if err != nil {
			cleanup()
			return nil, nop, err
		}
		return store, cleanup, nil
	default: // leveldb, per validate
		store, err := levelstore.NewStore(dir)
		if err != nil {
			cleanup()
			return nil, nop, err
		}
		return store, cleanup, nil
	}
}

func (m *Main) openSink() (titlekit.Sink, error) {
	av, err := avro.NewSink(m.Output)
	if err != nil {
		return nil, errors.Wrap(err, "opening avro sink")
	}
	if len(m.KafkaHosts) == 0 {
		return av, nil
	}
	kf, err := kafka.NewSink(m.KafkaHosts, m.KafkaTopic)
	if err != nil {
		av.Close()
		return nil, errors.Wrap(err, "opening kafka sink")
	}
	return titlekit.Sinks{av, kf}, nil
}

package join

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"placing/internal/emit"
	"placing/internal/index"
	"placing/internal/logging"
	"placing/internal/records"
	"placing/internal/streamio"
	"placing/internal/tags"
)

// Mode selects the record layout a Joiner emits.
type Mode string

const (
	// ModeTrain emits data-row coordinates and prefixes the place label.
	ModeTrain Mode = "train"
	// ModeTest emits placeholder coordinates and no label.
	ModeTest Mode = "test"
)

// cancelCheckEvery is the line interval between context checks.
const cancelCheckEvery = 4096

// Target pairs one read-only index with the destination its hits go to.
type Target struct {
	Name    string
	Index   *index.Index
	Emitter *emit.Emitter
}

// Options configures a Joiner.
type Options struct {
	Mode          Mode
	Normalizer    *tags.Normalizer
	AbortOnError  bool
	ProgressEvery int
	// OpenOptions are passed to streamio.Open for every data stream.
	OpenOptions []streamio.Option
	Logger      *slog.Logger
}

// Stats summarizes one Run.
type Stats struct {
	Streams int
	// Scanned counts every data line read.
	Scanned int
	// Matched counts lines that hit at least one target.
	Matched int
	// Emitted counts records written across all targets.
	Emitted int
	// Skipped counts malformed hit lines dropped under the skip policy.
	Skipped int
	Elapsed time.Duration
}

// Joiner streams metadata files against a fixed list of targets.
type Joiner struct {
	targets []Target
	opts    Options
	logger  *slog.Logger
}

// New creates a Joiner. Targets are tested in the given order.
func New(targets []Target, opts Options) *Joiner {
	if opts.Mode == "" {
		opts.Mode = ModeTrain
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Joiner{
		targets: targets,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "join"),
	}
}

// WriteCounts writes each target's leading record-count line: the number of
// distinct identifiers in its index. A mismatch with a count declared by the
// reference file is logged.
func (j *Joiner) WriteCounts() error {
	for _, target := range j.targets {
		n := target.Index.Len()
		if declared, ok := target.Index.DeclaredCount(); ok && declared != n {
			j.logger.Warn("declared reference count differs from distinct identifiers",
				logging.String("target", target.Name),
				logging.Int("declared", declared),
				logging.Int("distinct", n),
			)
		}
		if err := target.Emitter.WriteCount(n); err != nil {
			return fmt.Errorf("write count for %s: %w", target.Name, err)
		}
	}
	return nil
}

// Run makes one pass over the logical concatenation of paths.
func (j *Joiner) Run(ctx context.Context, paths []string) (Stats, error) {
	start := time.Now()
	var stats Stats
	for _, path := range paths {
		if err := j.runStream(ctx, path, &stats); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}
		stats.Streams++
	}
	stats.Elapsed = time.Since(start)
	j.logger.Info("join complete",
		logging.Int("streams", stats.Streams),
		logging.Int(logging.FieldRecords, stats.Scanned),
		logging.Int("matched", stats.Matched),
		logging.Int("emitted", stats.Emitted),
		logging.Int("skipped", stats.Skipped),
		logging.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

func (j *Joiner) runStream(ctx context.Context, path string, stats *Stats) error {
	j.logger.Info("processing data stream", logging.String(logging.FieldFile, path))
	sampler := logging.NewProgressSampler(j.opts.ProgressEvery)
	err := streamio.ForEachFileLine(path, func(lineNo int, line string) error {
		if lineNo%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		stats.Scanned++
		if err := j.joinLine(line, stats); err != nil {
			if !j.opts.AbortOnError && isRowError(err) {
				stats.Skipped++
				j.logger.Warn("skipping malformed row",
					logging.String(logging.FieldFile, path),
					logging.Int(logging.FieldLine, lineNo),
					logging.Error(err),
				)
			} else {
				return records.At(err, path, lineNo, line)
			}
		}
		if sampler.Tick() {
			j.logger.Info("progress",
				logging.String(logging.FieldFile, path),
				logging.Int(logging.FieldRecords, sampler.Count()),
			)
		}
		return nil
	}, j.opts.OpenOptions...)
	if err != nil {
		return fmt.Errorf("join %s: %w", path, err)
	}
	return nil
}

// joinLine emits one record per target whose index contains the line's
// identifier.
func (j *Joiner) joinLine(line string, stats *Stats) error {
	id := records.FirstField(line)
	var (
		parsed bool
		md     records.Metadata
		text   string
		hit    bool
	)
	for _, target := range j.targets {
		if !target.Index.Contains(id) {
			continue
		}
		payload, _ := target.Index.Lookup(id)
		if !parsed {
			var err error
			md, err = records.ParseMetadata(line, j.opts.Mode == ModeTrain)
			if err != nil {
				return err
			}
			text = j.opts.Normalizer.Normalize(md.Title, md.Description, md.UserTags, md.MachineTags)
			parsed = true
		}
		rec := emit.Record{
			Identifier: md.Identifier,
			Hash:       payload.Hash(),
			Text:       text,
		}
		if j.opts.Mode == ModeTrain {
			rec.Latitude = md.Latitude
			rec.Longitude = md.Longitude
			rec.Text = j.labelled(payload, text)
		}
		if err := target.Emitter.WriteRecord(rec); err != nil {
			return fmt.Errorf("%s: %w", target.Name, err)
		}
		stats.Emitted++
		hit = true
	}
	if hit {
		stats.Matched++
	}
	return nil
}

// labelled prefixes text with the rendered label columns of payload.
func (j *Joiner) labelled(payload index.Payload, text string) string {
	fields := payload.Fields()
	if len(fields) < 2 {
		return text
	}
	parts := make([]string, 0, len(fields))
	for _, label := range fields[1:] {
		parts = append(parts, j.opts.Normalizer.Label(label))
	}
	parts = append(parts, text)
	return j.opts.Normalizer.Normalize(parts...)
}

func isRowError(err error) bool {
	var rowErr *records.RowError
	return errors.As(err, &rowErr)
}

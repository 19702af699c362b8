package evaluate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"placing/internal/geodesy"
	"placing/internal/logging"
	"placing/internal/records"
	"placing/internal/streamio"
)

// DefaultReportSuffix is appended to a candidate path to name its report.
const DefaultReportSuffix = ".evaluation.tsv"

// Options configures an Evaluator.
type Options struct {
	ThresholdsKm  []float64
	ReportSuffix  string
	Lock          bool
	AbortOnError  bool
	ProgressEvery int
	OpenOptions   []streamio.Option
	Logger        *slog.Logger
}

// Result describes one evaluated candidate file.
type Result struct {
	Path       string
	ReportPath string
	Summary    Summary
	// Skipped counts rows dropped under the skip policy.
	Skipped int
	Elapsed time.Duration
}

// Evaluator scores candidate files against one ground truth.
type Evaluator struct {
	truth  *GroundTruth
	opts   Options
	logger *slog.Logger
}

// New returns an Evaluator over truth.
func New(truth *GroundTruth, opts Options) *Evaluator {
	if opts.ReportSuffix == "" {
		opts.ReportSuffix = DefaultReportSuffix
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Evaluator{
		truth:  truth,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "evaluate"),
	}
}

// ReportPath returns the report destination for a candidate path.
func (e *Evaluator) ReportPath(path string) string {
	return path + e.opts.ReportSuffix
}

// EvaluateFile scores every "hash;lat;lon" row of path and writes the report.
// Under the abort policy the first malformed row or unknown hash ends the
// evaluation with an error; the partial report is flushed and left in place.
func (e *Evaluator) EvaluateFile(ctx context.Context, path string) (res Result, err error) {
	start := time.Now()
	res = Result{Path: path, ReportPath: e.ReportPath(path)}
	e.logger.Info("evaluating", logging.String(logging.FieldFile, path))

	dst, err := streamio.Create(res.ReportPath, e.opts.Lock)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", res.ReportPath, cerr)
		}
	}()

	report := newReportWriter(dst)
	if err := report.header(); err != nil {
		return res, err
	}

	acc := NewAccumulator(e.opts.ThresholdsKm)
	sampler := logging.NewProgressSampler(e.opts.ProgressEvery)
	err = streamio.ForEachFileLine(path, func(lineNo int, line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.evaluateLine(line, acc, report); err != nil {
			if e.opts.AbortOnError || !isRecoverable(err) {
				e.logger.Error("evaluation aborted",
					logging.String(logging.FieldFile, path),
					logging.Int(logging.FieldLine, lineNo),
					logging.String("row", line),
					logging.Error(err),
				)
				return records.At(err, path, lineNo, line)
			}
			res.Skipped++
			e.logger.Warn("skipping candidate row",
				logging.String(logging.FieldFile, path),
				logging.Int(logging.FieldLine, lineNo),
				logging.Error(err),
			)
			return nil
		}
		if sampler.Tick() {
			e.logger.Info("progress",
				logging.String(logging.FieldFile, path),
				logging.Int(logging.FieldRecords, sampler.Count()),
				logging.Float64("percent", e.percentOfTruth(sampler.Count())),
			)
		}
		return nil
	}, e.opts.OpenOptions...)
	if err != nil {
		return res, fmt.Errorf("evaluate %s: %w", path, err)
	}

	res.Summary = Summarize(acc)
	if err := report.summary(res.Summary); err != nil {
		return res, err
	}
	res.Elapsed = time.Since(start)
	e.logger.Info("evaluation complete",
		logging.String(logging.FieldFile, path),
		logging.String("report", res.ReportPath),
		logging.Int(logging.FieldRecords, res.Summary.Count),
		logging.Int("skipped", res.Skipped),
		logging.Float64("median_km", res.Summary.Q2),
		logging.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (e *Evaluator) evaluateLine(line string, acc *Accumulator, report *reportWriter) error {
	c, err := records.ParseCandidate(line)
	if err != nil {
		return err
	}
	truth, ok := e.truth.Lookup(c.Hash)
	if !ok {
		return &records.RowError{Err: fmt.Errorf("%w: %q", ErrMissingGroundTruth, c.Hash)}
	}
	meters := geodesy.DistanceMeters(c.Latitude, c.Longitude, truth.Lat, truth.Lon)
	acc.Add(meters)
	return report.detail(c.Hash, Point{Lat: c.Latitude, Lon: c.Longitude}, truth, meters/1000)
}

func (e *Evaluator) percentOfTruth(n int) float64 {
	if e.truth.Len() == 0 {
		return 0
	}
	return float64(n) * 100 / float64(e.truth.Len())
}

// isRecoverable reports whether err concerns a single row rather than I/O.
func isRecoverable(err error) bool {
	var rowErr *records.RowError
	return errors.As(err, &rowErr)
}

// Package resolve maps hash identifiers back to the identifiers they were
// derived from.
//
// The hash file is read twice: once to collect the hashes of interest and once
// more, after the mapping stream has been scanned, to emit the resolved rows in
// their original order. Rows whose hash has no mapping are dropped silently.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"placing/internal/emit"
	"placing/internal/index"
	"placing/internal/logging"
	"placing/internal/records"
	"placing/internal/streamio"
)

// Options configures a resolution run.
type Options struct {
	AbortOnError bool
	OpenOptions  []streamio.Option
	Logger       *slog.Logger
}

// Result summarizes a resolution run.
type Result struct {
	// Hashes is the number of distinct hashes in the hash file.
	Hashes int
	// Mapped is the number of those hashes found in the mapping stream.
	Mapped int
	// Written and Dropped count hash-file rows by outcome.
	Written int
	Dropped int
	// Skipped counts malformed mapping rows under the skip policy.
	Skipped int
}

// Run resolves hashPath against mappingPath and writes the hash count followed
// by "identifier<TAB>row" lines to em.
func Run(ctx context.Context, hashPath, mappingPath string, em *emit.Emitter, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "resolve")

	var res Result
	wanted, err := index.BuildSetFile(hashPath)
	if err != nil {
		return res, fmt.Errorf("collect hashes: %w", err)
	}
	res.Hashes = wanted.Len()
	logger.Info("hashes collected",
		logging.String(logging.FieldFile, hashPath),
		logging.Int("hashes", res.Hashes),
	)

	mapping, skipped, err := loadMapping(ctx, mappingPath, wanted, opts, logger)
	if err != nil {
		return res, err
	}
	res.Mapped = len(mapping)
	res.Skipped = skipped

	if err := em.WriteCount(res.Hashes); err != nil {
		return res, err
	}
	err = streamio.ForEachFileLine(hashPath, func(_ int, line string) error {
		id, ok := mapping[records.FirstField(line)]
		if !ok {
			res.Dropped++
			return nil
		}
		res.Written++
		return em.WriteLine(id, line)
	}, opts.OpenOptions...)
	if err != nil {
		return res, fmt.Errorf("resolve %s: %w", hashPath, err)
	}
	logger.Info("resolve complete",
		logging.Int("mapped", res.Mapped),
		logging.Int("written", res.Written),
		logging.Int("dropped", res.Dropped),
	)
	return res, nil
}

// loadMapping keeps hash to identifier pairs for wanted hashes. Later rows
// replace earlier ones.
func loadMapping(ctx context.Context, path string, wanted *index.Set, opts Options, logger *slog.Logger) (map[string]string, int, error) {
	mapping := make(map[string]string, wanted.Len())
	skipped := 0
	err := streamio.ForEachFileLine(path, func(lineNo int, line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := records.ParseMapping(line)
		if err != nil {
			var rowErr *records.RowError
			if opts.AbortOnError || !errors.As(err, &rowErr) {
				return records.At(err, path, lineNo, line)
			}
			skipped++
			logger.Warn("skipping malformed mapping row",
				logging.String(logging.FieldFile, path),
				logging.Int(logging.FieldLine, lineNo),
				logging.Error(err),
			)
			return nil
		}
		if wanted.Contains(m.Hash) {
			mapping[m.Hash] = m.Identifier
		}
		return nil
	}, opts.OpenOptions...)
	if err != nil {
		return nil, skipped, fmt.Errorf("load mapping %s: %w", path, err)
	}
	return mapping, skipped, nil
}

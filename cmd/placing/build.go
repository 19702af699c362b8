package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"placing/internal/config"
	"placing/internal/emit"
	"placing/internal/index"
	"placing/internal/join"
	"placing/internal/logging"
	"placing/internal/streamio"
	"placing/internal/tags"
)

// batchSeparator divides reference paths from data paths in batch builds.
const batchSeparator = "DATA"

func newBuildCommand(ctx *commandContext) *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble datasets by joining metadata streams against references",
	}

	buildCmd.AddCommand(newBuildModeCommand(ctx, join.ModeTrain, "Write a training set (coordinates and place labels) to stdout"))
	buildCmd.AddCommand(newBuildModeCommand(ctx, join.ModeTest, "Write a test set (placeholder coordinates) to stdout"))
	buildCmd.AddCommand(newBuildBatchCommand(ctx))

	return buildCmd
}

func newBuildModeCommand(ctx *commandContext, mode join.Mode, short string) *cobra.Command {
	usage := fmt.Sprintf("placing build %s <reference> <data>...", mode)
	return &cobra.Command{
		Use:   string(mode) + " <reference> <data>...",
		Short: short,
		Args:  argsBetween(usage, 2, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runBuild(cmd, mode, args[:1], args[1:], true)
		},
	}
}

func newBuildBatchCommand(ctx *commandContext) *cobra.Command {
	usage := "placing build batch <reference>... " + batchSeparator + " <data>..."
	return &cobra.Command{
		Use:   "batch <reference>... " + batchSeparator + " <data>...",
		Short: "Write one training set per reference, next to each reference file",
		Args:  argsBetween(usage, 3, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, data, err := splitBatchArgs(args)
			if err != nil {
				return &usageError{usage: usage}
			}
			return ctx.runBuild(cmd, join.ModeTrain, refs, data, false)
		},
	}
}

// splitBatchArgs splits args at the last separator token.
func splitBatchArgs(args []string) ([]string, []string, error) {
	cut := -1
	for i, arg := range args {
		if arg == batchSeparator {
			cut = i
		}
	}
	if cut < 1 || cut == len(args)-1 {
		return nil, nil, errors.New("missing references or data streams around " + batchSeparator)
	}
	return args[:cut], args[cut+1:], nil
}

// runBuild loads every reference into an index, then joins the data streams
// against all of them in one pass.
func (c *commandContext) runBuild(cmd *cobra.Command, mode join.Mode, refs, data []string, toStdout bool) (err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd, cfg)
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "build")

	spec := index.Spec{}
	if mode == join.ModeTrain {
		spec.LabelColumns = slices.Clone(cfg.Reference.LabelColumns)
	}

	var destinations []*streamio.Destination
	defer func() {
		for _, dst := range destinations {
			if cerr := dst.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", dst.Name(), cerr)
			}
		}
	}()

	targets := make([]join.Target, 0, len(refs))
	for _, ref := range refs {
		logger.Info("loading reference", logging.String(logging.FieldFile, ref))
		ix, err := index.BuildFile(ref, spec)
		if err != nil {
			return err
		}
		logger.Info("reference loaded",
			logging.String(logging.FieldFile, ref),
			logging.Int("identifiers", ix.Len()),
		)
		dst, err := openBuildDestination(cmd, cfg, ref, toStdout)
		if err != nil {
			return err
		}
		destinations = append(destinations, dst)
		targets = append(targets, join.Target{
			Name:    dst.Name(),
			Index:   ix,
			Emitter: emit.New(dst, cfg.Output.Placeholder),
		})
	}

	joiner := join.New(targets, join.Options{
		Mode: mode,
		Normalizer: tags.New(tags.Options{
			EncodeLabels: cfg.Tags.EncodeLabels,
			UnicodeForm:  cfg.Tags.UnicodeForm,
		}),
		AbortOnError:  cfg.AbortOnError(),
		ProgressEvery: cfg.Progress.BuildEvery,
		OpenOptions:   c.openOptions(cfg),
		Logger:        logger,
	})
	if err := joiner.WriteCounts(); err != nil {
		return err
	}
	_, err = joiner.Run(cmd.Context(), data)
	return err
}

func openBuildDestination(cmd *cobra.Command, cfg *config.Config, ref string, toStdout bool) (*streamio.Destination, error) {
	if toStdout {
		return streamio.Wrap("stdout", cmd.OutOrStdout()), nil
	}
	return streamio.Create(ref+cfg.Output.BatchSuffix, cfg.Output.Lock)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"placing/internal/evaluate"
	"placing/internal/logging"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <ground_truth> <candidate>...",
		Short: "Score candidate predictions against ground truth",
		Long: "Score candidate predictions against ground truth.\n\n" +
			"Each <candidate> file holds hash;lat;lon rows. A report is written next to it\n" +
			"and a summary table is printed to stdout.",
		Args: argsBetween("placing evaluate <ground_truth> <candidate>...", 2, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			logger.Info("loading ground truth", logging.String(logging.FieldFile, args[0]))
			truth, err := evaluate.LoadGroundTruthFile(args[0])
			if err != nil {
				return err
			}
			logger.Info("ground truth loaded",
				logging.Int("items", truth.Len()),
				logging.Int("ignored_rows", truth.Ignored()),
			)

			evaluator := evaluate.New(truth, evaluate.Options{
				ThresholdsKm:  cfg.Evaluation.ThresholdsKm,
				ReportSuffix:  cfg.Output.ReportSuffix,
				Lock:          cfg.Output.Lock,
				AbortOnError:  cfg.AbortOnError(),
				ProgressEvery: cfg.Progress.EvaluateEvery,
				OpenOptions:   ctx.openOptions(cfg),
				Logger:        logger,
			})
			out := cmd.OutOrStdout()
			for _, path := range args[1:] {
				res, err := evaluator.EvaluateFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderSummary(res))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"placing/internal/emit"
	"placing/internal/resolve"
	"placing/internal/streamio"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <hash_file> <mapping_file>",
		Short: "Prefix each hash-file row with the identifier its hash maps to",
		Args:  argsBetween("placing resolve <hash_file> <mapping_file>", 2, 2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			dst := streamio.Wrap("stdout", cmd.OutOrStdout())
			defer func() {
				if cerr := dst.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("flush stdout: %w", cerr)
				}
			}()

			_, err = resolve.Run(cmd.Context(), args[0], args[1], emit.New(dst, cfg.Output.Placeholder), resolve.Options{
				AbortOnError: cfg.AbortOnError(),
				OpenOptions:  ctx.openOptions(cfg),
				Logger:       logger,
			})
			return err
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit"
)

var packCmd = &cobra.Command{
	Use:   "pack <platforms.yaml>",
	Short: "Run the full pipeline: split oversized archives, then aggregate",
	Long: `Pack splits every platform's archive that exceeds --cap, in parallel,
then aggregates all platforms into the output tree. Equivalent to running
split per platform followed by aggregate, with the same configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := relkit.LoadAggregateConfig(args[0])
		if err != nil {
			return err
		}

		res, err := relkit.PackAll(cmd.Context(), cfg, resolveInt64(cmd, "cap"), resolveString(cmd, "out"),
			relkit.PackWithLogger(newLogger()),
			relkit.PackWithWorkers(int(resolveInt64(cmd, "workers"))),
			relkit.PackWithVersion(resolveString(cmd, "version")),
			relkit.PackWithKeepOriginal(resolveBool(cmd, "keep")),
		)
		if err != nil {
			return err
		}
		for key, sr := range res.Splits {
			if sr.Split {
				fmt.Printf("%s: split into %d parts\n", key, len(sr.Parts))
			}
		}
		fmt.Printf("published %d platform(s), index: %s\n", len(res.Aggregate.Platforms), res.Aggregate.IndexPath)
		return nil
	},
}

func init() {
	packCmd.Flags().Int64("cap", relkit.DefaultSplitCap, "per-file size cap in bytes")
	packCmd.Flags().Bool("keep", false, "keep original archives after splitting")
	packCmd.Flags().String("version", "", "version tag recorded in manifests")
	packCmd.Flags().String("out", "dist", "output root directory")
	packCmd.Flags().Int64("workers", 0, "max concurrent split workers (0 = unlimited)")
}

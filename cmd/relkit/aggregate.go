package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <platforms.yaml>",
	Short: "Collect per-platform artifacts into a publishable tree",
	Long: `Aggregate reads the platform table, classifies each producer directory
(whole archive, split part set, or nothing), and builds a normalized
output tree under --out with a generated index.md. Platforms without
artifacts are skipped; the run never fails because one platform was not
built.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := relkit.LoadAggregateConfig(args[0])
		if err != nil {
			return err
		}
		res, err := relkit.Aggregate(cmd.Context(), cfg, resolveString(cmd, "out"), relkit.AggregateWithLogger(newLogger()))
		if err != nil {
			return err
		}
		for _, p := range res.Platforms {
			fmt.Printf("%s: %d file(s)\n", p.Key, len(p.Files))
		}
		for _, a := range res.Aliases {
			fmt.Printf("alias %s -> %s\n", a.Name, a.Target)
		}
		fmt.Printf("index: %s\n", res.IndexPath)
		return nil
	},
}

func init() {
	aggregateCmd.Flags().String("out", "dist", "output root directory")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit"
)

var splitCmd = &cobra.Command{
	Use:   "split <archive>",
	Short: "Split an oversized archive into bounded-size parts",
	Long: `Split partitions an archive into parts of at most --cap bytes each,
emitting a JSON manifest and a standalone reconstruction script next to
the parts. An archive at or under the cap is left untouched.

On success the original archive is removed (use --keep to retain it):
the whole archive and its parts are never both the published artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := relkit.Split(cmd.Context(), args[0], resolveInt64(cmd, "cap"),
			relkit.SplitWithLogger(newLogger()),
			relkit.SplitWithVersion(resolveString(cmd, "version")),
			relkit.SplitWithKeepOriginal(resolveBool(cmd, "keep")),
		)
		if err != nil {
			return err
		}
		if !res.Split {
			fmt.Printf("%s is %d bytes, under the %d byte cap; nothing to do\n", res.Archive, res.TotalSize, res.Cap)
			return nil
		}
		fmt.Printf("split %s into %d parts\n", res.Archive, len(res.Parts))
		for _, p := range res.Parts {
			fmt.Printf("  %s  %d bytes  %s\n", p.Name, p.Size, p.Digest)
		}
		fmt.Printf("manifest: %s\nscript:   %s\n", res.ManifestPath, res.ScriptPath)
		return nil
	},
}

func init() {
	splitCmd.Flags().Int64("cap", relkit.DefaultSplitCap, "per-file size cap in bytes")
	splitCmd.Flags().Bool("keep", false, "keep the original archive after splitting")
	splitCmd.Flags().String("version", "", "version tag recorded in the manifest")
}

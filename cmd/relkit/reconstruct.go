package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <archive-name> [dir]",
	Short: "Reassemble a split archive from its parts",
	Long: `Reconstruct discovers <archive-name>.part* files in dir (default "."),
concatenates them in filename order into <archive-name>, and runs a
format integrity check when a checker for the archive's compression is
available. Part files are left on disk.

The archive name may also be given as the reconstruction script's file
name; the -reconstruct.sh suffix is stripped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := filepath.Base(args[0])
		if derived, ok := relkit.ArchiveNameFromScript(name); ok {
			name = derived
		}
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		noVerify, _ := cmd.Flags().GetBool("no-verify")

		res, err := relkit.Reconstruct(cmd.Context(), dir, name,
			relkit.ReconstructWithLogger(newLogger()),
			relkit.ReconstructWithVerify(!noVerify),
		)
		if err != nil {
			return err
		}
		fmt.Printf("reconstructed %s (%d bytes) from %d parts\n", res.Archive, res.Size, len(res.Parts))
		if res.Verified {
			fmt.Println("integrity check passed")
		}
		fmt.Printf("extract with: tar -xf %s\n", res.Archive)
		fmt.Printf("remove parts with: rm -f %s.part*\n", res.Archive)
		return nil
	},
}

func init() {
	reconstructCmd.Flags().Bool("no-verify", false, "skip the post-reconstruction integrity check")
}
